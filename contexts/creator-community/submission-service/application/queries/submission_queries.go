package queries

import (
	"context"
	"log/slog"
	"strings"

	"fanforge/contexts/creator-community/submission-service/domain/entities"
	"fanforge/contexts/creator-community/submission-service/ports"
)

type ListSubmissionsQuery struct {
	CreatorID  string
	CampaignID string
	Status     string
	PublicOnly bool
}

type QueryUseCase struct {
	Repository ports.SubmissionRepository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	return uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) GetSubmissionView(ctx context.Context, submissionID string) (ports.SubmissionView, error) {
	return uc.Repository.GetSubmissionView(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, query ListSubmissionsQuery) ([]entities.Submission, error) {
	return uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		CreatorID:  strings.TrimSpace(query.CreatorID),
		CampaignID: strings.TrimSpace(query.CampaignID),
		Status:     entities.SubmissionStatus(strings.TrimSpace(query.Status)),
		PublicOnly: query.PublicOnly,
	})
}
