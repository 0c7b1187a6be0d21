package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/creator-community/submission-service/application"
	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

type CreateSubmissionCommand struct {
	CreatorID    string
	CampaignID   string
	IPKitID      string
	Title        string
	Description  string
	ArtworkURL   string
	ThumbnailURL string
	Tags         []string
	Canvas       map[string]any
	AssetIDs     []string
}

type CreateSubmissionUseCase struct {
	Repository ports.SubmissionRepository
	Campaigns  ports.CampaignDirectory
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.CreatorID) == "" {
		return entities.Submission{}, domainerrors.ErrUnauthenticated
	}

	campaign, err := uc.Campaigns.GetCampaignForSubmission(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Submission{}, err
	}
	if campaign.Status != "active" {
		return entities.Submission{}, domainerrors.ErrCampaignNotActive
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	now := uc.Clock.Now().UTC()
	submission := entities.Submission{
		SubmissionID: submissionID,
		CampaignID:   campaign.CampaignID,
		IPKitID:      strings.TrimSpace(cmd.IPKitID),
		CreatorID:    strings.TrimSpace(cmd.CreatorID),
		Title:        strings.TrimSpace(cmd.Title),
		Description:  strings.TrimSpace(cmd.Description),
		ArtworkURL:   strings.TrimSpace(cmd.ArtworkURL),
		ThumbnailURL: strings.TrimSpace(cmd.ThumbnailURL),
		Tags:         normalizeTags(cmd.Tags),
		Canvas:       cmd.Canvas,
		AssetIDs:     dedupeIDs(cmd.AssetIDs),
		Status:       entities.SubmissionStatusPending,
		IsPublic:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}
	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"campaign_id", submission.CampaignID,
		"creator_id", submission.CreatorID,
	)
	return submission, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
