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

type UpdateSubmissionCommand struct {
	SubmissionID string
	CreatorID    string
	Title        string
	Description  string
	ArtworkURL   string
	ThumbnailURL string
	Tags         []string
	Canvas       map[string]any
	AssetIDs     []string
}

type UpdateSubmissionUseCase struct {
	Repository ports.SubmissionRepository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute applies owner content edits. Only pending submissions are editable;
// review fields are never touched here.
func (uc UpdateSubmissionUseCase) Execute(ctx context.Context, cmd UpdateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Submission{}, err
	}
	if strings.TrimSpace(cmd.CreatorID) == "" {
		return entities.Submission{}, domainerrors.ErrUnauthenticated
	}
	if submission.CreatorID != strings.TrimSpace(cmd.CreatorID) {
		return entities.Submission{}, domainerrors.ErrNotOwner
	}
	if !submission.EditableBy(cmd.CreatorID) {
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}

	if title := strings.TrimSpace(cmd.Title); title != "" {
		submission.Title = title
	}
	if desc := strings.TrimSpace(cmd.Description); desc != "" {
		submission.Description = desc
	}
	if artwork := strings.TrimSpace(cmd.ArtworkURL); artwork != "" {
		submission.ArtworkURL = artwork
	}
	if thumb := strings.TrimSpace(cmd.ThumbnailURL); thumb != "" {
		submission.ThumbnailURL = thumb
	}
	if cmd.Tags != nil {
		submission.Tags = normalizeTags(cmd.Tags)
	}
	if cmd.Canvas != nil {
		submission.Canvas = cmd.Canvas
	}
	if cmd.AssetIDs != nil {
		submission.AssetIDs = dedupeIDs(cmd.AssetIDs)
	}
	submission.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Repository.UpdateContent(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission content updated",
		"event", "submission_updated",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
	)
	return submission, nil
}
