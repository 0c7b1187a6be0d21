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

type WithdrawSubmissionCommand struct {
	SubmissionID string
	CreatorID    string
}

type DeleteSubmissionCommand struct {
	SubmissionID string
	CreatorID    string
}

type OwnerSubmissionUseCase struct {
	Repository ports.SubmissionRepository
	Audits     ports.AuditRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Withdraw moves a pending or rejected submission to withdrawn. Withdrawn is
// terminal; the conditioned transition guards against concurrent reviews.
func (uc OwnerSubmissionUseCase) Withdraw(ctx context.Context, cmd WithdrawSubmissionCommand) (entities.Submission, error) {
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
	if !submission.CanTransitionTo(entities.SubmissionStatusWithdrawn) {
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	previous := submission.Status
	updated, err := uc.Repository.TransitionStatus(ctx, submission.SubmissionID, ports.StatusTransition{
		FromStatus: previous,
		ToStatus:   entities.SubmissionStatusWithdrawn,
		IsPublic:   false,
		ReviewedBy: submission.ReviewedByUserID,
		ReviewedAt: timeOrZero(submission.ReviewedAt),
		Feedback:   submission.Feedback,
		Rating:     submission.Rating,
		UpdatedAt:  now,
	})
	if err != nil {
		return entities.Submission{}, err
	}

	uc.recordAudit(ctx, logger, updated.SubmissionID, "submission_withdrawn", previous, updated.Status, cmd.CreatorID, "")

	logger.Info("submission withdrawn",
		"event", "submission_withdrawn",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", updated.SubmissionID,
	)
	return updated, nil
}

// Delete removes a pending or rejected submission. Approved records are kept
// forever; withdrawn records stay as tombstones of the workflow.
func (uc OwnerSubmissionUseCase) Delete(ctx context.Context, cmd DeleteSubmissionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.CreatorID) == "" {
		return domainerrors.ErrUnauthenticated
	}
	if submission.CreatorID != strings.TrimSpace(cmd.CreatorID) {
		return domainerrors.ErrNotOwner
	}
	if !submission.DeletableBy(cmd.CreatorID) {
		return domainerrors.ErrInvalidStatusTransition
	}

	if err := uc.Repository.DeleteSubmission(ctx, submission.SubmissionID); err != nil {
		return err
	}

	logger.Info("submission deleted",
		"event", "submission_deleted",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
	)
	return nil
}

func (uc OwnerSubmissionUseCase) recordAudit(
	ctx context.Context,
	logger *slog.Logger,
	submissionID string,
	action string,
	oldStatus entities.SubmissionStatus,
	newStatus entities.SubmissionStatus,
	actorID string,
	notes string,
) {
	auditID, err := uc.IDGen.NewID(ctx)
	if err == nil {
		err = uc.Audits.AddAudit(ctx, entities.ReviewAudit{
			AuditID:      auditID,
			SubmissionID: submissionID,
			Action:       action,
			OldStatus:    oldStatus,
			NewStatus:    newStatus,
			ActorID:      strings.TrimSpace(actorID),
			Notes:        notes,
			CreatedAt:    uc.Clock.Now().UTC(),
		})
	}
	if err != nil {
		logger.Error("submission audit write failed",
			"event", "submission_audit_failed",
			"module", "creator-community/submission-service",
			"layer", "application",
			"submission_id", submissionID,
			"action", action,
			"error", err.Error(),
		)
	}
}
