package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "fanforge/contexts/creator-community/submission-service/application"
	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

type ApproveSubmissionCommand struct {
	SubmissionID string
	ReviewerID   string
	Feedback     string
	Rating       *int
}

type RejectSubmissionCommand struct {
	SubmissionID string
	ReviewerID   string
	Feedback     string
	Rating       *int
}

// ReviewSubmissionUseCase is the approve/reject orchestrator. Within one call
// the status write happens before the audit write, which happens before the
// notification write, which happens before the caller sees the result. The IP
// registration attempt is dispatched after the transition commits and never
// feeds back into the review outcome.
type ReviewSubmissionUseCase struct {
	Repository ports.SubmissionRepository
	Audits     ports.AuditRepository
	Notifier   ports.Notifier
	Authority  ports.ReviewerAuthority
	Registrar  RegisterIPUseCase
	Dispatcher ports.Dispatcher
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ReviewSubmissionUseCase) Approve(ctx context.Context, cmd ApproveSubmissionCommand) (ports.SubmissionView, error) {
	logger := application.ResolveLogger(uc.Logger)

	view, err := uc.loadAndAuthorize(ctx, cmd.SubmissionID, cmd.ReviewerID)
	if err != nil {
		return ports.SubmissionView{}, err
	}
	submission := view.Submission

	now := uc.Clock.Now().UTC()
	updated, err := uc.Repository.TransitionStatus(ctx, submission.SubmissionID, ports.StatusTransition{
		FromStatus: entities.SubmissionStatusPending,
		ToStatus:   entities.SubmissionStatusApproved,
		IsPublic:   true,
		ReviewedBy: strings.TrimSpace(cmd.ReviewerID),
		ReviewedAt: now,
		Feedback:   strings.TrimSpace(cmd.Feedback),
		Rating:     cmd.Rating,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.SubmissionView{}, err
	}

	uc.recordSideEffects(ctx, logger, sideEffects{
		action:       "submission_approved",
		oldStatus:    entities.SubmissionStatusPending,
		updated:      updated,
		reviewerID:   cmd.ReviewerID,
		notes:        strings.TrimSpace(cmd.Feedback),
		occurredAt:   now,
		notification: uc.approvalNotification(updated, view.CampaignTitle),
	})

	view.Submission = updated
	uc.dispatchRegistration(updated.SubmissionID)

	logger.Info("submission approved",
		"event", "submission_approved",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", updated.SubmissionID,
		"reviewer_id", strings.TrimSpace(cmd.ReviewerID),
	)
	return view, nil
}

func (uc ReviewSubmissionUseCase) Reject(ctx context.Context, cmd RejectSubmissionCommand) (ports.SubmissionView, error) {
	logger := application.ResolveLogger(uc.Logger)

	view, err := uc.loadAndAuthorize(ctx, cmd.SubmissionID, cmd.ReviewerID)
	if err != nil {
		return ports.SubmissionView{}, err
	}
	submission := view.Submission
	feedback := strings.TrimSpace(cmd.Feedback)
	if feedback == "" {
		return ports.SubmissionView{}, domainerrors.ErrFeedbackRequired
	}

	now := uc.Clock.Now().UTC()
	updated, err := uc.Repository.TransitionStatus(ctx, submission.SubmissionID, ports.StatusTransition{
		FromStatus: entities.SubmissionStatusPending,
		ToStatus:   entities.SubmissionStatusRejected,
		IsPublic:   false,
		ReviewedBy: strings.TrimSpace(cmd.ReviewerID),
		ReviewedAt: now,
		Feedback:   feedback,
		Rating:     cmd.Rating,
		UpdatedAt:  now,
	})
	if err != nil {
		return ports.SubmissionView{}, err
	}

	uc.recordSideEffects(ctx, logger, sideEffects{
		action:     "submission_rejected",
		oldStatus:  entities.SubmissionStatusPending,
		updated:    updated,
		reviewerID: cmd.ReviewerID,
		notes:      feedback,
		occurredAt: now,
		notification: ports.ReviewNotification{
			RecipientID:  updated.CreatorID,
			Type:         "submission_rejected",
			Title:        "Your submission was not approved",
			Body:         feedback,
			SubmissionID: updated.SubmissionID,
			CampaignID:   updated.CampaignID,
			Data: map[string]any{
				"submission_id": updated.SubmissionID,
				"campaign_id":   updated.CampaignID,
				"feedback":      feedback,
			},
		},
	})

	view.Submission = updated

	logger.Info("submission rejected",
		"event", "submission_rejected",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", updated.SubmissionID,
		"reviewer_id", strings.TrimSpace(cmd.ReviewerID),
	)
	return view, nil
}

// loadAndAuthorize checks load, state and authority in that order: a reviewer
// who lost the race to a colleague learns the submission already moved on
// rather than getting an authority error.
func (uc ReviewSubmissionUseCase) loadAndAuthorize(ctx context.Context, submissionID string, reviewerID string) (ports.SubmissionView, error) {
	if strings.TrimSpace(reviewerID) == "" {
		return ports.SubmissionView{}, domainerrors.ErrUnauthenticated
	}
	view, err := uc.Repository.GetSubmissionView(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		return ports.SubmissionView{}, err
	}
	if view.Submission.Status != entities.SubmissionStatusPending {
		return ports.SubmissionView{}, domainerrors.ErrInvalidStatusTransition
	}
	allowed, err := uc.Authority.CanReview(ctx, strings.TrimSpace(reviewerID), view.BrandID)
	if err != nil {
		return ports.SubmissionView{}, err
	}
	if !allowed {
		return ports.SubmissionView{}, domainerrors.ErrForbidden
	}
	return view, nil
}

type sideEffects struct {
	action       string
	oldStatus    entities.SubmissionStatus
	updated      entities.Submission
	reviewerID   string
	notes        string
	occurredAt   time.Time
	notification ports.ReviewNotification
}

// recordSideEffects writes audit, notification and outbox rows after the
// status transition committed. Failures here are logged and swallowed: the
// submission status is the single source of truth and is not rolled back.
func (uc ReviewSubmissionUseCase) recordSideEffects(ctx context.Context, logger *slog.Logger, fx sideEffects) {
	auditID, err := uc.IDGen.NewID(ctx)
	if err == nil {
		err = uc.Audits.AddAudit(ctx, entities.ReviewAudit{
			AuditID:      auditID,
			SubmissionID: fx.updated.SubmissionID,
			Action:       fx.action,
			OldStatus:    fx.oldStatus,
			NewStatus:    fx.updated.Status,
			ActorID:      strings.TrimSpace(fx.reviewerID),
			Notes:        fx.notes,
			CreatedAt:    fx.occurredAt,
		})
	}
	if err != nil {
		logger.Error("submission audit write failed",
			"event", "submission_audit_failed",
			"module", "creator-community/submission-service",
			"layer", "application",
			"submission_id", fx.updated.SubmissionID,
			"action", fx.action,
			"error", err.Error(),
		)
	}

	if err := uc.Notifier.Notify(ctx, fx.notification); err != nil {
		logger.Error("submission notification write failed",
			"event", "submission_notification_failed",
			"module", "creator-community/submission-service",
			"layer", "application",
			"submission_id", fx.updated.SubmissionID,
			"action", fx.action,
			"error", err.Error(),
		)
	}

	if uc.Outbox != nil {
		eventID, err := uc.IDGen.NewID(ctx)
		if err == nil {
			var envelope ports.EventEnvelope
			envelope, err = newSubmissionEnvelope(
				eventID,
				"submission."+strings.TrimPrefix(fx.action, "submission_"),
				fx.updated.SubmissionID,
				fx.occurredAt,
				map[string]any{
					"submission_id": fx.updated.SubmissionID,
					"campaign_id":   fx.updated.CampaignID,
					"creator_id":    fx.updated.CreatorID,
					"status":        string(fx.updated.Status),
					"reviewed_by":   strings.TrimSpace(fx.reviewerID),
				},
			)
			if err == nil {
				err = uc.Outbox.AppendOutbox(ctx, envelope)
			}
		}
		if err != nil {
			logger.Error("submission outbox append failed",
				"event", "submission_outbox_append_failed",
				"module", "creator-community/submission-service",
				"layer", "application",
				"submission_id", fx.updated.SubmissionID,
				"action", fx.action,
				"error", err.Error(),
			)
		}
	}
}

func (uc ReviewSubmissionUseCase) approvalNotification(updated entities.Submission, campaignTitle string) ports.ReviewNotification {
	return ports.ReviewNotification{
		RecipientID:  updated.CreatorID,
		Type:         "submission_approved",
		Title:        "Your submission was approved",
		Body:         "Your artwork for " + campaignTitle + " is now live in the showcase.",
		SubmissionID: updated.SubmissionID,
		CampaignID:   updated.CampaignID,
		Data: map[string]any{
			"submission_id": updated.SubmissionID,
			"campaign_id":   updated.CampaignID,
		},
	}
}

// dispatchRegistration hands the registration attempt to the background
// dispatcher. The task runs on a detached context so registry latency or
// failure can never extend or fail the approval response. The outcome is only
// observable through logs and the eligibility query.
func (uc ReviewSubmissionUseCase) dispatchRegistration(submissionID string) {
	if uc.Dispatcher == nil {
		return
	}
	registrar := uc.Registrar
	logger := application.ResolveLogger(uc.Logger)
	uc.Dispatcher.Dispatch("register-ip:"+submissionID, func(taskCtx context.Context) {
		result, err := registrar.Execute(taskCtx, RegisterIPCommand{SubmissionID: submissionID})
		if err != nil {
			logger.Error("async ip registration errored",
				"event", "submission_ip_registration_failed",
				"module", "creator-community/submission-service",
				"layer", "application",
				"submission_id", submissionID,
				"error", err.Error(),
			)
			return
		}
		if !result.Success {
			logger.Warn("async ip registration not completed",
				"event", "submission_ip_registration_skipped",
				"module", "creator-community/submission-service",
				"layer", "application",
				"submission_id", submissionID,
				"reason", result.Error,
			)
			return
		}
		logger.Info("async ip registration completed",
			"event", "submission_ip_registered",
			"module", "creator-community/submission-service",
			"layer", "application",
			"submission_id", submissionID,
			"ip_id", result.IPID,
			"tx_hash", result.TxHash,
		)
	})
}

func timeOrZero(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}
