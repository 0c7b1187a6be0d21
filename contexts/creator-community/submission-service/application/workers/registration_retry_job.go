package workers

import (
	"context"
	"log/slog"

	application "fanforge/contexts/creator-community/submission-service/application"
	"fanforge/contexts/creator-community/submission-service/application/commands"
	"fanforge/contexts/creator-community/submission-service/ports"
)

// RegistrationRetryJob re-attempts IP registration for approved submissions
// that still lack an external registry id. Each attempt is best-effort; an
// ineligible or failing submission is skipped and picked up next cycle.
type RegistrationRetryJob struct {
	Repository ports.SubmissionRepository
	Registrar  commands.RegisterIPUseCase
	BatchSize  int
	Disabled   bool
	Logger     *slog.Logger
}

func (j RegistrationRetryJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)
	if j.Disabled {
		logger.Info("ip registration retry job disabled by feature flag",
			"event", "submission_registration_retry_disabled",
			"module", "creator-community/submission-service",
			"layer", "worker",
		)
		return nil
	}
	limit := j.BatchSize
	if limit <= 0 {
		limit = 50
	}

	items, err := j.Repository.ListUnregisteredApproved(ctx, limit)
	if err != nil {
		logger.Error("ip registration retry list failed",
			"event", "submission_registration_retry_list_failed",
			"module", "creator-community/submission-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	registered := 0
	for _, submission := range items {
		result, err := j.Registrar.Execute(ctx, commands.RegisterIPCommand{
			SubmissionID: submission.SubmissionID,
		})
		if err != nil {
			logger.Error("ip registration retry attempt errored",
				"event", "submission_registration_retry_failed",
				"module", "creator-community/submission-service",
				"layer", "worker",
				"submission_id", submission.SubmissionID,
				"error", err.Error(),
			)
			continue
		}
		if result.Success {
			registered++
		}
	}

	if len(items) > 0 {
		logger.Info("ip registration retry cycle completed",
			"event", "submission_registration_retry_completed",
			"module", "creator-community/submission-service",
			"layer", "worker",
			"scanned_count", len(items),
			"registered_count", registered,
		)
	}
	return nil
}
