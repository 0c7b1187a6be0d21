package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "fanforge/contexts/creator-community/submission-service/application"
	"fanforge/contexts/creator-community/submission-service/ports"
)

// OutboxRelay publishes pending submission outbox rows to the event bus. A row
// that cannot be decoded is dropped (marked published) so it cannot wedge the
// relay; a row that fails to publish stays pending and is retried next cycle.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("submission outbox list failed",
			"event", "submission_outbox_list_failed",
			"module", "creator-community/submission-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	published := 0
	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("submission outbox row dropped: payload does not decode",
				"event", "submission_outbox_row_dropped",
				"module", "creator-community/submission-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			r.markPublished(ctx, logger, row.OutboxID, now)
			continue
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("submission outbox publish failed, row stays pending",
				"event", "submission_outbox_publish_failed",
				"module", "creator-community/submission-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			continue
		}
		r.markPublished(ctx, logger, row.OutboxID, now)
		published++
	}

	if published > 0 {
		logger.Info("submission outbox relay cycle completed",
			"event", "submission_outbox_relay_completed",
			"module", "creator-community/submission-service",
			"layer", "worker",
			"published_count", published,
		)
	}
	return nil
}

func (r OutboxRelay) markPublished(ctx context.Context, logger *slog.Logger, outboxID string, now time.Time) {
	if err := r.Outbox.MarkOutboxPublished(ctx, outboxID, now); err != nil {
		logger.Error("submission outbox mark published failed",
			"event", "submission_outbox_mark_published_failed",
			"module", "creator-community/submission-service",
			"layer", "worker",
			"outbox_id", outboxID,
			"error", err.Error(),
		)
	}
}
