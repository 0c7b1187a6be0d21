package unit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	submissionservice "fanforge/contexts/creator-community/submission-service"
	"fanforge/contexts/creator-community/submission-service/application/workers"
	"fanforge/contexts/creator-community/submission-service/ports"
	httptransport "fanforge/contexts/creator-community/submission-service/transport/http"
)

type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	events []ports.EventEnvelope
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesReviewEventsOnce(t *testing.T) {
	module := submissionservice.NewInMemoryModule(reviewSeed(), nil, nil)

	if _, err := module.Handler.ApproveSubmissionHandler(context.Background(), "reviewer-1", "sub-1", httptransport.ReviewSubmissionRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.topics) != 1 || publisher.topics[0] != "submission.approved" {
		t.Fatalf("expected one submission.approved event, got %v", publisher.topics)
	}
	event := publisher.events[0]
	if event.PartitionKey != "sub-1" {
		t.Fatalf("expected partition key sub-1, got %q", event.PartitionKey)
	}
	if event.SourceService != "submission-service" {
		t.Fatalf("expected source service stamp, got %q", event.SourceService)
	}

	// Published rows stay published; a second cycle relays nothing.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.topics) != 1 {
		t.Fatalf("expected no republish, got %v", publisher.topics)
	}
}

type scriptedOutbox struct {
	mu        sync.Mutex
	rows      []ports.OutboxMessage
	published map[string]bool
}

func (s *scriptedOutbox) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, ports.OutboxMessage{
		OutboxID:  envelope.EventID,
		EventType: envelope.EventType,
		Payload:   payload,
		CreatedAt: envelope.OccurredAt,
	})
	return nil
}

func (s *scriptedOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.rows {
		if !s.published[row.OutboxID] {
			items = append(items, row)
		}
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *scriptedOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.published == nil {
		s.published = make(map[string]bool)
	}
	s.published[outboxID] = true
	return nil
}

type refusingPublisher struct {
	refuse bool
	capturePublisher
}

func (p *refusingPublisher) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	if p.refuse {
		return errors.New("bus unavailable")
	}
	return p.capturePublisher.Publish(ctx, topic, event)
}

func TestOutboxRelayDropsUndecodableRows(t *testing.T) {
	outbox := &scriptedOutbox{}
	outbox.rows = append(outbox.rows, ports.OutboxMessage{
		OutboxID:  "poison-1",
		EventType: "submission.approved",
		Payload:   []byte(`{"event_id":`),
	})
	if err := outbox.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:   "event-1",
		EventType: "submission.approved",
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{Outbox: outbox, Publisher: publisher}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("one undecodable row must not fail the cycle: %v", err)
	}

	if len(publisher.events) != 1 || publisher.events[0].EventID != "event-1" {
		t.Fatalf("expected the healthy row published, got %+v", publisher.events)
	}
	if !outbox.published["poison-1"] {
		t.Fatalf("undecodable row must be dropped, not retried forever")
	}
	if !outbox.published["event-1"] {
		t.Fatalf("published row must be marked")
	}
}

func TestOutboxRelayRetriesRowsAfterPublisherOutage(t *testing.T) {
	outbox := &scriptedOutbox{}
	if err := outbox.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:   "event-1",
		EventType: "submission.approved",
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	publisher := &refusingPublisher{refuse: true}
	relay := workers.OutboxRelay{Outbox: outbox, Publisher: publisher}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("publish outage must not fail the cycle: %v", err)
	}
	if outbox.published["event-1"] {
		t.Fatalf("unpublished row must stay pending")
	}

	publisher.refuse = false
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second cycle failed: %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventID != "event-1" {
		t.Fatalf("expected the row published after recovery, got %+v", publisher.events)
	}
	if !outbox.published["event-1"] {
		t.Fatalf("published row must be marked")
	}
}

func TestRegistrationRetryJobHonorsDisableFlag(t *testing.T) {
	module := submissionservice.NewInMemoryModule(reviewSeed(), nil, nil)
	module.Registry.Fail(nil)

	if _, err := module.Handler.ApproveSubmissionHandler(context.Background(), "reviewer-1", "sub-1", httptransport.ReviewSubmissionRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	callsAfterApproval := module.Registry.Calls()
	module.Registry.Recover()

	job := module.RegistrationJob
	job.Disabled = true
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("disabled job must still return nil: %v", err)
	}
	if module.Registry.Calls() != callsAfterApproval {
		t.Fatalf("disabled job must not call the registry")
	}

	job.Disabled = false
	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry job failed: %v", err)
	}
	stored, err := module.Store.GetSubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("get submission failed: %v", err)
	}
	if stored.ExternalIPID == "" {
		t.Fatalf("expected the retry job to register the submission")
	}
}

func TestRegistrationRetryJobSkipsIneligibleRows(t *testing.T) {
	seed := reviewSeed()
	seed.Anchors = map[string]string{}
	module := submissionservice.NewInMemoryModule(seed, nil, nil)

	if _, err := module.Handler.ApproveSubmissionHandler(context.Background(), "reviewer-1", "sub-1", httptransport.ReviewSubmissionRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if err := module.RegistrationJob.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry job failed: %v", err)
	}
	if module.Registry.Calls() != 0 {
		t.Fatalf("rows without registrable assets must not reach the registry")
	}
	stored, err := module.Store.GetSubmission(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("get submission failed: %v", err)
	}
	if stored.ExternalIPID != "" {
		t.Fatalf("ineligible row must remain unregistered")
	}
}
