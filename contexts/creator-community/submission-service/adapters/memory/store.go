package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the submission ports. It is
// intended for tests and local development wiring. The conditioned status
// update holds the same compare-and-swap contract as the postgres adapter.
type Store struct {
	mu sync.RWMutex

	submissions   map[string]entities.Submission
	audits        []entities.ReviewAudit
	notifications []ports.ReviewNotification
	campaigns     map[string]ports.CampaignRef
	anchors       map[string]string
	outbox        map[string]outboxRow
	creators      map[string]string
}

type outboxRow struct {
	ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

type Seed struct {
	Submissions []entities.Submission
	Campaigns   []ports.CampaignRef
	// Anchors maps asset id to its registry anchor; empty anchor means the
	// asset is not registrable.
	Anchors  map[string]string
	Creators map[string]string
}

func NewStore(seed Seed) *Store {
	submissions := make(map[string]entities.Submission, len(seed.Submissions))
	for _, item := range seed.Submissions {
		submissions[item.SubmissionID] = item
	}
	campaigns := make(map[string]ports.CampaignRef, len(seed.Campaigns))
	for _, item := range seed.Campaigns {
		campaigns[item.CampaignID] = item
	}
	anchors := make(map[string]string, len(seed.Anchors))
	for assetID, anchor := range seed.Anchors {
		anchors[assetID] = anchor
	}
	creators := make(map[string]string, len(seed.Creators))
	for userID, name := range seed.Creators {
		creators[userID] = name
	}
	return &Store{
		submissions: submissions,
		campaigns:   campaigns,
		anchors:     anchors,
		outbox:      make(map[string]outboxRow),
		creators:    creators,
	}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidSubmissionInput
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) UpdateContent(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.submissions[submission.SubmissionID]
	if !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	if existing.Status != entities.SubmissionStatusPending {
		return domainerrors.ErrInvalidStatusTransition
	}
	existing.Title = submission.Title
	existing.Description = submission.Description
	existing.ArtworkURL = submission.ArtworkURL
	existing.ThumbnailURL = submission.ThumbnailURL
	existing.Tags = append([]string(nil), submission.Tags...)
	existing.Canvas = submission.Canvas
	existing.AssetIDs = append([]string(nil), submission.AssetIDs...)
	existing.UpdatedAt = submission.UpdatedAt
	s.submissions[submission.SubmissionID] = existing
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) GetSubmissionView(ctx context.Context, submissionID string) (ports.SubmissionView, error) {
	item, err := s.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.SubmissionView{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, exists := s.campaigns[item.CampaignID]
	if !exists {
		return ports.SubmissionView{}, domainerrors.ErrCampaignNotFound
	}
	return ports.SubmissionView{
		Submission:    item,
		CampaignTitle: campaign.Title,
		BrandID:       campaign.BrandID,
		CreatorName:   s.creators[item.CreatorID],
	}, nil
}

func (s *Store) ListSubmissions(_ context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if strings.TrimSpace(filter.CreatorID) != "" && item.CreatorID != strings.TrimSpace(filter.CreatorID) {
			continue
		}
		if strings.TrimSpace(filter.CampaignID) != "" && item.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.PublicOnly && !item.IsPublic {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) DeleteSubmission(_ context.Context, submissionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	if item.Status != entities.SubmissionStatusPending && item.Status != entities.SubmissionStatusRejected {
		return domainerrors.ErrInvalidStatusTransition
	}
	delete(s.submissions, item.SubmissionID)
	return nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	submissionID string,
	transition ports.StatusTransition,
) (entities.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	if item.Status != transition.FromStatus {
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}

	item.Status = transition.ToStatus
	item.IsPublic = transition.IsPublic
	item.ReviewedByUserID = strings.TrimSpace(transition.ReviewedBy)
	if !transition.ReviewedAt.IsZero() {
		reviewedAt := transition.ReviewedAt.UTC()
		item.ReviewedAt = &reviewedAt
	}
	item.Feedback = strings.TrimSpace(transition.Feedback)
	item.Rating = transition.Rating
	item.UpdatedAt = transition.UpdatedAt.UTC()
	s.submissions[item.SubmissionID] = item
	return item, nil
}

func (s *Store) SetExternalIP(
	_ context.Context,
	submissionID string,
	ipID string,
	txHash string,
	registeredAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	if item.ExternalIPID != "" {
		return domainerrors.ErrAlreadyRegistered
	}
	if item.Status != entities.SubmissionStatusApproved {
		return domainerrors.ErrNotRegistrable
	}
	at := registeredAt.UTC()
	item.ExternalIPID = strings.TrimSpace(ipID)
	item.RegistrationTxHash = strings.TrimSpace(txHash)
	item.IPRegisteredAt = &at
	item.UpdatedAt = at
	s.submissions[item.SubmissionID] = item
	return nil
}

func (s *Store) ListUnregisteredApproved(_ context.Context, limit int) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	items := make([]entities.Submission, 0)
	for _, item := range s.submissions {
		if item.Status == entities.SubmissionStatusApproved && item.ExternalIPID == "" {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) AddAudit(_ context.Context, audit entities.ReviewAudit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audits = append(s.audits, audit)
	return nil
}

func (s *Store) Notify(_ context.Context, notification ports.ReviewNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *Store) GetCampaignForSubmission(_ context.Context, campaignID string) (ports.CampaignRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return ports.CampaignRef{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ResolveAnchors(_ context.Context, assetIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(assetIDs))
	anchors := make([]string, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		anchor := s.anchors[strings.TrimSpace(assetID)]
		if anchor == "" {
			continue
		}
		if _, ok := seen[anchor]; ok {
			continue
		}
		seen[anchor] = struct{}{}
		anchors = append(anchors, anchor)
	}
	return anchors, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := envelopePayload(envelope)
	if err != nil {
		return err
	}
	id := envelope.EventID
	if id == "" {
		id = uuid.NewString()
	}
	s.outbox[id] = outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  id,
			EventType: envelope.EventType,
			Payload:   payload,
			CreatedAt: envelope.OccurredAt.UTC(),
		},
		Status: "pending",
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status == "pending" {
			items = append(items, row.OutboxMessage)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.outbox[strings.TrimSpace(outboxID)]
	if !exists {
		return domainerrors.ErrInvalidSubmissionInput
	}
	at := publishedAt.UTC()
	row.Status = "published"
	row.PublishedAt = &at
	s.outbox[outboxID] = row
	return nil
}

// Audits returns a copy of recorded audit entries, oldest first.
func (s *Store) Audits() []entities.ReviewAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.ReviewAudit(nil), s.audits...)
}

// Notifications returns a copy of recorded review notifications.
func (s *Store) Notifications() []ports.ReviewNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.ReviewNotification(nil), s.notifications...)
}

func (s *Store) SetAnchor(assetID string, anchor string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.anchors[strings.TrimSpace(assetID)] = strings.TrimSpace(anchor)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func envelopePayload(envelope ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(envelope)
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
