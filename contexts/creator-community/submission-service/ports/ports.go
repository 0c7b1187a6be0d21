package ports

import (
	"context"
	"time"

	"fanforge/contexts/creator-community/submission-service/domain/entities"
	"fanforge/internal/shared/events"
)

type SubmissionFilter struct {
	CreatorID  string
	CampaignID string
	Status     entities.SubmissionStatus
	PublicOnly bool
}

// StatusTransition is the conditioned review update. FromStatus is the status
// the caller observed; the store must apply the update only if the row still
// carries it, so concurrent reviews resolve to exactly one winner.
type StatusTransition struct {
	FromStatus entities.SubmissionStatus
	ToStatus   entities.SubmissionStatus
	IsPublic   bool
	ReviewedBy string
	ReviewedAt time.Time
	Feedback   string
	Rating     *int
	UpdatedAt  time.Time
}

// SubmissionView is the denormalized read model returned to review callers.
type SubmissionView struct {
	Submission    entities.Submission
	CampaignTitle string
	BrandID       string
	CreatorName   string
}

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	UpdateContent(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	GetSubmissionView(ctx context.Context, submissionID string) (SubmissionView, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]entities.Submission, error)
	DeleteSubmission(ctx context.Context, submissionID string) error

	// TransitionStatus applies the review state change conditioned on
	// transition.FromStatus and returns the updated row. It returns
	// ErrInvalidStatusTransition when the row no longer carries FromStatus.
	TransitionStatus(ctx context.Context, submissionID string, transition StatusTransition) (entities.Submission, error)

	// SetExternalIP persists the registry identifier conditioned on the row
	// being approved and not yet registered.
	SetExternalIP(ctx context.Context, submissionID string, ipID string, txHash string, registeredAt time.Time) error

	// ListUnregisteredApproved feeds the registration retry worker.
	ListUnregisteredApproved(ctx context.Context, limit int) ([]entities.Submission, error)
}

type AuditRepository interface {
	AddAudit(ctx context.Context, audit entities.ReviewAudit) error
}

// ReviewNotification is the message delivered to the submission's creator as
// a side effect of a review transition.
type ReviewNotification struct {
	RecipientID  string
	Type         string
	Title        string
	Body         string
	SubmissionID string
	CampaignID   string
	Data         map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, notification ReviewNotification) error
}

// CampaignRef is the projection of campaign rows this module reads.
type CampaignRef struct {
	CampaignID string
	BrandID    string
	Title      string
	Status     string
}

type CampaignDirectory interface {
	GetCampaignForSubmission(ctx context.Context, campaignID string) (CampaignRef, error)
}

// AssetAnchorResolver maps brand asset ids to their on-chain registry anchors.
// Assets without an anchor are skipped; duplicates are collapsed.
type AssetAnchorResolver interface {
	ResolveAnchors(ctx context.Context, assetIDs []string) ([]string, error)
}

type ReviewerAuthority interface {
	CanReview(ctx context.Context, reviewerID string, brandID string) (bool, error)
}

// DerivativeRegistration is the request sent to the external IP registry.
type DerivativeRegistration struct {
	SubmissionID  string
	Title         string
	CreatorID     string
	ArtworkURL    string
	ParentAnchors []string
}

type RegistrationReceipt struct {
	IPID   string
	TxHash string
}

type IPRegistry interface {
	RegisterDerivative(ctx context.Context, req DerivativeRegistration) (RegistrationReceipt, error)
}

// Dispatcher runs a task detached from the caller's request lifecycle. The
// task receives a context that is not cancelled when the caller returns.
type Dispatcher interface {
	Dispatch(name string, task func(ctx context.Context))
}

type EventEnvelope = events.Envelope

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	OutboxWriter
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
