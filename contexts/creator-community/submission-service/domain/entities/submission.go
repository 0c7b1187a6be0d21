package entities

import (
	"strings"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusApproved  SubmissionStatus = "approved"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
	SubmissionStatusWithdrawn SubmissionStatus = "withdrawn"
)

// Submission is a creator's derivative artwork entry tied to one campaign.
type Submission struct {
	SubmissionID string
	CampaignID   string
	IPKitID      string
	CreatorID    string

	Title        string
	Description  string
	ArtworkURL   string
	ThumbnailURL string
	Tags         []string
	Canvas       map[string]any
	AssetIDs     []string

	Status   SubmissionStatus
	IsPublic bool

	ReviewedByUserID string
	ReviewedAt       *time.Time
	Feedback         string
	Rating           *int

	ExternalIPID       string
	RegistrationTxHash string
	IPRegisteredAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.CampaignID) != "" &&
		strings.TrimSpace(s.CreatorID) != "" &&
		strings.TrimSpace(s.Title) != "" &&
		strings.TrimSpace(s.ArtworkURL) != ""
}

// CanTransitionTo encodes the review state machine. Reviewer transitions only
// leave pending; withdrawal is owner-initiated from pending or rejected.
func (s Submission) CanTransitionTo(next SubmissionStatus) bool {
	switch next {
	case SubmissionStatusApproved, SubmissionStatusRejected:
		return s.Status == SubmissionStatusPending
	case SubmissionStatusWithdrawn:
		return s.Status == SubmissionStatusPending || s.Status == SubmissionStatusRejected
	default:
		return false
	}
}

// EditableBy reports whether the given user may still change the content.
func (s Submission) EditableBy(userID string) bool {
	return s.CreatorID == strings.TrimSpace(userID) && s.Status == SubmissionStatusPending
}

// DeletableBy reports whether the given user may remove the record entirely.
// Approved submissions are never physically deleted.
func (s Submission) DeletableBy(userID string) bool {
	if s.CreatorID != strings.TrimSpace(userID) {
		return false
	}
	return s.Status == SubmissionStatusPending || s.Status == SubmissionStatusRejected
}

// ReviewAudit is the immutable record of a state-changing review action.
type ReviewAudit struct {
	AuditID      string
	SubmissionID string
	Action       string
	OldStatus    SubmissionStatus
	NewStatus    SubmissionStatus
	ActorID      string
	Notes        string
	CreatedAt    time.Time
}
