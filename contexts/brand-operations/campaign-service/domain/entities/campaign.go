package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "draft"
	CampaignStatusActive CampaignStatus = "active"
	CampaignStatusClosed CampaignStatus = "closed"
)

// Campaign is a brand-run call for derivative artwork built on one IP kit.
type Campaign struct {
	CampaignID     string
	BrandID        string
	IPKitID        string
	Title          string
	Description    string
	Guidelines     string
	BannerImageURL string
	Status         CampaignStatus
	StartsAt       *time.Time
	EndsAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LaunchedAt     *time.Time
	ClosedAt       *time.Time
}

func (c Campaign) CanEdit() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusActive
}

func (c Campaign) ValidateBasics() bool {
	title := strings.TrimSpace(c.Title)
	description := strings.TrimSpace(c.Description)
	return strings.TrimSpace(c.BrandID) != "" &&
		title != "" &&
		len(title) >= 3 &&
		len(title) <= 120 &&
		description != "" &&
		len(description) <= 4000
}

// StateHistory records one campaign lifecycle change. Append-only.
type StateHistory struct {
	HistoryID  string
	CampaignID string
	OldStatus  CampaignStatus
	NewStatus  CampaignStatus
	ActorID    string
	CreatedAt  time.Time
}
