package ports

import (
	"context"
	"time"

	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
)

type CampaignFilter struct {
	BrandID    string
	Status     entities.CampaignStatus
	ActiveOnly bool
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
}

type HistoryRepository interface {
	AppendState(ctx context.Context, item entities.StateHistory) error
}

// BrandAuthority answers whether a user manages a brand. Backed by the
// authorization service; wired in the composition root.
type BrandAuthority interface {
	CanManageBrand(ctx context.Context, userID string, brandID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
