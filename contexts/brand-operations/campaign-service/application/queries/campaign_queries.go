package queries

import (
	"context"
	"strings"

	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

type QueryUseCase struct {
	Repository ports.CampaignRepository
}

func (uc QueryUseCase) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Repository.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

func (uc QueryUseCase) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	return uc.Repository.ListCampaigns(ctx, filter)
}
