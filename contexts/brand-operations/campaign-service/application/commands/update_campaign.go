package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "fanforge/contexts/brand-operations/campaign-service/application"
	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

type UpdateCampaignCommand struct {
	ActorID        string
	CampaignID     string
	Title          *string
	Description    *string
	Guidelines     *string
	BannerImageURL *string
	StartsAt       *time.Time
	EndsAt         *time.Time
}

type UpdateCampaignUseCase struct {
	Repository ports.CampaignRepository
	Authority  ports.BrandAuthority
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Campaign{}, domainerrors.ErrUnauthenticated
	}
	campaign, err := uc.Repository.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(cmd.ActorID), campaign.BrandID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if !allowed {
		return entities.Campaign{}, domainerrors.ErrNotBrandOwner
	}
	if !campaign.CanEdit() {
		return entities.Campaign{}, domainerrors.ErrInvalidStatusTransition
	}

	if cmd.Title != nil {
		campaign.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		campaign.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Guidelines != nil {
		campaign.Guidelines = strings.TrimSpace(*cmd.Guidelines)
	}
	if cmd.BannerImageURL != nil {
		campaign.BannerImageURL = strings.TrimSpace(*cmd.BannerImageURL)
	}
	if cmd.StartsAt != nil {
		campaign.StartsAt = cmd.StartsAt
	}
	if cmd.EndsAt != nil {
		campaign.EndsAt = cmd.EndsAt
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign updated",
		"event", "campaign_updated",
		"module", "brand-operations/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return campaign, nil
}
