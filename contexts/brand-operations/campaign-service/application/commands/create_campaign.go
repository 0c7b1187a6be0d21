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

type CreateCampaignCommand struct {
	ActorID        string
	BrandID        string
	IPKitID        string
	Title          string
	Description    string
	Guidelines     string
	BannerImageURL string
	StartsAt       *time.Time
	EndsAt         *time.Time
}

type CreateCampaignUseCase struct {
	Repository ports.CampaignRepository
	Authority  ports.BrandAuthority
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Campaign{}, domainerrors.ErrUnauthenticated
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.BrandID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if !allowed {
		return entities.Campaign{}, domainerrors.ErrNotBrandOwner
	}

	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	now := uc.Clock.Now().UTC()
	campaign := entities.Campaign{
		CampaignID:     campaignID,
		BrandID:        strings.TrimSpace(cmd.BrandID),
		IPKitID:        strings.TrimSpace(cmd.IPKitID),
		Title:          strings.TrimSpace(cmd.Title),
		Description:    strings.TrimSpace(cmd.Description),
		Guidelines:     strings.TrimSpace(cmd.Guidelines),
		BannerImageURL: strings.TrimSpace(cmd.BannerImageURL),
		Status:         entities.CampaignStatusDraft,
		StartsAt:       cmd.StartsAt,
		EndsAt:         cmd.EndsAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	if err := uc.Repository.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "brand-operations/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}
