package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/brand-operations/campaign-service/application"
	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

type ChangeStatusCommand struct {
	ActorID    string
	CampaignID string
}

// CampaignLifecycleUseCase moves campaigns through draft -> active -> closed.
type CampaignLifecycleUseCase struct {
	Repository ports.CampaignRepository
	History    ports.HistoryRepository
	Authority  ports.BrandAuthority
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CampaignLifecycleUseCase) Launch(ctx context.Context, cmd ChangeStatusCommand) (entities.Campaign, error) {
	return uc.transition(ctx, cmd, entities.CampaignStatusDraft, entities.CampaignStatusActive)
}

func (uc CampaignLifecycleUseCase) Close(ctx context.Context, cmd ChangeStatusCommand) (entities.Campaign, error) {
	return uc.transition(ctx, cmd, entities.CampaignStatusActive, entities.CampaignStatusClosed)
}

func (uc CampaignLifecycleUseCase) transition(ctx context.Context, cmd ChangeStatusCommand, from entities.CampaignStatus, to entities.CampaignStatus) (entities.Campaign, error) {
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
	if campaign.Status != from {
		return entities.Campaign{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	campaign.Status = to
	campaign.UpdatedAt = now
	switch to {
	case entities.CampaignStatusActive:
		campaign.LaunchedAt = &now
	case entities.CampaignStatusClosed:
		campaign.ClosedAt = &now
	}
	if err := uc.Repository.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	historyID, idErr := uc.IDGen.NewID(ctx)
	if idErr == nil {
		idErr = uc.History.AppendState(ctx, entities.StateHistory{
			HistoryID:  historyID,
			CampaignID: campaign.CampaignID,
			OldStatus:  from,
			NewStatus:  to,
			ActorID:    strings.TrimSpace(cmd.ActorID),
			CreatedAt:  now,
		})
	}
	if idErr != nil {
		logger.Warn("campaign history append failed",
			"event", "campaign_history_failed",
			"module", "brand-operations/campaign-service",
			"layer", "application",
			"campaign_id", campaign.CampaignID,
			"error", idErr,
		)
	}

	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "brand-operations/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"old_status", string(from),
		"new_status", string(to),
	)
	return campaign, nil
}
