package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"fanforge/contexts/brand-operations/campaign-service/application/commands"
	"fanforge/contexts/brand-operations/campaign-service/application/queries"
	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	"fanforge/contexts/brand-operations/campaign-service/ports"
	httptransport "fanforge/contexts/brand-operations/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign commands.CreateCampaignUseCase
	UpdateCampaign commands.UpdateCampaignUseCase
	Lifecycle      commands.CampaignLifecycleUseCase
	Queries        queries.QueryUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	startsAt, err := parseOptionalTime(req.StartsAt)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	endsAt, err := parseOptionalTime(req.EndsAt)
	if err != nil {
		return httptransport.CreateCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		ActorID:        userID,
		BrandID:        req.BrandID,
		IPKitID:        req.IPKitID,
		Title:          req.Title,
		Description:    req.Description,
		Guidelines:     req.Guidelines,
		BannerImageURL: req.BannerImageURL,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) UpdateCampaignHandler(
	ctx context.Context,
	userID string,
	campaignID string,
	req httptransport.UpdateCampaignRequest,
) (httptransport.GetCampaignResponse, error) {
	startsAt, err := parseOptionalTimePtr(req.StartsAt)
	if err != nil {
		return httptransport.GetCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	endsAt, err := parseOptionalTimePtr(req.EndsAt)
	if err != nil {
		return httptransport.GetCampaignResponse{}, domainerrors.ErrInvalidCampaignInput
	}
	campaign, err := h.UpdateCampaign.Execute(ctx, commands.UpdateCampaignCommand{
		ActorID:        userID,
		CampaignID:     campaignID,
		Title:          req.Title,
		Description:    req.Description,
		Guidelines:     req.Guidelines,
		BannerImageURL: req.BannerImageURL,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	})
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) LaunchCampaignHandler(ctx context.Context, userID string, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.Lifecycle.Launch(ctx, commands.ChangeStatusCommand{ActorID: userID, CampaignID: campaignID})
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) CloseCampaignHandler(ctx context.Context, userID string, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.Lifecycle.Close(ctx, commands.ChangeStatusCommand{ActorID: userID, CampaignID: campaignID})
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	campaign, err := h.Queries.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	brandID string,
	status string,
	activeOnly bool,
) (httptransport.ListCampaignsResponse, error) {
	campaigns, err := h.Queries.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID:    brandID,
		Status:     entities.CampaignStatus(status),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	items := make([]httptransport.CampaignDTO, 0, len(campaigns))
	for _, campaign := range campaigns {
		items = append(items, mapCampaign(campaign))
	}
	return httptransport.ListCampaignsResponse{Items: items}, nil
}

func mapCampaign(campaign entities.Campaign) httptransport.CampaignDTO {
	dto := httptransport.CampaignDTO{
		CampaignID:     campaign.CampaignID,
		BrandID:        campaign.BrandID,
		IPKitID:        campaign.IPKitID,
		Title:          campaign.Title,
		Description:    campaign.Description,
		Guidelines:     campaign.Guidelines,
		BannerImageURL: campaign.BannerImageURL,
		Status:         string(campaign.Status),
		CreatedAt:      campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      campaign.UpdatedAt.Format(time.RFC3339),
	}
	if campaign.StartsAt != nil {
		dto.StartsAt = campaign.StartsAt.Format(time.RFC3339)
	}
	if campaign.EndsAt != nil {
		dto.EndsAt = campaign.EndsAt.Format(time.RFC3339)
	}
	if campaign.LaunchedAt != nil {
		dto.LaunchedAt = campaign.LaunchedAt.Format(time.RFC3339)
	}
	if campaign.ClosedAt != nil {
		dto.ClosedAt = campaign.ClosedAt.Format(time.RFC3339)
	}
	return dto
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalTimePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseOptionalTime(*value)
}
