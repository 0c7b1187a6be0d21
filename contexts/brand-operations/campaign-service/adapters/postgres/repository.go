package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ ports.CampaignRepository = (*Repository)(nil)
var _ ports.HistoryRepository = (*Repository)(nil)

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	model := fromEntity(campaign)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", campaign.CampaignID).
		Updates(map[string]any{
			"title":            campaign.Title,
			"description":      campaign.Description,
			"guidelines":       campaign.Guidelines,
			"banner_image_url": campaign.BannerImageURL,
			"status":           string(campaign.Status),
			"starts_at":        normalizeOptionalTime(campaign.StartsAt),
			"ends_at":          normalizeOptionalTime(campaign.EndsAt),
			"launched_at":      normalizeOptionalTime(campaign.LaunchedAt),
			"closed_at":        normalizeOptionalTime(campaign.ClosedAt),
			"updated_at":       campaign.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var model campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	query := r.db.WithContext(ctx).Model(&campaignModel{})
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.ActiveOnly {
		query = query.Where("status = ?", string(entities.CampaignStatusActive))
	}

	var models []campaignModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	campaigns := make([]entities.Campaign, 0, len(models))
	for _, model := range models {
		campaigns = append(campaigns, model.toEntity())
	}
	return campaigns, nil
}

func (r *Repository) AppendState(ctx context.Context, item entities.StateHistory) error {
	model := stateHistoryModel{
		HistoryID:  item.HistoryID,
		CampaignID: item.CampaignID,
		OldStatus:  string(item.OldStatus),
		NewStatus:  string(item.NewStatus),
		ActorID:    item.ActorID,
		CreatedAt:  item.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

type campaignModel struct {
	CampaignID     string     `gorm:"column:campaign_id;primaryKey"`
	BrandID        string     `gorm:"column:brand_id;index"`
	IPKitID        string     `gorm:"column:ip_kit_id;index"`
	Title          string     `gorm:"column:title"`
	Description    string     `gorm:"column:description"`
	Guidelines     string     `gorm:"column:guidelines"`
	BannerImageURL string     `gorm:"column:banner_image_url"`
	Status         string     `gorm:"column:status;index"`
	StartsAt       *time.Time `gorm:"column:starts_at"`
	EndsAt         *time.Time `gorm:"column:ends_at"`
	LaunchedAt     *time.Time `gorm:"column:launched_at"`
	ClosedAt       *time.Time `gorm:"column:closed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:     m.CampaignID,
		BrandID:        m.BrandID,
		IPKitID:        m.IPKitID,
		Title:          m.Title,
		Description:    m.Description,
		Guidelines:     m.Guidelines,
		BannerImageURL: m.BannerImageURL,
		Status:         entities.CampaignStatus(m.Status),
		StartsAt:       m.StartsAt,
		EndsAt:         m.EndsAt,
		LaunchedAt:     m.LaunchedAt,
		ClosedAt:       m.ClosedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromEntity(campaign entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:     campaign.CampaignID,
		BrandID:        campaign.BrandID,
		IPKitID:        campaign.IPKitID,
		Title:          campaign.Title,
		Description:    campaign.Description,
		Guidelines:     campaign.Guidelines,
		BannerImageURL: campaign.BannerImageURL,
		Status:         string(campaign.Status),
		StartsAt:       campaign.StartsAt,
		EndsAt:         campaign.EndsAt,
		LaunchedAt:     campaign.LaunchedAt,
		ClosedAt:       campaign.ClosedAt,
		CreatedAt:      campaign.CreatedAt,
		UpdatedAt:      campaign.UpdatedAt,
	}
}

type stateHistoryModel struct {
	HistoryID  string    `gorm:"column:history_id;primaryKey"`
	CampaignID string    `gorm:"column:campaign_id;index"`
	OldStatus  string    `gorm:"column:old_status"`
	NewStatus  string    `gorm:"column:new_status"`
	ActorID    string    `gorm:"column:actor_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (stateHistoryModel) TableName() string { return "campaign_state_history" }

func normalizeOptionalTime(value *time.Time) any {
	if value == nil {
		return gorm.Expr("NULL")
	}
	return *value
}
