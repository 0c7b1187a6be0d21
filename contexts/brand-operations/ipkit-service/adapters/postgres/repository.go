package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ ports.KitRepository = (*Repository)(nil)
var _ ports.AssetRepository = (*Repository)(nil)

func (r *Repository) CreateKit(ctx context.Context, kit entities.IPKit) error {
	model := fromKitEntity(kit)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) UpdateKit(ctx context.Context, kit entities.IPKit) error {
	result := r.db.WithContext(ctx).
		Model(&ipKitModel{}).
		Where("ip_kit_id = ?", kit.IPKitID).
		Updates(map[string]any{
			"name":         kit.Name,
			"description":  kit.Description,
			"cover_url":    kit.CoverURL,
			"usage_terms":  kit.UsageTerms,
			"is_published": kit.IsPublished,
			"updated_at":   kit.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrIPKitNotFound
	}
	return nil
}

func (r *Repository) GetKit(ctx context.Context, kitID string) (entities.IPKit, error) {
	var model ipKitModel
	err := r.db.WithContext(ctx).
		Where("ip_kit_id = ?", kitID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.IPKit{}, domainerrors.ErrIPKitNotFound
		}
		return entities.IPKit{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListKits(ctx context.Context, filter ports.KitFilter) ([]entities.IPKit, error) {
	query := r.db.WithContext(ctx).Model(&ipKitModel{})
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var models []ipKitModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	kits := make([]entities.IPKit, 0, len(models))
	for _, model := range models {
		kits = append(kits, model.toEntity())
	}
	return kits, nil
}

func (r *Repository) AddAsset(ctx context.Context, asset entities.BrandAsset) error {
	model := fromAssetEntity(asset)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *Repository) GetAsset(ctx context.Context, assetID string) (entities.BrandAsset, error) {
	var model brandAssetModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BrandAsset{}, domainerrors.ErrAssetNotFound
		}
		return entities.BrandAsset{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListAssets(ctx context.Context, kitID string) ([]entities.BrandAsset, error) {
	var models []brandAssetModel
	err := r.db.WithContext(ctx).
		Where("ip_kit_id = ?", kitID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	assets := make([]entities.BrandAsset, 0, len(models))
	for _, model := range models {
		assets = append(assets, model.toEntity())
	}
	return assets, nil
}

func (r *Repository) RemoveAsset(ctx context.Context, assetID string) error {
	result := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Delete(&brandAssetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

type ipKitModel struct {
	IPKitID     string    `gorm:"column:ip_kit_id;primaryKey"`
	BrandID     string    `gorm:"column:brand_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	CoverURL    string    `gorm:"column:cover_url"`
	UsageTerms  string    `gorm:"column:usage_terms"`
	IsPublished bool      `gorm:"column:is_published;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ipKitModel) TableName() string { return "ip_kits" }

func (m ipKitModel) toEntity() entities.IPKit {
	return entities.IPKit{
		IPKitID:     m.IPKitID,
		BrandID:     m.BrandID,
		Name:        m.Name,
		Description: m.Description,
		CoverURL:    m.CoverURL,
		UsageTerms:  m.UsageTerms,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromKitEntity(kit entities.IPKit) ipKitModel {
	return ipKitModel{
		IPKitID:     kit.IPKitID,
		BrandID:     kit.BrandID,
		Name:        kit.Name,
		Description: kit.Description,
		CoverURL:    kit.CoverURL,
		UsageTerms:  kit.UsageTerms,
		IsPublished: kit.IsPublished,
		CreatedAt:   kit.CreatedAt,
		UpdatedAt:   kit.UpdatedAt,
	}
}

type brandAssetModel struct {
	AssetID        string    `gorm:"column:asset_id;primaryKey"`
	IPKitID        string    `gorm:"column:ip_kit_id;index"`
	BrandID        string    `gorm:"column:brand_id;index"`
	Name           string    `gorm:"column:name"`
	Kind           string    `gorm:"column:kind"`
	StorageKey     string    `gorm:"column:storage_key"`
	ContentType    string    `gorm:"column:content_type"`
	SizeBytes      int64     `gorm:"column:size_bytes"`
	RegistryAnchor string    `gorm:"column:registry_anchor"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (brandAssetModel) TableName() string { return "brand_assets" }

func (m brandAssetModel) toEntity() entities.BrandAsset {
	return entities.BrandAsset{
		AssetID:        m.AssetID,
		IPKitID:        m.IPKitID,
		BrandID:        m.BrandID,
		Name:           m.Name,
		Kind:           entities.AssetKind(m.Kind),
		StorageKey:     m.StorageKey,
		ContentType:    m.ContentType,
		SizeBytes:      m.SizeBytes,
		RegistryAnchor: m.RegistryAnchor,
		CreatedAt:      m.CreatedAt,
	}
}

func fromAssetEntity(asset entities.BrandAsset) brandAssetModel {
	return brandAssetModel{
		AssetID:        asset.AssetID,
		IPKitID:        asset.IPKitID,
		BrandID:        asset.BrandID,
		Name:           asset.Name,
		Kind:           string(asset.Kind),
		StorageKey:     asset.StorageKey,
		ContentType:    asset.ContentType,
		SizeBytes:      asset.SizeBytes,
		RegistryAnchor: asset.RegistryAnchor,
		CreatedAt:      asset.CreatedAt,
	}
}
