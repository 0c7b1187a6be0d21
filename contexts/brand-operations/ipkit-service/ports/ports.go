package ports

import (
	"context"
	"io"
	"time"

	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
)

type KitFilter struct {
	BrandID       string
	PublishedOnly bool
}

type KitRepository interface {
	CreateKit(ctx context.Context, kit entities.IPKit) error
	UpdateKit(ctx context.Context, kit entities.IPKit) error
	GetKit(ctx context.Context, kitID string) (entities.IPKit, error)
	ListKits(ctx context.Context, filter KitFilter) ([]entities.IPKit, error)
}

type AssetRepository interface {
	AddAsset(ctx context.Context, asset entities.BrandAsset) error
	GetAsset(ctx context.Context, assetID string) (entities.BrandAsset, error)
	ListAssets(ctx context.Context, kitID string) ([]entities.BrandAsset, error)
	RemoveAsset(ctx context.Context, assetID string) error
}

// BlobStore abstracts asset file storage. The production adapter is S3;
// tests use an in-memory map.
type BlobStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error
	PresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type BrandAuthority interface {
	CanManageBrand(ctx context.Context, userID string, brandID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
