package queries

import (
	"context"
	"strings"
	"time"

	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

const downloadURLTTL = 15 * time.Minute

type AssetView struct {
	Asset       entities.BrandAsset
	DownloadURL string
}

type QueryUseCase struct {
	Kits   ports.KitRepository
	Assets ports.AssetRepository
	Blobs  ports.BlobStore
}

func (uc QueryUseCase) GetKit(ctx context.Context, kitID string) (entities.IPKit, error) {
	return uc.Kits.GetKit(ctx, strings.TrimSpace(kitID))
}

func (uc QueryUseCase) ListKits(ctx context.Context, filter ports.KitFilter) ([]entities.IPKit, error) {
	return uc.Kits.ListKits(ctx, filter)
}

// ListAssets returns the kit's assets with short-lived download URLs. A URL
// that cannot be signed is left empty rather than failing the whole list.
func (uc QueryUseCase) ListAssets(ctx context.Context, kitID string) ([]AssetView, error) {
	assets, err := uc.Assets.ListAssets(ctx, strings.TrimSpace(kitID))
	if err != nil {
		return nil, err
	}
	views := make([]AssetView, 0, len(assets))
	for _, asset := range assets {
		url, signErr := uc.Blobs.PresignedDownloadURL(ctx, asset.StorageKey, downloadURLTTL)
		if signErr != nil {
			url = ""
		}
		views = append(views, AssetView{Asset: asset, DownloadURL: url})
	}
	return views, nil
}
