package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	application "fanforge/contexts/brand-operations/ipkit-service/application"
	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

type AddAssetCommand struct {
	ActorID        string
	IPKitID        string
	Name           string
	Kind           entities.AssetKind
	ContentType    string
	SizeBytes      int64
	RegistryAnchor string
	Body           io.Reader
}

type RemoveAssetCommand struct {
	ActorID string
	AssetID string
}

// ManageAssetUseCase uploads asset files to the blob store and tracks them in
// the kit. Uploads land under ipkits/<kit>/<asset> so the bucket layout maps
// back to the owning kit.
type ManageAssetUseCase struct {
	Kits      ports.KitRepository
	Assets    ports.AssetRepository
	Blobs     ports.BlobStore
	Authority ports.BrandAuthority
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ManageAssetUseCase) Add(ctx context.Context, cmd AddAssetCommand) (entities.BrandAsset, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.BrandAsset{}, domainerrors.ErrUnauthenticated
	}
	kit, err := uc.Kits.GetKit(ctx, strings.TrimSpace(cmd.IPKitID))
	if err != nil {
		return entities.BrandAsset{}, err
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(cmd.ActorID), kit.BrandID)
	if err != nil {
		return entities.BrandAsset{}, err
	}
	if !allowed {
		return entities.BrandAsset{}, domainerrors.ErrNotBrandOwner
	}

	assetID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.BrandAsset{}, err
	}
	asset := entities.BrandAsset{
		AssetID:        assetID,
		IPKitID:        kit.IPKitID,
		BrandID:        kit.BrandID,
		Name:           strings.TrimSpace(cmd.Name),
		Kind:           cmd.Kind,
		StorageKey:     fmt.Sprintf("ipkits/%s/%s", kit.IPKitID, assetID),
		ContentType:    strings.TrimSpace(cmd.ContentType),
		SizeBytes:      cmd.SizeBytes,
		RegistryAnchor: strings.TrimSpace(cmd.RegistryAnchor),
		CreatedAt:      uc.Clock.Now().UTC(),
	}
	if !asset.ValidateBasics() {
		return entities.BrandAsset{}, domainerrors.ErrInvalidAssetInput
	}
	if cmd.Body == nil {
		return entities.BrandAsset{}, domainerrors.ErrInvalidAssetInput
	}
	if err := uc.Blobs.Upload(ctx, asset.StorageKey, asset.ContentType, cmd.Body); err != nil {
		return entities.BrandAsset{}, err
	}
	if err := uc.Assets.AddAsset(ctx, asset); err != nil {
		return entities.BrandAsset{}, err
	}

	logger.Info("brand asset added",
		"event", "brand_asset_added",
		"module", "brand-operations/ipkit-service",
		"layer", "application",
		"asset_id", asset.AssetID,
		"ip_kit_id", asset.IPKitID,
	)
	return asset, nil
}

func (uc ManageAssetUseCase) Remove(ctx context.Context, cmd RemoveAssetCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthenticated
	}
	asset, err := uc.Assets.GetAsset(ctx, strings.TrimSpace(cmd.AssetID))
	if err != nil {
		return err
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(cmd.ActorID), asset.BrandID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNotBrandOwner
	}

	if err := uc.Assets.RemoveAsset(ctx, asset.AssetID); err != nil {
		return err
	}
	if err := uc.Blobs.Delete(ctx, asset.StorageKey); err != nil {
		// The row is gone; losing the orphan blob is acceptable.
		logger.Warn("asset blob delete failed",
			"event", "brand_asset_blob_delete_failed",
			"module", "brand-operations/ipkit-service",
			"layer", "application",
			"asset_id", asset.AssetID,
			"error", err,
		)
	}

	logger.Info("brand asset removed",
		"event", "brand_asset_removed",
		"module", "brand-operations/ipkit-service",
		"layer", "application",
		"asset_id", asset.AssetID,
		"ip_kit_id", asset.IPKitID,
	)
	return nil
}
