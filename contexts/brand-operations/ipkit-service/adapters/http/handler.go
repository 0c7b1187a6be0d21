package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fanforge/contexts/brand-operations/ipkit-service/application/commands"
	"fanforge/contexts/brand-operations/ipkit-service/application/queries"
	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
	httptransport "fanforge/contexts/brand-operations/ipkit-service/transport/http"
)

type Handler struct {
	ManageKits   commands.ManageKitUseCase
	ManageAssets commands.ManageAssetUseCase
	Queries      queries.QueryUseCase
	Logger       *slog.Logger
}

func (h Handler) CreateKitHandler(ctx context.Context, userID string, req httptransport.CreateKitRequest) (httptransport.KitResponse, error) {
	kit, err := h.ManageKits.Create(ctx, commands.CreateKitCommand{
		ActorID:     userID,
		BrandID:     req.BrandID,
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		UsageTerms:  req.UsageTerms,
	})
	if err != nil {
		return httptransport.KitResponse{}, err
	}
	return httptransport.KitResponse{Kit: mapKit(kit)}, nil
}

func (h Handler) UpdateKitHandler(ctx context.Context, userID string, kitID string, req httptransport.UpdateKitRequest) (httptransport.KitResponse, error) {
	kit, err := h.ManageKits.Update(ctx, commands.UpdateKitCommand{
		ActorID:     userID,
		IPKitID:     kitID,
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		UsageTerms:  req.UsageTerms,
	})
	if err != nil {
		return httptransport.KitResponse{}, err
	}
	return httptransport.KitResponse{Kit: mapKit(kit)}, nil
}

func (h Handler) PublishKitHandler(ctx context.Context, userID string, kitID string) (httptransport.KitResponse, error) {
	kit, err := h.ManageKits.Publish(ctx, commands.PublishKitCommand{ActorID: userID, IPKitID: kitID})
	if err != nil {
		return httptransport.KitResponse{}, err
	}
	return httptransport.KitResponse{Kit: mapKit(kit)}, nil
}

func (h Handler) GetKitHandler(ctx context.Context, kitID string) (httptransport.KitResponse, error) {
	kit, err := h.Queries.GetKit(ctx, kitID)
	if err != nil {
		return httptransport.KitResponse{}, err
	}
	return httptransport.KitResponse{Kit: mapKit(kit)}, nil
}

func (h Handler) ListKitsHandler(ctx context.Context, brandID string, publishedOnly bool) (httptransport.ListKitsResponse, error) {
	kits, err := h.Queries.ListKits(ctx, ports.KitFilter{BrandID: brandID, PublishedOnly: publishedOnly})
	if err != nil {
		return httptransport.ListKitsResponse{}, err
	}
	items := make([]httptransport.IPKitDTO, 0, len(kits))
	for _, kit := range kits {
		items = append(items, mapKit(kit))
	}
	return httptransport.ListKitsResponse{Items: items}, nil
}

func (h Handler) AddAssetHandler(
	ctx context.Context,
	userID string,
	kitID string,
	meta httptransport.AddAssetMeta,
	body io.Reader,
	sizeBytes int64,
) (httptransport.AssetResponse, error) {
	asset, err := h.ManageAssets.Add(ctx, commands.AddAssetCommand{
		ActorID:        userID,
		IPKitID:        kitID,
		Name:           meta.Name,
		Kind:           entities.AssetKind(meta.Kind),
		ContentType:    meta.ContentType,
		SizeBytes:      sizeBytes,
		RegistryAnchor: meta.RegistryAnchor,
		Body:           body,
	})
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return httptransport.AssetResponse{Asset: mapAsset(asset, "")}, nil
}

func (h Handler) RemoveAssetHandler(ctx context.Context, userID string, assetID string) error {
	return h.ManageAssets.Remove(ctx, commands.RemoveAssetCommand{ActorID: userID, AssetID: assetID})
}

func (h Handler) ListAssetsHandler(ctx context.Context, kitID string) (httptransport.ListAssetsResponse, error) {
	views, err := h.Queries.ListAssets(ctx, kitID)
	if err != nil {
		return httptransport.ListAssetsResponse{}, err
	}
	items := make([]httptransport.BrandAssetDTO, 0, len(views))
	for _, view := range views {
		items = append(items, mapAsset(view.Asset, view.DownloadURL))
	}
	return httptransport.ListAssetsResponse{Items: items}, nil
}

func mapKit(kit entities.IPKit) httptransport.IPKitDTO {
	return httptransport.IPKitDTO{
		IPKitID:     kit.IPKitID,
		BrandID:     kit.BrandID,
		Name:        kit.Name,
		Description: kit.Description,
		CoverURL:    kit.CoverURL,
		UsageTerms:  kit.UsageTerms,
		IsPublished: kit.IsPublished,
		CreatedAt:   kit.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   kit.UpdatedAt.Format(time.RFC3339),
	}
}

func mapAsset(asset entities.BrandAsset, downloadURL string) httptransport.BrandAssetDTO {
	return httptransport.BrandAssetDTO{
		AssetID:        asset.AssetID,
		IPKitID:        asset.IPKitID,
		BrandID:        asset.BrandID,
		Name:           asset.Name,
		Kind:           string(asset.Kind),
		ContentType:    asset.ContentType,
		SizeBytes:      asset.SizeBytes,
		RegistryAnchor: asset.RegistryAnchor,
		DownloadURL:    downloadURL,
		CreatedAt:      asset.CreatedAt.Format(time.RFC3339),
	}
}
