package unit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	ipkitservice "fanforge/contexts/brand-operations/ipkit-service"
	"fanforge/contexts/brand-operations/ipkit-service/adapters/memory"
	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	httptransport "fanforge/contexts/brand-operations/ipkit-service/transport/http"
)

func TestKitCreatePublishFreeze(t *testing.T) {
	module := ipkitservice.NewInMemoryModule(memory.Seed{}, nil, nil)

	created, err := module.Handler.CreateKitHandler(context.Background(), "owner-1", httptransport.CreateKitRequest{
		BrandID:     "brand-1",
		Name:        "Mascot Pack",
		Description: "Official mascot art for remixing.",
		UsageTerms:  "non-commercial derivatives only",
	})
	if err != nil {
		t.Fatalf("create kit failed: %v", err)
	}
	if created.Kit.IsPublished {
		t.Fatalf("new kits start unpublished")
	}
	kitID := created.Kit.IPKitID

	published, err := module.Handler.PublishKitHandler(context.Background(), "owner-1", kitID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !published.Kit.IsPublished {
		t.Fatalf("expected published kit")
	}

	// Publishing again is a no-op, not an error.
	if _, err := module.Handler.PublishKitHandler(context.Background(), "owner-1", kitID); err != nil {
		t.Fatalf("republish must be idempotent: %v", err)
	}

	newName := "Renamed Pack"
	_, err = module.Handler.UpdateKitHandler(context.Background(), "owner-1", kitID, httptransport.UpdateKitRequest{
		Name: &newName,
	})
	if !errors.Is(err, domainerrors.ErrKitPublished) {
		t.Fatalf("published kits must be frozen, got %v", err)
	}
}

func TestKitManagementRequiresBrandAuthority(t *testing.T) {
	onlyOwner := ipkitservice.AuthorityFunc(func(userID string, brandID string) bool {
		return userID == "owner-1" && brandID == "brand-1"
	})
	module := ipkitservice.NewInMemoryModule(memory.Seed{}, onlyOwner, nil)

	_, err := module.Handler.CreateKitHandler(context.Background(), "stranger", httptransport.CreateKitRequest{
		BrandID: "brand-1",
		Name:    "Not Yours",
	})
	if !errors.Is(err, domainerrors.ErrNotBrandOwner) {
		t.Fatalf("expected not brand owner error, got %v", err)
	}

	_, err = module.Handler.CreateKitHandler(context.Background(), "", httptransport.CreateKitRequest{
		BrandID: "brand-1",
		Name:    "No Identity",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestAddAssetStoresBlobAndAnchor(t *testing.T) {
	seed := memory.Seed{Kits: []entities.IPKit{{
		IPKitID: "kit-1",
		BrandID: "brand-1",
		Name:    "Mascot Pack",
	}}}
	module := ipkitservice.NewInMemoryModule(seed, nil, nil)

	payload := []byte("png-bytes")
	resp, err := module.Handler.AddAssetHandler(context.Background(), "owner-1", "kit-1", httptransport.AddAssetMeta{
		Name:           "Mascot Front",
		Kind:           "character",
		ContentType:    "image/png",
		RegistryAnchor: "0xanchor-mascot",
	}, bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("add asset failed: %v", err)
	}
	asset := resp.Asset
	if asset.RegistryAnchor != "0xanchor-mascot" {
		t.Fatalf("registry anchor not recorded: %q", asset.RegistryAnchor)
	}
	if asset.SizeBytes != int64(len(payload)) {
		t.Fatalf("unexpected size: %d", asset.SizeBytes)
	}

	stored, err := module.Store.GetAsset(context.Background(), asset.AssetID)
	if err != nil {
		t.Fatalf("get asset failed: %v", err)
	}
	blob, ok := module.Store.Blob(stored.StorageKey)
	if !ok {
		t.Fatalf("expected blob stored under %q", stored.StorageKey)
	}
	if !bytes.Equal(blob, payload) {
		t.Fatalf("stored blob differs from upload")
	}

	listed, err := module.Handler.ListAssetsHandler(context.Background(), "kit-1")
	if err != nil {
		t.Fatalf("list assets failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected one asset, got %d", len(listed.Items))
	}
	if listed.Items[0].DownloadURL == "" {
		t.Fatalf("expected a signed download url")
	}
}

func TestAddAssetValidation(t *testing.T) {
	seed := memory.Seed{Kits: []entities.IPKit{{
		IPKitID: "kit-1",
		BrandID: "brand-1",
		Name:    "Mascot Pack",
	}}}
	module := ipkitservice.NewInMemoryModule(seed, nil, nil)

	_, err := module.Handler.AddAssetHandler(context.Background(), "owner-1", "kit-1", httptransport.AddAssetMeta{
		Name: "",
		Kind: "character",
	}, bytes.NewReader([]byte("x")), 1)
	if !errors.Is(err, domainerrors.ErrInvalidAssetInput) {
		t.Fatalf("expected invalid asset input for empty name, got %v", err)
	}

	_, err = module.Handler.AddAssetHandler(context.Background(), "owner-1", "kit-1", httptransport.AddAssetMeta{
		Name: "Broken Kind",
		Kind: "hologram",
	}, bytes.NewReader([]byte("x")), 1)
	if !errors.Is(err, domainerrors.ErrInvalidAssetInput) {
		t.Fatalf("expected invalid asset input for unknown kind, got %v", err)
	}

	_, err = module.Handler.AddAssetHandler(context.Background(), "owner-1", "kit-missing", httptransport.AddAssetMeta{
		Name: "Orphan",
		Kind: "logo",
	}, bytes.NewReader([]byte("x")), 1)
	if !errors.Is(err, domainerrors.ErrIPKitNotFound) {
		t.Fatalf("expected kit not found, got %v", err)
	}
}

func TestRemoveAssetDeletesRowAndBlob(t *testing.T) {
	seed := memory.Seed{Kits: []entities.IPKit{{
		IPKitID: "kit-1",
		BrandID: "brand-1",
		Name:    "Mascot Pack",
	}}}
	module := ipkitservice.NewInMemoryModule(seed, nil, nil)

	payload := []byte("wav-bytes")
	resp, err := module.Handler.AddAssetHandler(context.Background(), "owner-1", "kit-1", httptransport.AddAssetMeta{
		Name:        "Jingle",
		Kind:        "audio",
		ContentType: "audio/wav",
	}, bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("add asset failed: %v", err)
	}

	stored, err := module.Store.GetAsset(context.Background(), resp.Asset.AssetID)
	if err != nil {
		t.Fatalf("get asset failed: %v", err)
	}

	if err := module.Handler.RemoveAssetHandler(context.Background(), "owner-1", resp.Asset.AssetID); err != nil {
		t.Fatalf("remove asset failed: %v", err)
	}
	if _, err := module.Store.GetAsset(context.Background(), resp.Asset.AssetID); !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("expected asset row removed, got %v", err)
	}
	if _, ok := module.Store.Blob(stored.StorageKey); ok {
		t.Fatalf("expected blob removed")
	}

	if err := module.Handler.RemoveAssetHandler(context.Background(), "owner-1", resp.Asset.AssetID); !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestListKitsPublishedFilter(t *testing.T) {
	seed := memory.Seed{Kits: []entities.IPKit{
		{IPKitID: "kit-1", BrandID: "brand-1", Name: "Live Pack", IsPublished: true},
		{IPKitID: "kit-2", BrandID: "brand-1", Name: "WIP Pack"},
	}}
	module := ipkitservice.NewInMemoryModule(seed, nil, nil)

	published, err := module.Handler.ListKitsHandler(context.Background(), "brand-1", true)
	if err != nil {
		t.Fatalf("list kits failed: %v", err)
	}
	if len(published.Items) != 1 || published.Items[0].IPKitID != "kit-1" {
		t.Fatalf("expected only published kits, got %+v", published.Items)
	}

	all, err := module.Handler.ListKitsHandler(context.Background(), "brand-1", false)
	if err != nil {
		t.Fatalf("list kits failed: %v", err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("expected both kits, got %d", len(all.Items))
	}
}
