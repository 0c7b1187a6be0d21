package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

// Store keeps kits, assets and blob bytes in memory. Tests and local runs.
type Store struct {
	mu     sync.Mutex
	kits   map[string]entities.IPKit
	assets map[string]entities.BrandAsset
	blobs  map[string][]byte
	now    time.Time
	idSeq  int
}

type Seed struct {
	Kits   []entities.IPKit
	Assets []entities.BrandAsset
	Now    time.Time
}

func NewStore(seed Seed) *Store {
	store := &Store{
		kits:   make(map[string]entities.IPKit),
		assets: make(map[string]entities.BrandAsset),
		blobs:  make(map[string][]byte),
		now:    seed.Now,
	}
	if store.now.IsZero() {
		store.now = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	}
	for _, kit := range seed.Kits {
		store.kits[kit.IPKitID] = kit
	}
	for _, asset := range seed.Assets {
		store.assets[asset.AssetID] = asset
	}
	return store
}

var _ ports.KitRepository = (*Store)(nil)
var _ ports.AssetRepository = (*Store)(nil)
var _ ports.BlobStore = (*Store)(nil)

func (s *Store) CreateKit(_ context.Context, kit entities.IPKit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kits[kit.IPKitID] = kit
	return nil
}

func (s *Store) UpdateKit(_ context.Context, kit entities.IPKit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.kits[kit.IPKitID]; !ok {
		return domainerrors.ErrIPKitNotFound
	}
	s.kits[kit.IPKitID] = kit
	return nil
}

func (s *Store) GetKit(_ context.Context, kitID string) (entities.IPKit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kit, ok := s.kits[kitID]
	if !ok {
		return entities.IPKit{}, domainerrors.ErrIPKitNotFound
	}
	return kit, nil
}

func (s *Store) ListKits(_ context.Context, filter ports.KitFilter) ([]entities.IPKit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kits := make([]entities.IPKit, 0, len(s.kits))
	for _, kit := range s.kits {
		if filter.BrandID != "" && kit.BrandID != filter.BrandID {
			continue
		}
		if filter.PublishedOnly && !kit.IsPublished {
			continue
		}
		kits = append(kits, kit)
	}
	sort.Slice(kits, func(i, j int) bool {
		return kits[i].CreatedAt.After(kits[j].CreatedAt)
	})
	return kits, nil
}

func (s *Store) AddAsset(_ context.Context, asset entities.BrandAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.AssetID] = asset
	return nil
}

func (s *Store) GetAsset(_ context.Context, assetID string) (entities.BrandAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return entities.BrandAsset{}, domainerrors.ErrAssetNotFound
	}
	return asset, nil
}

func (s *Store) ListAssets(_ context.Context, kitID string) ([]entities.BrandAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := make([]entities.BrandAsset, 0)
	for _, asset := range s.assets {
		if asset.IPKitID == kitID {
			assets = append(assets, asset)
		}
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.Before(assets[j].CreatedAt)
	})
	return assets, nil
}

func (s *Store) RemoveAsset(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[assetID]; !ok {
		return domainerrors.ErrAssetNotFound
	}
	delete(s.assets, assetID)
	return nil
}

func (s *Store) Upload(_ context.Context, key string, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *Store) PresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return "", domainerrors.ErrAssetNotFound
	}
	return "https://blobs.local/" + key, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *Store) Blob(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	return data, ok
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idSeq++
	return fmt.Sprintf("ipkit-id-%04d", s.idSeq), nil
}
