package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	"fanforge/contexts/brand-operations/campaign-service/ports"
)

// Store is an in-memory campaign repository used by tests and local runs.
type Store struct {
	mu        sync.Mutex
	campaigns map[string]entities.Campaign
	history   []entities.StateHistory
	now       time.Time
	idSeq     int
}

type Seed struct {
	Campaigns []entities.Campaign
	Now       time.Time
}

func NewStore(seed Seed) *Store {
	store := &Store{
		campaigns: make(map[string]entities.Campaign),
		now:       seed.Now,
	}
	if store.now.IsZero() {
		store.now = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	}
	for _, campaign := range seed.Campaigns {
		store.campaigns[campaign.CampaignID] = campaign
	}
	return store
}

var _ ports.CampaignRepository = (*Store)(nil)
var _ ports.HistoryRepository = (*Store)(nil)

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[campaign.CampaignID]; !ok {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaigns := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if filter.BrandID != "" && campaign.BrandID != filter.BrandID {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && campaign.Status != entities.CampaignStatusActive {
			continue
		}
		campaigns = append(campaigns, campaign)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

func (s *Store) AppendState(_ context.Context, item entities.StateHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, item)
	return nil
}

func (s *Store) History() []entities.StateHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.StateHistory, len(s.history))
	copy(out, s.history)
	return out
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
	return fmt.Sprintf("campaign-id-%04d", s.idSeq), nil
}
