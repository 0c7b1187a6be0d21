package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	campaignservice "fanforge/contexts/brand-operations/campaign-service"
	"fanforge/contexts/brand-operations/campaign-service/adapters/memory"
	"fanforge/contexts/brand-operations/campaign-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	httptransport "fanforge/contexts/brand-operations/campaign-service/transport/http"
)

func TestCampaignCreateLaunchCloseFlow(t *testing.T) {
	module := campaignservice.NewInMemoryModule(memory.Seed{}, nil, nil)

	created, err := module.Handler.CreateCampaignHandler(context.Background(), "owner-1", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		IPKitID:     "kit-1",
		Title:       "Summer Remix",
		Description: "Remix our mascot for the summer drop.",
		StartsAt:    "2026-06-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Campaign.Status != "draft" {
		t.Fatalf("new campaigns start as drafts, got %s", created.Campaign.Status)
	}
	campaignID := created.Campaign.CampaignID

	launched, err := module.Handler.LaunchCampaignHandler(context.Background(), "owner-1", campaignID)
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}
	if launched.Campaign.Status != "active" {
		t.Fatalf("expected active after launch, got %s", launched.Campaign.Status)
	}
	if launched.Campaign.LaunchedAt == "" {
		t.Fatalf("expected launch timestamp")
	}

	closed, err := module.Handler.CloseCampaignHandler(context.Background(), "owner-1", campaignID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Campaign.Status != "closed" {
		t.Fatalf("expected closed, got %s", closed.Campaign.Status)
	}
	if closed.Campaign.ClosedAt == "" {
		t.Fatalf("expected close timestamp")
	}

	history := module.Store.History()
	if len(history) != 2 {
		t.Fatalf("expected two state history rows, got %d", len(history))
	}
	if history[0].OldStatus != entities.CampaignStatusDraft || history[0].NewStatus != entities.CampaignStatusActive {
		t.Fatalf("unexpected first history row: %+v", history[0])
	}
	if history[1].OldStatus != entities.CampaignStatusActive || history[1].NewStatus != entities.CampaignStatusClosed {
		t.Fatalf("unexpected second history row: %+v", history[1])
	}
	if history[0].ActorID != "owner-1" {
		t.Fatalf("expected actor recorded in history, got %q", history[0].ActorID)
	}
}

func TestCampaignLifecycleRejectsInvalidTransitions(t *testing.T) {
	seed := memory.Seed{Campaigns: []entities.Campaign{
		{CampaignID: "campaign-closed", BrandID: "brand-1", Title: "Done Deal", Description: "over", Status: entities.CampaignStatusClosed},
		{CampaignID: "campaign-draft", BrandID: "brand-1", Title: "Not Yet", Description: "soon", Status: entities.CampaignStatusDraft},
	}}
	module := campaignservice.NewInMemoryModule(seed, nil, nil)

	_, err := module.Handler.LaunchCampaignHandler(context.Background(), "owner-1", "campaign-closed")
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition launching closed campaign, got %v", err)
	}

	_, err = module.Handler.CloseCampaignHandler(context.Background(), "owner-1", "campaign-draft")
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition closing draft campaign, got %v", err)
	}
}

func TestCampaignCreateValidation(t *testing.T) {
	module := campaignservice.NewInMemoryModule(memory.Seed{}, nil, nil)

	_, err := module.Handler.CreateCampaignHandler(context.Background(), "owner-1", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "ab",
		Description: "title too short",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for short title, got %v", err)
	}

	_, err = module.Handler.CreateCampaignHandler(context.Background(), "owner-1", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Broken Dates",
		Description: "starts_at is not RFC3339",
		StartsAt:    "June 1st",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for malformed time, got %v", err)
	}

	_, err = module.Handler.CreateCampaignHandler(context.Background(), "", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "No Identity",
		Description: "missing actor",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestCampaignCreateRequiresBrandAuthority(t *testing.T) {
	onlyOwner := campaignservice.AuthorityFunc(func(userID string, brandID string) bool {
		return userID == "owner-1" && brandID == "brand-1"
	})
	module := campaignservice.NewInMemoryModule(memory.Seed{}, onlyOwner, nil)

	_, err := module.Handler.CreateCampaignHandler(context.Background(), "stranger", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Not Yours",
		Description: "stranger cannot create",
	})
	if !errors.Is(err, domainerrors.ErrNotBrandOwner) {
		t.Fatalf("expected not brand owner error, got %v", err)
	}

	if _, err := module.Handler.CreateCampaignHandler(context.Background(), "owner-1", httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		Title:       "Owner Campaign",
		Description: "allowed",
	}); err != nil {
		t.Fatalf("owner create failed: %v", err)
	}
}

func TestCampaignUpdatePatchesOnlyProvidedFields(t *testing.T) {
	startsAt := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	seed := memory.Seed{Campaigns: []entities.Campaign{{
		CampaignID:  "campaign-1",
		BrandID:     "brand-1",
		Title:       "Original Title",
		Description: "original description",
		Status:      entities.CampaignStatusDraft,
		StartsAt:    &startsAt,
	}}}
	module := campaignservice.NewInMemoryModule(seed, nil, nil)

	newTitle := "Renamed Campaign"
	updated, err := module.Handler.UpdateCampaignHandler(context.Background(), "owner-1", "campaign-1", httptransport.UpdateCampaignRequest{
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Campaign.Title != "Renamed Campaign" {
		t.Fatalf("title not updated: %q", updated.Campaign.Title)
	}
	if updated.Campaign.Description != "original description" {
		t.Fatalf("untouched field changed: %q", updated.Campaign.Description)
	}
	if updated.Campaign.StartsAt == "" {
		t.Fatalf("untouched starts_at was cleared")
	}
}

func TestCampaignUpdateBlockedOnceClosed(t *testing.T) {
	seed := memory.Seed{Campaigns: []entities.Campaign{{
		CampaignID:  "campaign-1",
		BrandID:     "brand-1",
		Title:       "Finished",
		Description: "already closed",
		Status:      entities.CampaignStatusClosed,
	}}}
	module := campaignservice.NewInMemoryModule(seed, nil, nil)

	newTitle := "Zombie Edit"
	_, err := module.Handler.UpdateCampaignHandler(context.Background(), "owner-1", "campaign-1", httptransport.UpdateCampaignRequest{
		Title: &newTitle,
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition editing closed campaign, got %v", err)
	}
}

func TestCampaignListFilters(t *testing.T) {
	seed := memory.Seed{Campaigns: []entities.Campaign{
		{CampaignID: "campaign-1", BrandID: "brand-1", Title: "Live", Description: "d", Status: entities.CampaignStatusActive},
		{CampaignID: "campaign-2", BrandID: "brand-1", Title: "Draft", Description: "d", Status: entities.CampaignStatusDraft},
		{CampaignID: "campaign-3", BrandID: "brand-2", Title: "Other Brand", Description: "d", Status: entities.CampaignStatusActive},
	}}
	module := campaignservice.NewInMemoryModule(seed, nil, nil)

	active, err := module.Handler.ListCampaignsHandler(context.Background(), "brand-1", "", true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active.Items) != 1 || active.Items[0].CampaignID != "campaign-1" {
		t.Fatalf("expected only brand-1's active campaign, got %+v", active.Items)
	}

	drafts, err := module.Handler.ListCampaignsHandler(context.Background(), "", "draft", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(drafts.Items) != 1 || drafts.Items[0].CampaignID != "campaign-2" {
		t.Fatalf("expected draft campaigns only, got %+v", drafts.Items)
	}
}
