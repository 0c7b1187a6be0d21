package unit

import (
	"context"
	"errors"
	"testing"

	submissionservice "fanforge/contexts/creator-community/submission-service"
	"fanforge/contexts/creator-community/submission-service/adapters/memory"
	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
	httptransport "fanforge/contexts/creator-community/submission-service/transport/http"
)

func lifecycleSeed() memory.Seed {
	return memory.Seed{
		Campaigns: []ports.CampaignRef{
			{CampaignID: "campaign-active", BrandID: "brand-1", Title: "Summer Remix", Status: "active"},
			{CampaignID: "campaign-draft", BrandID: "brand-1", Title: "Winter Teaser", Status: "draft"},
		},
	}
}

func TestCreateSubmissionNormalizesInput(t *testing.T) {
	module := submissionservice.NewInMemoryModule(lifecycleSeed(), nil, nil)

	resp, err := module.Handler.CreateSubmissionHandler(context.Background(), "creator-1", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-active",
		Title:      "  Mascot Skate Deck  ",
		ArtworkURL: "https://cdn.fanforge.dev/art/deck.png",
		Tags:       []string{" FanArt ", "fanart", "", "SKATE"},
		AssetIDs:   []string{"asset-1", "asset-1", " asset-2 "},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	submission := resp.Submission
	if submission.Status != "pending" {
		t.Fatalf("new submissions start pending, got %s", submission.Status)
	}
	if submission.IsPublic {
		t.Fatalf("new submissions must not be public")
	}
	if submission.Title != "Mascot Skate Deck" {
		t.Fatalf("expected trimmed title, got %q", submission.Title)
	}
	if len(submission.Tags) != 3 || submission.Tags[0] != "fanart" || submission.Tags[2] != "skate" {
		t.Fatalf("unexpected tag normalization: %v", submission.Tags)
	}
	if len(submission.AssetIDs) != 2 {
		t.Fatalf("expected deduped asset ids, got %v", submission.AssetIDs)
	}
}

func TestCreateSubmissionRequiresActiveCampaign(t *testing.T) {
	module := submissionservice.NewInMemoryModule(lifecycleSeed(), nil, nil)

	_, err := module.Handler.CreateSubmissionHandler(context.Background(), "creator-1", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-draft",
		Title:      "Too Early",
		ArtworkURL: "https://cdn.fanforge.dev/art/early.png",
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotActive) {
		t.Fatalf("expected campaign not active error, got %v", err)
	}

	_, err = module.Handler.CreateSubmissionHandler(context.Background(), "creator-1", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-missing",
		Title:      "Lost",
		ArtworkURL: "https://cdn.fanforge.dev/art/lost.png",
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found error, got %v", err)
	}
}

func TestCreateSubmissionValidation(t *testing.T) {
	module := submissionservice.NewInMemoryModule(lifecycleSeed(), nil, nil)

	_, err := module.Handler.CreateSubmissionHandler(context.Background(), "", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-active",
		Title:      "No Identity",
		ArtworkURL: "https://cdn.fanforge.dev/art/x.png",
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}

	_, err = module.Handler.CreateSubmissionHandler(context.Background(), "creator-1", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-active",
		Title:      "   ",
		ArtworkURL: "https://cdn.fanforge.dev/art/x.png",
	})
	if !errors.Is(err, domainerrors.ErrInvalidSubmissionInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUpdateSubmissionOwnershipAndStatusRules(t *testing.T) {
	module := submissionservice.NewInMemoryModule(lifecycleSeed(), nil, nil)

	created, err := module.Handler.CreateSubmissionHandler(context.Background(), "creator-1", httptransport.CreateSubmissionRequest{
		CampaignID: "campaign-active",
		Title:      "First Draft",
		ArtworkURL: "https://cdn.fanforge.dev/art/v1.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	submissionID := created.Submission.SubmissionID

	_, err = module.Handler.UpdateSubmissionHandler(context.Background(), "creator-2", submissionID, httptransport.UpdateSubmissionRequest{
		Title: "Hijacked",
	})
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not owner error, got %v", err)
	}

	updated, err := module.Handler.UpdateSubmissionHandler(context.Background(), "creator-1", submissionID, httptransport.UpdateSubmissionRequest{
		Title:      "Second Draft",
		ArtworkURL: "https://cdn.fanforge.dev/art/v2.png",
	})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Submission.Title != "Second Draft" || updated.Submission.ArtworkURL != "https://cdn.fanforge.dev/art/v2.png" {
		t.Fatalf("update not applied: %+v", updated.Submission)
	}

	if _, err := module.Handler.ApproveSubmissionHandler(context.Background(), "reviewer-1", submissionID, httptransport.ReviewSubmissionRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	_, err = module.Handler.UpdateSubmissionHandler(context.Background(), "creator-1", submissionID, httptransport.UpdateSubmissionRequest{
		Title: "Too Late",
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition on approved edit, got %v", err)
	}
}

func TestWithdrawSubmissionFromPendingAndRejected(t *testing.T) {
	seed := lifecycleSeed()
	seed.Submissions = []entities.Submission{
		{
			SubmissionID: "sub-pending",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Pending Entry",
			ArtworkURL:   "https://cdn.fanforge.dev/art/p.png",
			Status:       entities.SubmissionStatusPending,
		},
		{
			SubmissionID: "sub-rejected",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Rejected Entry",
			ArtworkURL:   "https://cdn.fanforge.dev/art/r.png",
			Status:       entities.SubmissionStatusRejected,
		},
		{
			SubmissionID: "sub-approved",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Approved Entry",
			ArtworkURL:   "https://cdn.fanforge.dev/art/a.png",
			Status:       entities.SubmissionStatusApproved,
		},
	}
	module := submissionservice.NewInMemoryModule(seed, nil, nil)

	withdrawn, err := module.Handler.WithdrawSubmissionHandler(context.Background(), "creator-1", "sub-pending")
	if err != nil {
		t.Fatalf("withdraw pending failed: %v", err)
	}
	if withdrawn.Submission.Status != "withdrawn" {
		t.Fatalf("expected withdrawn, got %s", withdrawn.Submission.Status)
	}

	if _, err := module.Handler.WithdrawSubmissionHandler(context.Background(), "creator-1", "sub-rejected"); err != nil {
		t.Fatalf("withdraw rejected failed: %v", err)
	}

	_, err = module.Handler.WithdrawSubmissionHandler(context.Background(), "creator-1", "sub-approved")
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition withdrawing approved, got %v", err)
	}

	_, err = module.Handler.WithdrawSubmissionHandler(context.Background(), "creator-2", "sub-pending")
	if !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected not owner error, got %v", err)
	}

	audits := module.Store.Audits()
	if len(audits) != 2 {
		t.Fatalf("expected two withdrawal audits, got %d", len(audits))
	}
	for _, audit := range audits {
		if audit.Action != "submission_withdrawn" {
			t.Fatalf("unexpected audit action: %s", audit.Action)
		}
	}
}

func TestDeleteSubmissionKeepsApprovedRecords(t *testing.T) {
	seed := lifecycleSeed()
	seed.Submissions = []entities.Submission{
		{
			SubmissionID: "sub-rejected",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Rejected Entry",
			ArtworkURL:   "https://cdn.fanforge.dev/art/r.png",
			Status:       entities.SubmissionStatusRejected,
		},
		{
			SubmissionID: "sub-approved",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Approved Entry",
			ArtworkURL:   "https://cdn.fanforge.dev/art/a.png",
			Status:       entities.SubmissionStatusApproved,
		},
	}
	module := submissionservice.NewInMemoryModule(seed, nil, nil)

	if err := module.Handler.DeleteSubmissionHandler(context.Background(), "creator-1", "sub-rejected"); err != nil {
		t.Fatalf("delete rejected failed: %v", err)
	}
	_, err := module.Handler.GetSubmissionHandler(context.Background(), "sub-rejected")
	if !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	err = module.Handler.DeleteSubmissionHandler(context.Background(), "creator-1", "sub-approved")
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("approved submissions must never be deleted, got %v", err)
	}
}

func TestListSubmissionsFilters(t *testing.T) {
	seed := lifecycleSeed()
	seed.Submissions = []entities.Submission{
		{
			SubmissionID: "sub-1",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-1",
			Title:        "Public Winner",
			ArtworkURL:   "https://cdn.fanforge.dev/art/1.png",
			Status:       entities.SubmissionStatusApproved,
			IsPublic:     true,
		},
		{
			SubmissionID: "sub-2",
			CampaignID:   "campaign-active",
			CreatorID:    "creator-2",
			Title:        "Still Pending",
			ArtworkURL:   "https://cdn.fanforge.dev/art/2.png",
			Status:       entities.SubmissionStatusPending,
		},
	}
	module := submissionservice.NewInMemoryModule(seed, nil, nil)

	publicOnly, err := module.Handler.ListSubmissionsHandler(context.Background(), "", "campaign-active", "", true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(publicOnly.Items) != 1 || publicOnly.Items[0].SubmissionID != "sub-1" {
		t.Fatalf("expected only the public submission, got %+v", publicOnly.Items)
	}

	byCreator, err := module.Handler.ListSubmissionsHandler(context.Background(), "creator-2", "", "", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byCreator.Items) != 1 || byCreator.Items[0].SubmissionID != "sub-2" {
		t.Fatalf("expected creator-2's submission, got %+v", byCreator.Items)
	}

	byStatus, err := module.Handler.ListSubmissionsHandler(context.Background(), "", "", "pending", false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byStatus.Items) != 1 || byStatus.Items[0].SubmissionID != "sub-2" {
		t.Fatalf("expected pending submissions only, got %+v", byStatus.Items)
	}
}
