package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"fanforge/contexts/creator-community/submission-service/application/commands"
	"fanforge/contexts/creator-community/submission-service/application/queries"
	"fanforge/contexts/creator-community/submission-service/domain/entities"
	"fanforge/contexts/creator-community/submission-service/ports"
	httptransport "fanforge/contexts/creator-community/submission-service/transport/http"
)

type Handler struct {
	CreateSubmission commands.CreateSubmissionUseCase
	UpdateSubmission commands.UpdateSubmissionUseCase
	OwnerActions     commands.OwnerSubmissionUseCase
	ReviewSubmission commands.ReviewSubmissionUseCase
	RegisterIP       commands.RegisterIPUseCase
	Eligibility      commands.EligibilityChecker
	Queries          queries.QueryUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateSubmissionRequest,
) (httptransport.CreateSubmissionResponse, error) {
	item, err := h.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
		CreatorID:    userID,
		CampaignID:   req.CampaignID,
		IPKitID:      req.IPKitID,
		Title:        req.Title,
		Description:  req.Description,
		ArtworkURL:   req.ArtworkURL,
		ThumbnailURL: req.ThumbnailURL,
		Tags:         req.Tags,
		Canvas:       req.Canvas,
		AssetIDs:     req.AssetIDs,
	})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) UpdateSubmissionHandler(
	ctx context.Context,
	userID string,
	submissionID string,
	req httptransport.UpdateSubmissionRequest,
) (httptransport.GetSubmissionResponse, error) {
	item, err := h.UpdateSubmission.Execute(ctx, commands.UpdateSubmissionCommand{
		SubmissionID: submissionID,
		CreatorID:    userID,
		Title:        req.Title,
		Description:  req.Description,
		ArtworkURL:   req.ArtworkURL,
		ThumbnailURL: req.ThumbnailURL,
		Tags:         req.Tags,
		Canvas:       req.Canvas,
		AssetIDs:     req.AssetIDs,
	})
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.GetSubmissionResponse, error) {
	item, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	creatorID string,
	campaignID string,
	status string,
	publicOnly bool,
) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListSubmissions(ctx, queries.ListSubmissionsQuery{
		CreatorID:  creatorID,
		CampaignID: campaignID,
		Status:     status,
		PublicOnly: publicOnly,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

func (h Handler) ApproveSubmissionHandler(
	ctx context.Context,
	reviewerID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.SubmissionViewResponse, error) {
	view, err := h.ReviewSubmission.Approve(ctx, commands.ApproveSubmissionCommand{
		SubmissionID: submissionID,
		ReviewerID:   reviewerID,
		Feedback:     req.Feedback,
		Rating:       req.Rating,
	})
	if err != nil {
		return httptransport.SubmissionViewResponse{}, err
	}
	return httptransport.SubmissionViewResponse{View: mapView(view)}, nil
}

func (h Handler) RejectSubmissionHandler(
	ctx context.Context,
	reviewerID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) (httptransport.SubmissionViewResponse, error) {
	view, err := h.ReviewSubmission.Reject(ctx, commands.RejectSubmissionCommand{
		SubmissionID: submissionID,
		ReviewerID:   reviewerID,
		Feedback:     req.Feedback,
		Rating:       req.Rating,
	})
	if err != nil {
		return httptransport.SubmissionViewResponse{}, err
	}
	return httptransport.SubmissionViewResponse{View: mapView(view)}, nil
}

func (h Handler) WithdrawSubmissionHandler(
	ctx context.Context,
	userID string,
	submissionID string,
) (httptransport.GetSubmissionResponse, error) {
	item, err := h.OwnerActions.Withdraw(ctx, commands.WithdrawSubmissionCommand{
		SubmissionID: submissionID,
		CreatorID:    userID,
	})
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{Submission: mapSubmission(item)}, nil
}

func (h Handler) DeleteSubmissionHandler(ctx context.Context, userID string, submissionID string) error {
	return h.OwnerActions.Delete(ctx, commands.DeleteSubmissionCommand{
		SubmissionID: submissionID,
		CreatorID:    userID,
	})
}

func (h Handler) RegisterIPHandler(ctx context.Context, submissionID string) (httptransport.RegisterIPResponse, error) {
	result, err := h.RegisterIP.Execute(ctx, commands.RegisterIPCommand{SubmissionID: submissionID})
	if err != nil {
		return httptransport.RegisterIPResponse{}, err
	}
	return httptransport.RegisterIPResponse{
		Success: result.Success,
		IPID:    result.IPID,
		TxHash:  result.TxHash,
		Error:   result.Error,
	}, nil
}

func (h Handler) EligibilityHandler(ctx context.Context, submissionID string) (httptransport.EligibilityResponse, error) {
	result, err := h.Eligibility.Check(ctx, submissionID)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return httptransport.EligibilityResponse{
		Eligible: result.Eligible,
		Reason:   result.Reason,
	}, nil
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		SubmissionID:       item.SubmissionID,
		CampaignID:         item.CampaignID,
		IPKitID:            item.IPKitID,
		CreatorID:          item.CreatorID,
		Title:              item.Title,
		Description:        item.Description,
		ArtworkURL:         item.ArtworkURL,
		ThumbnailURL:       item.ThumbnailURL,
		Tags:               item.Tags,
		Canvas:             item.Canvas,
		AssetIDs:           item.AssetIDs,
		Status:             string(item.Status),
		IsPublic:           item.IsPublic,
		ReviewedByUserID:   item.ReviewedByUserID,
		Feedback:           item.Feedback,
		Rating:             item.Rating,
		ExternalIPID:       item.ExternalIPID,
		RegistrationTxHash: item.RegistrationTxHash,
		CreatedAt:          item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          item.UpdatedAt.Format(time.RFC3339),
	}
	if item.ReviewedAt != nil {
		dto.ReviewedAt = item.ReviewedAt.Format(time.RFC3339)
	}
	return dto
}

func mapView(view ports.SubmissionView) httptransport.SubmissionViewDTO {
	return httptransport.SubmissionViewDTO{
		Submission:    mapSubmission(view.Submission),
		CampaignTitle: view.CampaignTitle,
		BrandID:       view.BrandID,
		CreatorName:   view.CreatorName,
	}
}
