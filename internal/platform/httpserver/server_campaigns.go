package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "fanforge/contexts/brand-operations/campaign-service/domain/errors"
	campaignhttp "fanforge/contexts/brand-operations/campaign-service/transport/http"
)

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), userID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.campaigns.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("status"),
		query.Get("active") == "true",
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req campaignhttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.campaigns.Handler.UpdateCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	resp, err := s.campaigns.Handler.LaunchCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseCampaign(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	resp, err := s.campaigns.Handler.CloseCampaignHandler(r.Context(), userID, r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrUnauthenticated):
		writeCampaignError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, campaignerrors.ErrNotBrandOwner):
		writeCampaignError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrInvalidStatusTransition):
		writeCampaignError(w, http.StatusBadRequest, err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{Error: message})
}
