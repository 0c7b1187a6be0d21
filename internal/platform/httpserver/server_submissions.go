package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	submissionerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	submissionhttp "fanforge/contexts/creator-community/submission-service/transport/http"
)

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req submissionhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.submissions.Handler.CreateSubmissionHandler(r.Context(), userID, req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.submissions.Handler.ListSubmissionsHandler(
		r.Context(),
		query.Get("creator_id"),
		query.Get("campaign_id"),
		query.Get("status"),
		query.Get("public") == "true",
	)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req submissionhttp.UpdateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.submissions.Handler.UpdateSubmissionHandler(r.Context(), userID, r.PathValue("submission_id"), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	if err := s.submissions.Handler.DeleteSubmissionHandler(r.Context(), userID, r.PathValue("submission_id")); err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWithdrawSubmission(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	resp, err := s.submissions.Handler.WithdrawSubmissionHandler(r.Context(), userID, r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveSubmission(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, true)
}

func (s *Server) handleRejectSubmission(w http.ResponseWriter, r *http.Request) {
	s.handleReview(w, r, false)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request, approve bool) {
	reviewerID := requestUserID(r)
	if reviewerID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req submissionhttp.ReviewSubmissionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeSubmissionError(w, http.StatusBadRequest, "request body must be valid JSON")
			return
		}
	}

	submissionID := r.PathValue("submission_id")
	var resp submissionhttp.SubmissionViewResponse
	var err error
	if approve {
		resp, err = s.submissions.Handler.ApproveSubmissionHandler(r.Context(), reviewerID, submissionID, req)
	} else {
		resp, err = s.submissions.Handler.RejectSubmissionHandler(r.Context(), reviewerID, submissionID, req)
	}
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterIP(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	resp, err := s.submissions.Handler.RegisterIPHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterEligibility(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.EligibilityHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrUnauthenticated):
		writeSubmissionError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, submissionerrors.ErrForbidden),
		errors.Is(err, submissionerrors.ErrNotOwner):
		writeSubmissionError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound),
		errors.Is(err, submissionerrors.ErrCampaignNotFound):
		writeSubmissionError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidSubmissionInput),
		errors.Is(err, submissionerrors.ErrCampaignNotActive),
		errors.Is(err, submissionerrors.ErrFeedbackRequired),
		errors.Is(err, submissionerrors.ErrInvalidStatusTransition),
		errors.Is(err, submissionerrors.ErrNotRegistrable):
		writeSubmissionError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, submissionerrors.ErrAlreadyRegistered):
		writeSubmissionError(w, http.StatusConflict, err.Error())
	case errors.Is(err, submissionerrors.ErrRegistryUnavailable):
		writeSubmissionError(w, http.StatusBadGateway, err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{Error: message})
}
