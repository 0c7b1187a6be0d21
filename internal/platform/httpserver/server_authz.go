package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzerrors "fanforge/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "fanforge/contexts/identity-access/authorization-service/transport/http"
)

func (s *Server) handleAuthzCheck(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.CheckPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.UserID == "" {
		req.UserID = requestUserID(r)
	}
	resp, err := s.authorization.Handler.CheckPermissionHandler(r.Context(), req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthzListRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.authorization.Handler.ListRolesHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthzGrantRole(w http.ResponseWriter, r *http.Request) {
	actorID := requestUserID(r)
	if actorID == "" {
		writeAuthzError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req authzhttp.GrantRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.GrantRoleHandler(r.Context(), actorID, req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAuthzRevokeRole(w http.ResponseWriter, r *http.Request) {
	actorID := requestUserID(r)
	if actorID == "" {
		writeAuthzError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req authzhttp.RevokeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.RevokeRoleHandler(r.Context(), actorID, req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrUnauthenticated):
		writeAuthzError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeAuthzError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, authzerrors.ErrAssignmentNotFound):
		writeAuthzError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, authzerrors.ErrAssignmentDuplicate):
		writeAuthzError(w, http.StatusConflict, err.Error())
	case errors.Is(err, authzerrors.ErrInvalidUserID),
		errors.Is(err, authzerrors.ErrInvalidRole),
		errors.Is(err, authzerrors.ErrInvalidPermission):
		writeAuthzError(w, http.StatusBadRequest, err.Error())
	default:
		writeAuthzError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeAuthzError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{Error: message})
}
