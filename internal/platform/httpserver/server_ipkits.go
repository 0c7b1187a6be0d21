package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ipkiterrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	ipkithttp "fanforge/contexts/brand-operations/ipkit-service/transport/http"
)

const maxAssetUploadBytes = 64 << 20

func (s *Server) handleCreateKit(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeKitError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req ipkithttp.CreateKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKitError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.ipkits.Handler.CreateKitHandler(r.Context(), userID, req)
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListKits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.ipkits.Handler.ListKitsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("published") == "true",
	)
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetKit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ipkits.Handler.GetKitHandler(r.Context(), r.PathValue("kit_id"))
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateKit(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeKitError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	var req ipkithttp.UpdateKitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeKitError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.ipkits.Handler.UpdateKitHandler(r.Context(), userID, r.PathValue("kit_id"), req)
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishKit(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeKitError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	resp, err := s.ipkits.Handler.PublishKitHandler(r.Context(), userID, r.PathValue("kit_id"))
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAddAsset accepts a multipart form: metadata fields plus one "file"
// part streamed to the blob store.
func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeKitError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	if err := r.ParseMultipartForm(maxAssetUploadBytes); err != nil {
		writeKitError(w, http.StatusBadRequest, "request must be multipart form data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeKitError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	meta := ipkithttp.AddAssetMeta{
		Name:           r.FormValue("name"),
		Kind:           r.FormValue("kind"),
		ContentType:    header.Header.Get("Content-Type"),
		RegistryAnchor: r.FormValue("registry_anchor"),
	}
	resp, err := s.ipkits.Handler.AddAssetHandler(r.Context(), userID, r.PathValue("kit_id"), meta, file, header.Size)
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ipkits.Handler.ListAssetsHandler(r.Context(), r.PathValue("kit_id"))
	if err != nil {
		writeKitDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveAsset(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeKitError(w, http.StatusUnauthorized, "X-User-Id header is required")
		return
	}
	if err := s.ipkits.Handler.RemoveAssetHandler(r.Context(), userID, r.PathValue("asset_id")); err != nil {
		writeKitDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeKitDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ipkiterrors.ErrUnauthenticated):
		writeKitError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ipkiterrors.ErrNotBrandOwner):
		writeKitError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ipkiterrors.ErrIPKitNotFound),
		errors.Is(err, ipkiterrors.ErrAssetNotFound):
		writeKitError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ipkiterrors.ErrInvalidKitInput),
		errors.Is(err, ipkiterrors.ErrInvalidAssetInput),
		errors.Is(err, ipkiterrors.ErrKitPublished):
		writeKitError(w, http.StatusBadRequest, err.Error())
	default:
		writeKitError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeKitError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ipkithttp.ErrorResponse{Error: message})
}
