package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	campaignservice "fanforge/contexts/brand-operations/campaign-service"
	ipkitservice "fanforge/contexts/brand-operations/ipkit-service"
	notificationservice "fanforge/contexts/creator-community/notification-service"
	submissionservice "fanforge/contexts/creator-community/submission-service"
	authorizationservice "fanforge/contexts/identity-access/authorization-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	submissions   submissionservice.Module
	campaigns     campaignservice.Module
	ipkits        ipkitservice.Module
	notifications notificationservice.Module
	authorization authorizationservice.Module
}

type Modules struct {
	Submissions   submissionservice.Module
	Campaigns     campaignservice.Module
	IPKits        ipkitservice.Module
	Notifications notificationservice.Module
	Authorization authorizationservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		submissions:   modules.Submissions,
		campaigns:     modules.Campaigns,
		ipkits:        modules.IPKits,
		notifications: modules.Notifications,
		authorization: modules.Authorization,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the router for in-process tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /api/v1/submissions", s.handleListSubmissions)
	s.mux.HandleFunc("GET /api/v1/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("PATCH /api/v1/submissions/{submission_id}", s.handleUpdateSubmission)
	s.mux.HandleFunc("DELETE /api/v1/submissions/{submission_id}", s.handleDeleteSubmission)
	s.mux.HandleFunc("POST /api/v1/submissions/{submission_id}/withdraw", s.handleWithdrawSubmission)
	s.mux.HandleFunc("POST /api/v1/submissions/{submission_id}/approve", s.handleApproveSubmission)
	s.mux.HandleFunc("POST /api/v1/submissions/{submission_id}/reject", s.handleRejectSubmission)
	s.mux.HandleFunc("POST /api/v1/submissions/{submission_id}/register-ip", s.handleRegisterIP)
	s.mux.HandleFunc("GET /api/v1/submissions/{submission_id}/register-ip", s.handleRegisterEligibility)

	s.mux.HandleFunc("POST /api/v1/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/v1/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/v1/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /api/v1/campaigns/{campaign_id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/activate", s.handleActivateCampaign)
	s.mux.HandleFunc("POST /api/v1/campaigns/{campaign_id}/close", s.handleCloseCampaign)

	s.mux.HandleFunc("POST /api/v1/ipkits", s.handleCreateKit)
	s.mux.HandleFunc("GET /api/v1/ipkits", s.handleListKits)
	s.mux.HandleFunc("GET /api/v1/ipkits/{kit_id}", s.handleGetKit)
	s.mux.HandleFunc("PATCH /api/v1/ipkits/{kit_id}", s.handleUpdateKit)
	s.mux.HandleFunc("POST /api/v1/ipkits/{kit_id}/publish", s.handlePublishKit)
	s.mux.HandleFunc("POST /api/v1/ipkits/{kit_id}/assets", s.handleAddAsset)
	s.mux.HandleFunc("GET /api/v1/ipkits/{kit_id}/assets", s.handleListAssets)
	s.mux.HandleFunc("DELETE /api/v1/ipkits/{kit_id}/assets/{asset_id}", s.handleRemoveAsset)

	s.mux.HandleFunc("GET /api/v1/notifications", s.handleListNotifications)
	s.mux.HandleFunc("POST /api/v1/notifications/{notification_id}/read", s.handleMarkNotificationRead)

	s.mux.HandleFunc("POST /api/authz/v1/check", s.handleAuthzCheck)
	s.mux.HandleFunc("GET /api/authz/v1/users/{user_id}/roles", s.handleAuthzListRoles)
	s.mux.HandleFunc("POST /api/authz/v1/roles/grant", s.handleAuthzGrantRole)
	s.mux.HandleFunc("POST /api/authz/v1/roles/revoke", s.handleAuthzRevokeRole)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requestUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
