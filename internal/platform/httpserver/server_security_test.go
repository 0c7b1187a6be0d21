package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	campaignservice "fanforge/contexts/brand-operations/campaign-service"
	campaignmemory "fanforge/contexts/brand-operations/campaign-service/adapters/memory"
	ipkitservice "fanforge/contexts/brand-operations/ipkit-service"
	ipkitmemory "fanforge/contexts/brand-operations/ipkit-service/adapters/memory"
	notificationservice "fanforge/contexts/creator-community/notification-service"
	notificationmemory "fanforge/contexts/creator-community/notification-service/adapters/memory"
	submissionservice "fanforge/contexts/creator-community/submission-service"
	submissionmemory "fanforge/contexts/creator-community/submission-service/adapters/memory"
	authorizationservice "fanforge/contexts/identity-access/authorization-service"
	authzmemory "fanforge/contexts/identity-access/authorization-service/adapters/memory"
)

func newTestServer(submissionSeed submissionmemory.Seed, kitSeed ipkitmemory.Seed) *Server {
	return New(Modules{
		Submissions:   submissionservice.NewInMemoryModule(submissionSeed, nil, nil),
		Campaigns:     campaignservice.NewInMemoryModule(campaignmemory.Seed{}, nil, nil),
		IPKits:        ipkitservice.NewInMemoryModule(kitSeed, nil, nil),
		Notifications: notificationservice.NewInMemoryModule(notificationmemory.Seed{}, nil),
		Authorization: authorizationservice.NewInMemoryModule(authzmemory.Seed{}, nil),
	}, nil, ":0")
}

func TestWriteEndpointsRequireUserHeader(t *testing.T) {
	server := newTestServer(submissionmemory.Seed{}, ipkitmemory.Seed{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create submission", http.MethodPost, "/api/v1/submissions", `{"campaign_id":"c","title":"t","artwork_url":"u"}`},
		{"update submission", http.MethodPatch, "/api/v1/submissions/sub-1", `{}`},
		{"delete submission", http.MethodDelete, "/api/v1/submissions/sub-1", ""},
		{"withdraw submission", http.MethodPost, "/api/v1/submissions/sub-1/withdraw", ""},
		{"approve submission", http.MethodPost, "/api/v1/submissions/sub-1/approve", ""},
		{"reject submission", http.MethodPost, "/api/v1/submissions/sub-1/reject", `{"feedback":"no"}`},
		{"register ip", http.MethodPost, "/api/v1/submissions/sub-1/register-ip", ""},
		{"create campaign", http.MethodPost, "/api/v1/campaigns", `{"brand_id":"b","title":"ttt","description":"d"}`},
		{"activate campaign", http.MethodPost, "/api/v1/campaigns/c-1/activate", ""},
		{"create kit", http.MethodPost, "/api/v1/ipkits", `{"brand_id":"b","name":"kit"}`},
		{"publish kit", http.MethodPost, "/api/v1/ipkits/k-1/publish", ""},
		{"list notifications", http.MethodGet, "/api/v1/notifications", ""},
		{"mark notification read", http.MethodPost, "/api/v1/notifications/n-1/read", ""},
		{"grant role", http.MethodPost, "/api/authz/v1/roles/grant", `{"user_id":"u","role":"creator"}`},
		{"revoke role", http.MethodPost, "/api/authz/v1/roles/revoke", `{"user_id":"u","role":"creator"}`},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte(tc.body)))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rr := httptest.NewRecorder()
		server.Mux().ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without X-User-Id, got %d body=%s", tc.name, rr.Code, rr.Body.String())
		}
	}
}

func TestReadEndpointsAreOpen(t *testing.T) {
	server := newTestServer(submissionmemory.Seed{}, ipkitmemory.Seed{})

	paths := []string{
		"/api/v1/submissions",
		"/api/v1/campaigns",
		"/api/v1/ipkits",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.Mux().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 without identity, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestMalformedJSONRejected(t *testing.T) {
	server := newTestServer(submissionmemory.Seed{}, ipkitmemory.Seed{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader([]byte(`{"campaign_id":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "creator-1")
	rr := httptest.NewRecorder()
	server.Mux().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d body=%s", rr.Code, rr.Body.String())
	}
}
