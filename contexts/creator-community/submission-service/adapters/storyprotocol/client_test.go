package storyprotocol

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

func sampleRegistration() ports.DerivativeRegistration {
	return ports.DerivativeRegistration{
		SubmissionID:  "sub-1",
		Title:         "Neon Mascot Remix",
		CreatorID:     "creator-1",
		ArtworkURL:    "https://cdn.fanforge.dev/art/sub-1.png",
		ParentAnchors: []string{"0xanchor-1", "0xanchor-2"},
	}
}

func TestRegisterDerivativeSendsRequestAndReturnsReceipt(t *testing.T) {
	var captured registerRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/derivatives" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeRegistryJSON(w, http.StatusCreated, registerResponse{IPID: "0xip-77", TxHash: "0xtx-77"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", time.Second, nil)
	receipt, err := client.RegisterDerivative(context.Background(), sampleRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if receipt.IPID != "0xip-77" || receipt.TxHash != "0xtx-77" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	if gotAuth != "Bearer secret-key" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if captured.SubmissionID != "sub-1" {
		t.Fatalf("submission id not carried: %+v", captured)
	}
	if len(captured.ParentIPIDs) != 2 || captured.ParentIPIDs[0] != "0xanchor-1" {
		t.Fatalf("parent anchors not carried: %+v", captured.ParentIPIDs)
	}
	if captured.DerivativeRef != "fanforge:submission:sub-1" {
		t.Fatalf("unexpected derivative ref: %q", captured.DerivativeRef)
	}
}

func TestRegisterDerivativeRejectionIsRegistryUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRegistryJSON(w, http.StatusUnprocessableEntity, registerResponse{Error: "parent ip not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, nil)
	_, err := client.RegisterDerivative(context.Background(), sampleRegistration())
	if !errors.Is(err, domainerrors.ErrRegistryUnavailable) {
		t.Fatalf("expected registry unavailable, got %v", err)
	}
}

func TestRegisterDerivativeRequiresReceiptIPID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRegistryJSON(w, http.StatusOK, registerResponse{TxHash: "0xtx-only"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, nil)
	_, err := client.RegisterDerivative(context.Background(), sampleRegistration())
	if !errors.Is(err, domainerrors.ErrRegistryUnavailable) {
		t.Fatalf("expected registry unavailable for empty ip id, got %v", err)
	}
}

func TestRegisterDerivativeRequiresBaseURL(t *testing.T) {
	client := NewClient("", "", time.Second, nil)
	_, err := client.RegisterDerivative(context.Background(), sampleRegistration())
	if !errors.Is(err, domainerrors.ErrRegistryUnavailable) {
		t.Fatalf("expected registry unavailable without base url, got %v", err)
	}
}

func TestRegisterDerivativeUnreachableGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", time.Second, nil)
	_, err := client.RegisterDerivative(context.Background(), sampleRegistration())
	if !errors.Is(err, domainerrors.ErrRegistryUnavailable) {
		t.Fatalf("expected registry unavailable for refused connection, got %v", err)
	}
}

func writeRegistryJSON(w http.ResponseWriter, status int, payload registerResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
