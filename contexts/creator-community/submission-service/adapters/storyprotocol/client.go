package storyprotocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

const defaultTimeout = 15 * time.Second

// Client calls the Story Protocol gateway to register a derivative work. The
// gateway is a black box: one POST, one receipt. The client carries its own
// timeout and never retries; retry policy belongs to the callers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type registerRequest struct {
	SubmissionID  string   `json:"submission_id"`
	Title         string   `json:"title"`
	CreatorID     string   `json:"creator_id"`
	ArtworkURL    string   `json:"artwork_url"`
	ParentIPIDs   []string `json:"parent_ip_ids"`
	DerivativeRef string   `json:"derivative_ref"`
}

type registerResponse struct {
	IPID   string `json:"ip_id"`
	TxHash string `json:"tx_hash"`
	Error  string `json:"error"`
}

func (c *Client) RegisterDerivative(ctx context.Context, req ports.DerivativeRegistration) (ports.RegistrationReceipt, error) {
	if c.baseURL == "" {
		return ports.RegistrationReceipt{}, fmt.Errorf("%w: registry base url is not configured", domainerrors.ErrRegistryUnavailable)
	}

	body, err := json.Marshal(registerRequest{
		SubmissionID:  req.SubmissionID,
		Title:         req.Title,
		CreatorID:     req.CreatorID,
		ArtworkURL:    req.ArtworkURL,
		ParentIPIDs:   req.ParentAnchors,
		DerivativeRef: "fanforge:submission:" + req.SubmissionID,
	})
	if err != nil {
		return ports.RegistrationReceipt{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/derivatives", bytes.NewReader(body))
	if err != nil {
		return ports.RegistrationReceipt{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.RegistrationReceipt{}, fmt.Errorf("%w: %v", domainerrors.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.RegistrationReceipt{}, fmt.Errorf("%w: read response: %v", domainerrors.ErrRegistryUnavailable, err)
	}

	var decoded registerResponse
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return ports.RegistrationReceipt{}, fmt.Errorf("%w: decode response: %v", domainerrors.ErrRegistryUnavailable, err)
		}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		reason := decoded.Error
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		c.logger.Warn("story protocol registration rejected",
			"event", "story_protocol_register_rejected",
			"module", "creator-community/submission-service",
			"layer", "adapter",
			"submission_id", req.SubmissionID,
			"status_code", resp.StatusCode,
			"reason", reason,
		)
		return ports.RegistrationReceipt{}, fmt.Errorf("%w: %s", domainerrors.ErrRegistryUnavailable, reason)
	}

	if decoded.IPID == "" {
		return ports.RegistrationReceipt{}, fmt.Errorf("%w: registry returned no ip id", domainerrors.ErrRegistryUnavailable)
	}
	return ports.RegistrationReceipt{
		IPID:   decoded.IPID,
		TxHash: decoded.TxHash,
	}, nil
}
