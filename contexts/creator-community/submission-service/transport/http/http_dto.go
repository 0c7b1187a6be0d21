package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateSubmissionRequest struct {
	CampaignID   string         `json:"campaign_id"`
	IPKitID      string         `json:"ipkit_id,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	ArtworkURL   string         `json:"artwork_url"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Canvas       map[string]any `json:"canvas,omitempty"`
	AssetIDs     []string       `json:"asset_ids,omitempty"`
}

type UpdateSubmissionRequest struct {
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	ArtworkURL   string         `json:"artwork_url,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Canvas       map[string]any `json:"canvas,omitempty"`
	AssetIDs     []string       `json:"asset_ids,omitempty"`
}

type ReviewSubmissionRequest struct {
	Feedback string `json:"feedback,omitempty"`
	Rating   *int   `json:"rating,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID       string         `json:"submission_id"`
	CampaignID         string         `json:"campaign_id"`
	IPKitID            string         `json:"ipkit_id,omitempty"`
	CreatorID          string         `json:"creator_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	ArtworkURL         string         `json:"artwork_url"`
	ThumbnailURL       string         `json:"thumbnail_url,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	Canvas             map[string]any `json:"canvas,omitempty"`
	AssetIDs           []string       `json:"asset_ids,omitempty"`
	Status             string         `json:"status"`
	IsPublic           bool           `json:"is_public"`
	ReviewedByUserID   string         `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt         string         `json:"reviewed_at,omitempty"`
	Feedback           string         `json:"feedback,omitempty"`
	Rating             *int           `json:"rating,omitempty"`
	ExternalIPID       string         `json:"external_ip_id,omitempty"`
	RegistrationTxHash string         `json:"registration_tx_hash,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

type SubmissionViewDTO struct {
	Submission    SubmissionDTO `json:"submission"`
	CampaignTitle string        `json:"campaign_title"`
	BrandID       string        `json:"brand_id"`
	CreatorName   string        `json:"creator_name,omitempty"`
}

type CreateSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type GetSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type SubmissionViewResponse struct {
	View SubmissionViewDTO `json:"view"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type RegisterIPResponse struct {
	Success bool   `json:"success"`
	IPID    string `json:"ip_id,omitempty"`
	TxHash  string `json:"tx_hash,omitempty"`
	Error   string `json:"error,omitempty"`
}

type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
