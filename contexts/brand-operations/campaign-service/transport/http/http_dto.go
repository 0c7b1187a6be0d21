package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateCampaignRequest struct {
	BrandID        string `json:"brand_id"`
	IPKitID        string `json:"ip_kit_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Guidelines     string `json:"guidelines,omitempty"`
	BannerImageURL string `json:"banner_image_url,omitempty"`
	StartsAt       string `json:"starts_at,omitempty"`
	EndsAt         string `json:"ends_at,omitempty"`
}

type UpdateCampaignRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Guidelines     *string `json:"guidelines,omitempty"`
	BannerImageURL *string `json:"banner_image_url,omitempty"`
	StartsAt       *string `json:"starts_at,omitempty"`
	EndsAt         *string `json:"ends_at,omitempty"`
}

type CampaignDTO struct {
	CampaignID     string `json:"campaign_id"`
	BrandID        string `json:"brand_id"`
	IPKitID        string `json:"ip_kit_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Guidelines     string `json:"guidelines,omitempty"`
	BannerImageURL string `json:"banner_image_url,omitempty"`
	Status         string `json:"status"`
	StartsAt       string `json:"starts_at,omitempty"`
	EndsAt         string `json:"ends_at,omitempty"`
	LaunchedAt     string `json:"launched_at,omitempty"`
	ClosedAt       string `json:"closed_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}
