package http

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateKitRequest struct {
	BrandID     string `json:"brand_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	UsageTerms  string `json:"usage_terms,omitempty"`
}

type UpdateKitRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"cover_url,omitempty"`
	UsageTerms  *string `json:"usage_terms,omitempty"`
}

type IPKitDTO struct {
	IPKitID     string `json:"ip_kit_id"`
	BrandID     string `json:"brand_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	UsageTerms  string `json:"usage_terms,omitempty"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type KitResponse struct {
	Kit IPKitDTO `json:"kit"`
}

type ListKitsResponse struct {
	Items []IPKitDTO `json:"items"`
}

// AddAssetMeta carries the form fields of a multipart asset upload; the file
// part is streamed separately.
type AddAssetMeta struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	ContentType    string `json:"content_type"`
	RegistryAnchor string `json:"registry_anchor,omitempty"`
}

type BrandAssetDTO struct {
	AssetID        string `json:"asset_id"`
	IPKitID        string `json:"ip_kit_id"`
	BrandID        string `json:"brand_id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	ContentType    string `json:"content_type,omitempty"`
	SizeBytes      int64  `json:"size_bytes"`
	RegistryAnchor string `json:"registry_anchor,omitempty"`
	DownloadURL    string `json:"download_url,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type AssetResponse struct {
	Asset BrandAssetDTO `json:"asset"`
}

type ListAssetsResponse struct {
	Items []BrandAssetDTO `json:"items"`
}
