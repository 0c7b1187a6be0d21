package entities

import (
	"strings"
	"time"
)

// IPKit is a brand-curated bundle of approved intellectual property assets
// that creators may remix inside campaigns.
type IPKit struct {
	IPKitID     string
	BrandID     string
	Name        string
	Description string
	CoverURL    string
	UsageTerms  string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (k IPKit) ValidateBasics() bool {
	name := strings.TrimSpace(k.Name)
	return strings.TrimSpace(k.BrandID) != "" &&
		name != "" &&
		len(name) >= 2 &&
		len(name) <= 120
}

type AssetKind string

const (
	AssetKindCharacter  AssetKind = "character"
	AssetKindBackground AssetKind = "background"
	AssetKindLogo       AssetKind = "logo"
	AssetKindAudio      AssetKind = "audio"
	AssetKindOther      AssetKind = "other"
)

// BrandAsset is one asset inside an IP kit. RegistryAnchor holds the parent
// IP identifier on the external registry; assets without an anchor cannot
// back a derivative registration.
type BrandAsset struct {
	AssetID        string
	IPKitID        string
	BrandID        string
	Name           string
	Kind           AssetKind
	StorageKey     string
	ContentType    string
	SizeBytes      int64
	RegistryAnchor string
	CreatedAt      time.Time
}

func (a BrandAsset) ValidateBasics() bool {
	return strings.TrimSpace(a.IPKitID) != "" &&
		strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.StorageKey) != "" &&
		validAssetKind(a.Kind)
}

func validAssetKind(kind AssetKind) bool {
	switch kind {
	case AssetKindCharacter, AssetKindBackground, AssetKindLogo, AssetKindAudio, AssetKindOther:
		return true
	default:
		return false
	}
}
