package errors

import "errors"

var (
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrInvalidCampaignInput    = errors.New("invalid campaign input")
	ErrInvalidStatusTransition = errors.New("invalid campaign status transition")
	ErrUnauthenticated         = errors.New("caller identity is missing")
	ErrNotBrandOwner           = errors.New("caller does not manage this brand")
)
