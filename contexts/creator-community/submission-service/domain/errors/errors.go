package errors

import "errors"

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrCampaignNotActive       = errors.New("campaign is not active")
	ErrInvalidSubmissionInput  = errors.New("invalid submission input")
	ErrFeedbackRequired        = errors.New("rejection feedback is required")
	ErrInvalidStatusTransition = errors.New("invalid submission status transition")
	ErrUnauthenticated         = errors.New("caller identity is missing")
	ErrForbidden               = errors.New("caller lacks reviewer authority")
	ErrNotOwner                = errors.New("caller does not own this submission")
	ErrNotRegistrable          = errors.New("submission is not eligible for ip registration")
	ErrAlreadyRegistered       = errors.New("submission already has an external ip id")
	ErrRegistryUnavailable     = errors.New("ip registry call failed")
)
