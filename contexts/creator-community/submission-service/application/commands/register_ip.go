package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "fanforge/contexts/creator-community/submission-service/application"
	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"
)

const reasonNoRegistrableAssets = "no underlying registrable assets"

type EligibilityResult struct {
	Eligible bool
	Reason   string
}

// EligibilityChecker answers whether a submission may be registered with the
// external IP registry. Pure read; reused by the automatic post-approval
// attempt, the retry worker and the standalone status query.
type EligibilityChecker struct {
	Repository ports.SubmissionRepository
	Anchors    ports.AssetAnchorResolver
}

func (c EligibilityChecker) Check(ctx context.Context, submissionID string) (EligibilityResult, error) {
	submission, err := c.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		return EligibilityResult{}, err
	}
	return c.checkLoaded(ctx, submission)
}

func (c EligibilityChecker) checkLoaded(ctx context.Context, submission entities.Submission) (EligibilityResult, error) {
	if submission.Status != entities.SubmissionStatusApproved {
		return EligibilityResult{Reason: "submission is not approved"}, nil
	}
	if submission.ExternalIPID != "" {
		return EligibilityResult{Reason: "submission is already registered"}, nil
	}
	anchors, err := c.Anchors.ResolveAnchors(ctx, submission.AssetIDs)
	if err != nil {
		return EligibilityResult{}, err
	}
	if len(anchors) == 0 {
		return EligibilityResult{Reason: reasonNoRegistrableAssets}, nil
	}
	return EligibilityResult{Eligible: true}, nil
}

type RegisterIPCommand struct {
	SubmissionID string
}

type RegisterIPResult struct {
	Success bool
	IPID    string
	TxHash  string
	Error   string
}

// RegisterIPUseCase registers an approved submission as a derivative work with
// the external IP registry. External failures never mutate the submission;
// the operation is retryable by invoking it again once the registry recovers.
type RegisterIPUseCase struct {
	Repository  ports.SubmissionRepository
	Anchors     ports.AssetAnchorResolver
	Registry    ports.IPRegistry
	Clock       ports.Clock
	Logger      *slog.Logger
	Eligibility EligibilityChecker
}

func (uc RegisterIPUseCase) Execute(ctx context.Context, cmd RegisterIPCommand) (RegisterIPResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return RegisterIPResult{}, err
	}

	eligibility, err := uc.Eligibility.checkLoaded(ctx, submission)
	if err != nil {
		return RegisterIPResult{}, err
	}
	if !eligibility.Eligible {
		return RegisterIPResult{Success: false, Error: eligibility.Reason}, nil
	}

	anchors, err := uc.Anchors.ResolveAnchors(ctx, submission.AssetIDs)
	if err != nil {
		return RegisterIPResult{}, err
	}

	receipt, err := uc.Registry.RegisterDerivative(ctx, ports.DerivativeRegistration{
		SubmissionID:  submission.SubmissionID,
		Title:         submission.Title,
		CreatorID:     submission.CreatorID,
		ArtworkURL:    submission.ArtworkURL,
		ParentAnchors: anchors,
	})
	if err != nil {
		logger.Warn("ip registry call failed",
			"event", "submission_ip_registry_call_failed",
			"module", "creator-community/submission-service",
			"layer", "application",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
		return RegisterIPResult{Success: false, Error: err.Error()}, nil
	}

	now := uc.Clock.Now().UTC()
	if err := uc.Repository.SetExternalIP(ctx, submission.SubmissionID, receipt.IPID, receipt.TxHash, now); err != nil {
		// A concurrent registration already claimed the row; report its
		// outcome as non-success rather than surfacing a conflict.
		if errors.Is(err, domainerrors.ErrAlreadyRegistered) {
			return RegisterIPResult{Success: false, Error: err.Error()}, nil
		}
		return RegisterIPResult{}, err
	}

	logger.Info("submission registered with ip registry",
		"event", "submission_ip_registered",
		"module", "creator-community/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"ip_id", receipt.IPID,
		"tx_hash", receipt.TxHash,
	)
	return RegisterIPResult{Success: true, IPID: receipt.IPID, TxHash: receipt.TxHash}, nil
}
