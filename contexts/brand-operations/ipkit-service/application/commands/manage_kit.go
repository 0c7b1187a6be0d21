package commands

import (
	"context"
	"log/slog"
	"strings"

	application "fanforge/contexts/brand-operations/ipkit-service/application"
	"fanforge/contexts/brand-operations/ipkit-service/domain/entities"
	domainerrors "fanforge/contexts/brand-operations/ipkit-service/domain/errors"
	"fanforge/contexts/brand-operations/ipkit-service/ports"
)

type CreateKitCommand struct {
	ActorID     string
	BrandID     string
	Name        string
	Description string
	CoverURL    string
	UsageTerms  string
}

type UpdateKitCommand struct {
	ActorID     string
	IPKitID     string
	Name        *string
	Description *string
	CoverURL    *string
	UsageTerms  *string
}

type PublishKitCommand struct {
	ActorID string
	IPKitID string
}

// ManageKitUseCase covers the brand-side kit lifecycle: create, edit and
// publish. Published kits are frozen except for unpublish-free metadata.
type ManageKitUseCase struct {
	Kits      ports.KitRepository
	Authority ports.BrandAuthority
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ManageKitUseCase) Create(ctx context.Context, cmd CreateKitCommand) (entities.IPKit, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.IPKit{}, domainerrors.ErrUnauthenticated
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.BrandID))
	if err != nil {
		return entities.IPKit{}, err
	}
	if !allowed {
		return entities.IPKit{}, domainerrors.ErrNotBrandOwner
	}

	kitID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.IPKit{}, err
	}
	now := uc.Clock.Now().UTC()
	kit := entities.IPKit{
		IPKitID:     kitID,
		BrandID:     strings.TrimSpace(cmd.BrandID),
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		CoverURL:    strings.TrimSpace(cmd.CoverURL),
		UsageTerms:  strings.TrimSpace(cmd.UsageTerms),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !kit.ValidateBasics() {
		return entities.IPKit{}, domainerrors.ErrInvalidKitInput
	}
	if err := uc.Kits.CreateKit(ctx, kit); err != nil {
		return entities.IPKit{}, err
	}

	logger.Info("ip kit created",
		"event", "ip_kit_created",
		"module", "brand-operations/ipkit-service",
		"layer", "application",
		"ip_kit_id", kit.IPKitID,
		"brand_id", kit.BrandID,
	)
	return kit, nil
}

func (uc ManageKitUseCase) Update(ctx context.Context, cmd UpdateKitCommand) (entities.IPKit, error) {
	logger := application.ResolveLogger(uc.Logger)
	kit, err := uc.authorizeKit(ctx, cmd.ActorID, cmd.IPKitID)
	if err != nil {
		return entities.IPKit{}, err
	}
	if kit.IsPublished {
		return entities.IPKit{}, domainerrors.ErrKitPublished
	}

	if cmd.Name != nil {
		kit.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		kit.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.CoverURL != nil {
		kit.CoverURL = strings.TrimSpace(*cmd.CoverURL)
	}
	if cmd.UsageTerms != nil {
		kit.UsageTerms = strings.TrimSpace(*cmd.UsageTerms)
	}
	if !kit.ValidateBasics() {
		return entities.IPKit{}, domainerrors.ErrInvalidKitInput
	}
	kit.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Kits.UpdateKit(ctx, kit); err != nil {
		return entities.IPKit{}, err
	}

	logger.Info("ip kit updated",
		"event", "ip_kit_updated",
		"module", "brand-operations/ipkit-service",
		"layer", "application",
		"ip_kit_id", kit.IPKitID,
	)
	return kit, nil
}

func (uc ManageKitUseCase) Publish(ctx context.Context, cmd PublishKitCommand) (entities.IPKit, error) {
	logger := application.ResolveLogger(uc.Logger)
	kit, err := uc.authorizeKit(ctx, cmd.ActorID, cmd.IPKitID)
	if err != nil {
		return entities.IPKit{}, err
	}
	if kit.IsPublished {
		return kit, nil
	}
	kit.IsPublished = true
	kit.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Kits.UpdateKit(ctx, kit); err != nil {
		return entities.IPKit{}, err
	}

	logger.Info("ip kit published",
		"event", "ip_kit_published",
		"module", "brand-operations/ipkit-service",
		"layer", "application",
		"ip_kit_id", kit.IPKitID,
	)
	return kit, nil
}

func (uc ManageKitUseCase) authorizeKit(ctx context.Context, actorID string, kitID string) (entities.IPKit, error) {
	if strings.TrimSpace(actorID) == "" {
		return entities.IPKit{}, domainerrors.ErrUnauthenticated
	}
	kit, err := uc.Kits.GetKit(ctx, strings.TrimSpace(kitID))
	if err != nil {
		return entities.IPKit{}, err
	}
	allowed, err := uc.Authority.CanManageBrand(ctx, strings.TrimSpace(actorID), kit.BrandID)
	if err != nil {
		return entities.IPKit{}, err
	}
	if !allowed {
		return entities.IPKit{}, domainerrors.ErrNotBrandOwner
	}
	return kit, nil
}
