package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"fanforge/contexts/creator-community/submission-service/domain/entities"
	domainerrors "fanforge/contexts/creator-community/submission-service/domain/errors"
	"fanforge/contexts/creator-community/submission-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidSubmissionInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateContent(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", row.SubmissionID).
		Where("status = ?", string(entities.SubmissionStatusPending)).
		Updates(map[string]any{
			"title":         row.Title,
			"description":   row.Description,
			"artwork_url":   row.ArtworkURL,
			"thumbnail_url": row.ThumbnailURL,
			"tags":          row.Tags,
			"canvas":        row.Canvas,
			"asset_ids":     row.AssetIDs,
			"updated_at":    row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetSubmission(ctx, submission.SubmissionID); err != nil {
			return err
		}
		return domainerrors.ErrInvalidStatusTransition
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetSubmissionView(ctx context.Context, submissionID string) (ports.SubmissionView, error) {
	submission, err := r.GetSubmission(ctx, submissionID)
	if err != nil {
		return ports.SubmissionView{}, err
	}

	var campaign campaignProjectionModel
	err = r.db.WithContext(ctx).
		Where("campaign_id = ?", submission.CampaignID).
		First(&campaign).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SubmissionView{}, domainerrors.ErrCampaignNotFound
		}
		return ports.SubmissionView{}, err
	}

	view := ports.SubmissionView{
		Submission:    submission,
		CampaignTitle: campaign.Title,
		BrandID:       campaign.BrandID,
	}

	var creator userProjectionModel
	err = r.db.WithContext(ctx).
		Where("user_id = ?", submission.CreatorID).
		First(&creator).
		Error
	if err == nil {
		view.CreatorName = creator.DisplayName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.SubmissionView{}, err
	}
	return view, nil
}

func (r *Repository) ListSubmissions(ctx context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	tx := r.db.WithContext(ctx).Model(&submissionModel{})
	if strings.TrimSpace(filter.CreatorID) != "" {
		tx = tx.Where("creator_id = ?", strings.TrimSpace(filter.CreatorID))
	}
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.PublicOnly {
		tx = tx.Where("is_public = TRUE")
	}

	var rows []submissionModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteSubmission(ctx context.Context, submissionID string) error {
	result := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("status IN ?", []string{
			string(entities.SubmissionStatusPending),
			string(entities.SubmissionStatusRejected),
		}).
		Delete(&submissionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetSubmission(ctx, submissionID); err != nil {
			return err
		}
		return domainerrors.ErrInvalidStatusTransition
	}
	return nil
}

// TransitionStatus is the optimistic review update: the write is conditioned
// on the previously observed status so concurrent reviews of the same row
// resolve to exactly one winner.
func (r *Repository) TransitionStatus(
	ctx context.Context,
	submissionID string,
	transition ports.StatusTransition,
) (entities.Submission, error) {
	updates := map[string]any{
		"status":              string(transition.ToStatus),
		"is_public":           transition.IsPublic,
		"reviewed_by_user_id": strings.TrimSpace(transition.ReviewedBy),
		"feedback":            strings.TrimSpace(transition.Feedback),
		"rating":              transition.Rating,
		"updated_at":          transition.UpdatedAt.UTC(),
	}
	if !transition.ReviewedAt.IsZero() {
		reviewedAt := transition.ReviewedAt.UTC()
		updates["reviewed_at"] = &reviewedAt
	}

	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("status = ?", string(transition.FromStatus)).
		Updates(updates)
	if result.Error != nil {
		return entities.Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetSubmission(ctx, submissionID); err != nil {
			return entities.Submission{}, err
		}
		return entities.Submission{}, domainerrors.ErrInvalidStatusTransition
	}
	return r.GetSubmission(ctx, submissionID)
}

// SetExternalIP persists the registry identifier only while the row is still
// approved and unregistered. A raced registration surfaces as
// ErrAlreadyRegistered rather than overwriting the first writer.
func (r *Repository) SetExternalIP(
	ctx context.Context,
	submissionID string,
	ipID string,
	txHash string,
	registeredAt time.Time,
) error {
	at := registeredAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("status = ?", string(entities.SubmissionStatusApproved)).
		Where("(external_ip_id IS NULL OR external_ip_id = '')").
		Updates(map[string]any{
			"external_ip_id":       strings.TrimSpace(ipID),
			"registration_tx_hash": strings.TrimSpace(txHash),
			"ip_registered_at":     &at,
			"updated_at":           at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.GetSubmission(ctx, submissionID)
		if err != nil {
			return err
		}
		if existing.ExternalIPID != "" {
			return domainerrors.ErrAlreadyRegistered
		}
		return domainerrors.ErrNotRegistrable
	}
	return nil
}

func (r *Repository) ListUnregisteredApproved(ctx context.Context, limit int) ([]entities.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.SubmissionStatusApproved)).
		Where("(external_ip_id IS NULL OR external_ip_id = '')").
		Order("reviewed_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AddAudit(ctx context.Context, audit entities.ReviewAudit) error {
	row := reviewAuditModel{
		AuditID:      strings.TrimSpace(audit.AuditID),
		SubmissionID: strings.TrimSpace(audit.SubmissionID),
		Action:       strings.TrimSpace(audit.Action),
		OldStatus:    string(audit.OldStatus),
		NewStatus:    string(audit.NewStatus),
		ActorID:      strings.TrimSpace(audit.ActorID),
		Notes:        strings.TrimSpace(audit.Notes),
		CreatedAt:    audit.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetCampaignForSubmission(ctx context.Context, campaignID string) (ports.CampaignRef, error) {
	var row campaignProjectionModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CampaignRef{}, domainerrors.ErrCampaignNotFound
		}
		return ports.CampaignRef{}, err
	}
	return ports.CampaignRef{
		CampaignID: row.CampaignID,
		BrandID:    row.BrandID,
		Title:      row.Title,
		Status:     row.Status,
	}, nil
}

// ResolveAnchors reads the brand_assets projection and returns the distinct
// set of on-chain anchors for the given asset ids. Assets without an anchor
// contribute nothing.
func (r *Repository) ResolveAnchors(ctx context.Context, assetIDs []string) ([]string, error) {
	ids := make([]string, 0, len(assetIDs))
	for _, id := range assetIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []brandAssetProjectionModel
	if err := r.db.WithContext(ctx).
		Where("asset_id IN ?", ids).
		Where("registry_anchor <> ''").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	anchors := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.RegistryAnchor]; ok {
			continue
		}
		seen[row.RegistryAnchor] = struct{}{}
		anchors = append(anchors, row.RegistryAnchor)
	}
	return anchors, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  strings.TrimSpace(envelope.EventID),
		EventType: strings.TrimSpace(envelope.EventType),
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidSubmissionInput
	}
	return nil
}

type submissionModel struct {
	SubmissionID       string     `gorm:"column:submission_id;primaryKey"`
	CampaignID         string     `gorm:"column:campaign_id"`
	IPKitID            string     `gorm:"column:ipkit_id"`
	CreatorID          string     `gorm:"column:creator_id"`
	Title              string     `gorm:"column:title"`
	Description        string     `gorm:"column:description"`
	ArtworkURL         string     `gorm:"column:artwork_url"`
	ThumbnailURL       string     `gorm:"column:thumbnail_url"`
	Tags               []string   `gorm:"column:tags;type:text[]"`
	Canvas             []byte     `gorm:"column:canvas"`
	AssetIDs           []string   `gorm:"column:asset_ids;type:text[]"`
	Status             string     `gorm:"column:status"`
	IsPublic           bool       `gorm:"column:is_public"`
	ReviewedByUserID   string     `gorm:"column:reviewed_by_user_id"`
	ReviewedAt         *time.Time `gorm:"column:reviewed_at"`
	Feedback           string     `gorm:"column:feedback"`
	Rating             *int       `gorm:"column:rating"`
	ExternalIPID       string     `gorm:"column:external_ip_id"`
	RegistrationTxHash string     `gorm:"column:registration_tx_hash"`
	IPRegisteredAt     *time.Time `gorm:"column:ip_registered_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(item entities.Submission) submissionModel {
	canvas := map[string]any{}
	if item.Canvas != nil {
		canvas = item.Canvas
	}
	canvasRaw, _ := json.Marshal(canvas)
	return submissionModel{
		SubmissionID:       strings.TrimSpace(item.SubmissionID),
		CampaignID:         strings.TrimSpace(item.CampaignID),
		IPKitID:            strings.TrimSpace(item.IPKitID),
		CreatorID:          strings.TrimSpace(item.CreatorID),
		Title:              strings.TrimSpace(item.Title),
		Description:        strings.TrimSpace(item.Description),
		ArtworkURL:         strings.TrimSpace(item.ArtworkURL),
		ThumbnailURL:       strings.TrimSpace(item.ThumbnailURL),
		Tags:               append([]string(nil), item.Tags...),
		Canvas:             canvasRaw,
		AssetIDs:           append([]string(nil), item.AssetIDs...),
		Status:             string(item.Status),
		IsPublic:           item.IsPublic,
		ReviewedByUserID:   strings.TrimSpace(item.ReviewedByUserID),
		ReviewedAt:         normalizeOptionalTime(item.ReviewedAt),
		Feedback:           strings.TrimSpace(item.Feedback),
		Rating:             item.Rating,
		ExternalIPID:       strings.TrimSpace(item.ExternalIPID),
		RegistrationTxHash: strings.TrimSpace(item.RegistrationTxHash),
		IPRegisteredAt:     normalizeOptionalTime(item.IPRegisteredAt),
		CreatedAt:          item.CreatedAt.UTC(),
		UpdatedAt:          item.UpdatedAt.UTC(),
	}
}

func (m submissionModel) toEntity() entities.Submission {
	canvas := map[string]any{}
	if len(m.Canvas) > 0 {
		_ = json.Unmarshal(m.Canvas, &canvas)
	}
	return entities.Submission{
		SubmissionID:       m.SubmissionID,
		CampaignID:         m.CampaignID,
		IPKitID:            m.IPKitID,
		CreatorID:          m.CreatorID,
		Title:              m.Title,
		Description:        m.Description,
		ArtworkURL:         m.ArtworkURL,
		ThumbnailURL:       m.ThumbnailURL,
		Tags:               append([]string(nil), m.Tags...),
		Canvas:             canvas,
		AssetIDs:           append([]string(nil), m.AssetIDs...),
		Status:             entities.SubmissionStatus(m.Status),
		IsPublic:           m.IsPublic,
		ReviewedByUserID:   m.ReviewedByUserID,
		ReviewedAt:         normalizeOptionalTime(m.ReviewedAt),
		Feedback:           m.Feedback,
		Rating:             m.Rating,
		ExternalIPID:       m.ExternalIPID,
		RegistrationTxHash: m.RegistrationTxHash,
		IPRegisteredAt:     normalizeOptionalTime(m.IPRegisteredAt),
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

type reviewAuditModel struct {
	AuditID      string    `gorm:"column:audit_id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id"`
	Action       string    `gorm:"column:action"`
	OldStatus    string    `gorm:"column:old_status"`
	NewStatus    string    `gorm:"column:new_status"`
	ActorID      string    `gorm:"column:actor_id"`
	Notes        string    `gorm:"column:notes"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (reviewAuditModel) TableName() string {
	return "submission_review_audit"
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "submission_outbox"
}

type campaignProjectionModel struct {
	CampaignID string `gorm:"column:campaign_id;primaryKey"`
	BrandID    string `gorm:"column:brand_id"`
	Title      string `gorm:"column:title"`
	Status     string `gorm:"column:status"`
}

func (campaignProjectionModel) TableName() string {
	return "campaigns"
}

type brandAssetProjectionModel struct {
	AssetID        string `gorm:"column:asset_id;primaryKey"`
	RegistryAnchor string `gorm:"column:registry_anchor"`
}

func (brandAssetProjectionModel) TableName() string {
	return "brand_assets"
}

type userProjectionModel struct {
	UserID      string `gorm:"column:user_id;primaryKey"`
	DisplayName string `gorm:"column:display_name"`
}

func (userProjectionModel) TableName() string {
	return "users"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
