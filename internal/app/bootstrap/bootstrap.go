package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	campaignservice "fanforge/contexts/brand-operations/campaign-service"
	campaignpostgres "fanforge/contexts/brand-operations/campaign-service/adapters/postgres"
	ipkitservice "fanforge/contexts/brand-operations/ipkit-service"
	ipkitpostgres "fanforge/contexts/brand-operations/ipkit-service/adapters/postgres"
	notificationservice "fanforge/contexts/creator-community/notification-service"
	notificationcommands "fanforge/contexts/creator-community/notification-service/application/commands"
	notificationentities "fanforge/contexts/creator-community/notification-service/domain/entities"
	notificationpostgres "fanforge/contexts/creator-community/notification-service/adapters/postgres"
	submissionservice "fanforge/contexts/creator-community/submission-service"
	submissionasync "fanforge/contexts/creator-community/submission-service/adapters/async"
	submissionpostgres "fanforge/contexts/creator-community/submission-service/adapters/postgres"
	"fanforge/contexts/creator-community/submission-service/adapters/storyprotocol"
	submissionports "fanforge/contexts/creator-community/submission-service/ports"
	authorizationservice "fanforge/contexts/identity-access/authorization-service"
	authzmemory "fanforge/contexts/identity-access/authorization-service/adapters/memory"
	authzpostgres "fanforge/contexts/identity-access/authorization-service/adapters/postgres"
	"fanforge/contexts/identity-access/authorization-service/application/queries"
	"fanforge/contexts/identity-access/authorization-service/domain/services"
	"fanforge/internal/platform/config"
	"fanforge/internal/platform/db"
	"fanforge/internal/platform/httpserver"
	"fanforge/internal/platform/messaging"
	"fanforge/internal/platform/storage"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server     *httpserver.Server
	postgres   *db.Postgres
	dispatcher *submissionasync.Dispatcher
	logger     *slog.Logger
}

type WorkerApp struct {
	postgres        *db.Postgres
	registrationJob func(context.Context) error
	outboxRelay     func(context.Context) error
	pollInterval    time.Duration
	logger          *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	authzModule := buildAuthorization(pg, cfg.PermissionCacheTTL, logger)
	notificationModule := buildNotifications(pg, logger)

	bucket, err := storage.NewS3Bucket(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint)
	if err != nil {
		return nil, err
	}

	brandAuthority := brandAuthorityAdapter{check: authzModule.CheckUseCase}
	ipkitModule := ipkitservice.NewModule(ipkitservice.Dependencies{
		Kits:      ipkitpostgres.NewRepository(pg.DB),
		Assets:    ipkitpostgres.NewRepository(pg.DB),
		Blobs:     bucket,
		Authority: brandAuthority,
		Clock:     ipkitpostgres.SystemClock{},
		IDGen:     ipkitpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	campaignRepo := campaignpostgres.NewRepository(pg.DB)
	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Repository: campaignRepo,
		History:    campaignRepo,
		Authority:  brandAuthority,
		Clock:      campaignpostgres.SystemClock{},
		IDGen:      campaignpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	dispatcher := submissionasync.NewDispatcher(30*time.Second, logger)
	registry := storyprotocol.NewClient(cfg.StoryAPIBaseURL, cfg.StoryAPIKey, cfg.StoryTimeout, logger)
	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: submissionRepo,
		Audits:     submissionRepo,
		Notifier:   notifierAdapter{record: notificationModule.Record},
		Campaigns:  submissionRepo,
		Anchors:    submissionRepo,
		Authority:  reviewerAuthorityAdapter{check: authzModule.CheckUseCase},
		Registry:   registry,
		Dispatcher: dispatcher,
		Outbox:     submissionRepo,
		Publisher:  kafka,
		Clock:      submissionpostgres.SystemClock{},
		IDGen:      submissionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(httpserver.Modules{
		Submissions:   submissionModule,
		Campaigns:     campaignModule,
		IPKits:        ipkitModule,
		Notifications: notificationModule,
		Authorization: authzModule,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:     server,
		postgres:   pg,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	authzModule := buildAuthorization(pg, cfg.PermissionCacheTTL, logger)
	notificationModule := buildNotifications(pg, logger)

	registry := storyprotocol.NewClient(cfg.StoryAPIBaseURL, cfg.StoryAPIKey, cfg.StoryTimeout, logger)
	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: submissionRepo,
		Audits:     submissionRepo,
		Notifier:   notifierAdapter{record: notificationModule.Record},
		Campaigns:  submissionRepo,
		Anchors:    submissionRepo,
		Authority:  reviewerAuthorityAdapter{check: authzModule.CheckUseCase},
		Registry:   registry,
		Dispatcher: submissionasync.SyncDispatcher{},
		Outbox:     submissionRepo,
		Publisher:  kafka,
		Clock:      submissionpostgres.SystemClock{},
		IDGen:      submissionpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	registrationJob := submissionModule.RegistrationJob
	registrationJob.BatchSize = cfg.RetryBatchSize
	registrationJob.Disabled = !cfg.RegistrationRetries
	outboxRelay := submissionModule.OutboxRelay

	return &WorkerApp{
		postgres:        pg,
		registrationJob: registrationJob.RunOnce,
		outboxRelay:     outboxRelay.RunOnce,
		pollInterval:    2 * time.Second,
		logger:          logger,
	}, nil
}

func buildAuthorization(pg *db.Postgres, cacheTTL time.Duration, logger *slog.Logger) authorizationservice.Module {
	return authorizationservice.NewModule(authorizationservice.Dependencies{
		Repository:         authzpostgres.NewRepository(pg.DB),
		PermissionCache:    authzmemory.NewPermissionCache(),
		Clock:              authzpostgres.SystemClock{},
		IDGen:              authzpostgres.UUIDGenerator{},
		PermissionCacheTTL: cacheTTL,
		Logger:             logger,
	})
}

func buildNotifications(pg *db.Postgres, logger *slog.Logger) notificationservice.Module {
	return notificationservice.NewModule(notificationservice.Dependencies{
		Repository: notificationpostgres.NewRepository(pg.DB),
		Clock:      notificationpostgres.SystemClock{},
		IDGen:      notificationpostgres.UUIDGenerator{},
		Logger:     logger,
	})
}

// reviewerAuthorityAdapter lets the submission module ask the authorization
// module whether a user may review for a brand.
type reviewerAuthorityAdapter struct {
	check queries.CheckPermissionUseCase
}

func (a reviewerAuthorityAdapter) CanReview(ctx context.Context, reviewerID string, brandID string) (bool, error) {
	decision, err := a.check.Execute(ctx, queries.CheckPermissionQuery{
		UserID:     reviewerID,
		Permission: services.PermissionSubmissionReview,
		BrandID:    brandID,
	})
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

type brandAuthorityAdapter struct {
	check queries.CheckPermissionUseCase
}

func (a brandAuthorityAdapter) CanManageBrand(ctx context.Context, userID string, brandID string) (bool, error) {
	decision, err := a.check.Execute(ctx, queries.CheckPermissionQuery{
		UserID:     userID,
		Permission: services.PermissionBrandManage,
		BrandID:    brandID,
	})
	if err != nil {
		return false, err
	}
	return decision.Allowed, nil
}

// notifierAdapter bridges review notifications into the notification module.
type notifierAdapter struct {
	record notificationcommands.RecordNotificationUseCase
}

func (a notifierAdapter) Notify(ctx context.Context, notification submissionports.ReviewNotification) error {
	data := map[string]any{
		"submission_id": notification.SubmissionID,
		"campaign_id":   notification.CampaignID,
	}
	for key, value := range notification.Data {
		data[key] = value
	}
	_, err := a.record.Execute(ctx, notificationcommands.RecordNotificationCommand{
		RecipientID: notification.RecipientID,
		Type:        notificationentities.NotificationType(notification.Type),
		Title:       notification.Title,
		Body:        notification.Body,
		Data:        data,
	})
	return err
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	// Job errors are logged and the loop keeps polling; a transient store or
	// bus outage must not take the worker down.
	for {
		if err := w.registrationJob(ctx); err != nil {
			w.logger.Error("registration job cycle failed",
				"event", "bootstrap_registration_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		if err := w.outboxRelay(ctx); err != nil {
			w.logger.Error("outbox relay cycle failed",
				"event", "bootstrap_outbox_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
