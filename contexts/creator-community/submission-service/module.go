package submissionservice

import (
	"context"
	"log/slog"

	"fanforge/contexts/creator-community/submission-service/adapters/async"
	httpadapter "fanforge/contexts/creator-community/submission-service/adapters/http"
	"fanforge/contexts/creator-community/submission-service/adapters/memory"
	"fanforge/contexts/creator-community/submission-service/application/commands"
	"fanforge/contexts/creator-community/submission-service/application/queries"
	"fanforge/contexts/creator-community/submission-service/application/workers"
	"fanforge/contexts/creator-community/submission-service/ports"
)

type Module struct {
	Handler         httpadapter.Handler
	RegistrationJob workers.RegistrationRetryJob
	OutboxRelay     workers.OutboxRelay
	Store           *memory.Store
	Registry        *memory.StubRegistry
	BackgroundTasks *async.Dispatcher
	RegisterUseCase commands.RegisterIPUseCase
	ReviewUseCase   commands.ReviewSubmissionUseCase
}

type Dependencies struct {
	Repository ports.SubmissionRepository
	Audits     ports.AuditRepository
	Notifier   ports.Notifier
	Campaigns  ports.CampaignDirectory
	Anchors    ports.AssetAnchorResolver
	Authority  ports.ReviewerAuthority
	Registry   ports.IPRegistry
	Dispatcher ports.Dispatcher
	Outbox     ports.OutboxRepository
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	eligibility := commands.EligibilityChecker{
		Repository: deps.Repository,
		Anchors:    deps.Anchors,
	}
	registerIP := commands.RegisterIPUseCase{
		Repository:  deps.Repository,
		Anchors:     deps.Anchors,
		Registry:    deps.Registry,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
		Eligibility: eligibility,
	}
	createSubmission := commands.CreateSubmissionUseCase{
		Repository: deps.Repository,
		Campaigns:  deps.Campaigns,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	updateSubmission := commands.UpdateSubmissionUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	ownerActions := commands.OwnerSubmissionUseCase{
		Repository: deps.Repository,
		Audits:     deps.Audits,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	reviewSubmission := commands.ReviewSubmissionUseCase{
		Repository: deps.Repository,
		Audits:     deps.Audits,
		Notifier:   deps.Notifier,
		Authority:  deps.Authority,
		Registrar:  registerIP,
		Dispatcher: deps.Dispatcher,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateSubmission: createSubmission,
			UpdateSubmission: updateSubmission,
			OwnerActions:     ownerActions,
			ReviewSubmission: reviewSubmission,
			RegisterIP:       registerIP,
			Eligibility:      eligibility,
			Queries:          queryUseCase,
			Logger:           deps.Logger,
		},
		RegistrationJob: workers.RegistrationRetryJob{
			Repository: deps.Repository,
			Registrar:  registerIP,
			Logger:     deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
		RegisterUseCase: registerIP,
		ReviewUseCase:   reviewSubmission,
	}
}

// AuthorityFunc adapts a plain function to the ReviewerAuthority port.
type AuthorityFunc func(reviewerID string, brandID string) bool

func (f AuthorityFunc) CanReview(_ context.Context, reviewerID string, brandID string) (bool, error) {
	return f(reviewerID, brandID), nil
}

// NewInMemoryModule wires the module against the in-memory store, a stub
// registry and a synchronous dispatcher. Tests and local development only.
func NewInMemoryModule(seed memory.Seed, authority AuthorityFunc, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	registry := memory.NewStubRegistry()
	if authority == nil {
		authority = func(string, string) bool { return true }
	}
	module := NewModule(Dependencies{
		Repository: store,
		Audits:     store,
		Notifier:   store,
		Campaigns:  store,
		Anchors:    store,
		Authority:  authority,
		Registry:   registry,
		Dispatcher: async.SyncDispatcher{},
		Outbox:     store,
		Publisher:  nopPublisher{},
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Registry = registry
	return module
}

type nopPublisher struct{}

func (nopPublisher) Publish(_ context.Context, _ string, _ ports.EventEnvelope) error {
	return nil
}
