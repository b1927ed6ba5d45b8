package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/radiogagalight/f1-together/internal/config"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	pushdomain "github.com/radiogagalight/f1-together/internal/domain/push"
	"github.com/radiogagalight/f1-together/internal/infrastructure/account/gotrue"
	pushrelay "github.com/radiogagalight/f1-together/internal/infrastructure/push"
	cacherepo "github.com/radiogagalight/f1-together/internal/infrastructure/repository/cache"
	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/postgres"
	"github.com/radiogagalight/f1-together/internal/interfaces/httpapi"
	basecache "github.com/radiogagalight/f1-together/internal/platform/cache"
	idgen "github.com/radiogagalight/f1-together/internal/platform/id"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
	"github.com/radiogagalight/f1-together/internal/platform/resilience"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

// App owns every long-lived dependency the HTTP server needs: the database
// handle, the wired services, and the push delivery pool. Close releases them
// in reverse order of construction.
type App struct {
	Server *http.Server

	db             *sqlx.DB
	commentService *usecase.CommentService
	logger         *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	var profileRepo profile.Repository = postgres.NewProfileRepository(db)
	if cfg.CacheEnabled {
		profileRepo = cacherepo.NewProfileRepository(profileRepo, basecache.NewStore(cfg.CacheTTL))
	}
	commentRepo := postgres.NewCommentRepository(db)
	notifRepo := postgres.NewNotificationRepository(db)
	seasonPickRepo := postgres.NewSeasonPickRepository(db)
	midseasonRepo := postgres.NewMidseasonPickRepository(db)
	racePickRepo := postgres.NewRacePickRepository(db)
	pushRepo := postgres.NewPushSubscriptionRepository(db)
	seasonRepo := memory.NewSeasonRepository(memory.SeedRaces(), memory.SeedDrivers(), memory.SeedConstructors())

	var publisher pushdomain.Publisher
	if cfg.PushRelayEnabled {
		publisher = pushrelay.NewRelayPublisher(pushrelay.RelayPublisherConfig{
			BaseURL: cfg.PushRelayBaseURL,
			Token:   cfg.PushRelayToken,
			Timeout: cfg.PushRelayTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PushRelayCircuitEnabled,
				FailureThreshold: cfg.PushRelayCircuitFailureCount,
				OpenTimeout:      cfg.PushRelayCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PushRelayCircuitHalfOpenMax,
			},
		}, logger)
	} else {
		logger.Info("push relay disabled", "reason", "PUSH_RELAY_ENABLED=false")
	}

	profileSvc := usecase.NewProfileService(profileRepo, seasonRepo)
	seasonSvc := usecase.NewSeasonService(seasonRepo)
	seasonPickSvc := usecase.NewSeasonPickService(seasonPickRepo, midseasonRepo, seasonRepo)
	racePickSvc := usecase.NewRacePickService(racePickRepo, seasonRepo)
	commentSvc, err := usecase.NewCommentService(
		commentRepo,
		notifRepo,
		profileRepo,
		seasonRepo,
		pushRepo,
		publisher,
		usecase.NewMentionService(),
		idgen.NewRandomGenerator(),
		logger,
		cfg.PushRelayWorkers,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build comment service: %w", err)
	}
	feedSvc := usecase.NewFeedService(seasonPickRepo, racePickRepo, commentRepo, profileRepo, seasonRepo, logger)
	notifSvc := usecase.NewNotificationService(notifRepo, profileRepo, seasonRepo)
	pushSvc := usecase.NewPushService(pushRepo)
	accountSvc := usecase.NewAccountService(
		profileRepo,
		commentRepo,
		notifRepo,
		seasonPickRepo,
		midseasonRepo,
		racePickRepo,
		pushRepo,
		logger,
	)

	verifier := gotrue.NewClient(gotrue.ClientConfig{
		BaseURL: cfg.GoTrueBaseURL,
		AnonKey: cfg.GoTrueAnonKey,
		Timeout: cfg.GoTrueTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GoTrueCircuitEnabled,
			FailureThreshold: cfg.GoTrueCircuitFailureCount,
			OpenTimeout:      cfg.GoTrueCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GoTrueCircuitHalfOpenMaxReq,
		},
	}, logger)

	handler := httpapi.NewHandler(
		profileSvc,
		seasonSvc,
		seasonPickSvc,
		racePickSvc,
		commentSvc,
		feedSvc,
		notifSvc,
		pushSvc,
		accountSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db:             db,
		commentService: commentSvc,
		logger:         logger,
	}, nil
}

// Close drains the push delivery pool and closes the database. The HTTP
// server must already be shut down.
func (a *App) Close() error {
	a.commentService.Close()
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
