package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/account/devtoken"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/account/firebase"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/notifier/qstash"
	cacherepo "github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/scouting-platform/internal/interfaces/httpapi"
	"github.com/riskibarqy/scouting-platform/internal/platform/cache"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/metrics"
	"github.com/riskibarqy/scouting-platform/internal/usecase"
)

// App owns the HTTP server and everything it must release on shutdown.
type App struct {
	Server *http.Server

	logger    *logging.Logger
	scheduler gocron.Scheduler
	closers   []func() error
}

type repositories struct {
	users       user.Repository
	clubs       club.Repository
	memberships clubmembership.Repository
	matches     match.Repository
	profiles    playerprofile.Repository
	infos       profileinfo.Repository
	visits      profilevisit.Repository

	// seedUsers is set in memory mode for the dev token verifier.
	seedUsers []user.User
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	built := false
	defer func() {
		if !built {
			a.closeResources()
		}
	}()

	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(cfg.CacheTTL)
	if cfg.CacheEnabled {
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
		repos.memberships = cacherepo.NewClubMembershipRepository(repos.memberships, store)
		repos.infos = cacherepo.NewProfileInfoRepository(repos.infos, store)
	}

	var recorder metrics.Recorder = metrics.Nop{}
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		recorder = metrics.NewService()
		metricsHandler = metrics.NewHandler()
	}

	reader, err := a.buildStatisticsReader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg, repos, logger)
	if err != nil {
		return nil, err
	}

	idGen := id.NewUUIDGenerator()
	analysis := usecase.NewAnalysisService(repos.matches, recorder, logger, cfg.Requeue.ProcessingTimeout)
	handler := httpapi.NewHandler(httpapi.Services{
		Users:          usecase.NewUserService(repos.users, cfg.DefaultUserCredits),
		Clubs:          usecase.NewClubService(repos.clubs, repos.profiles, repos.memberships, idGen),
		PlayerProfiles: usecase.NewPlayerProfileService(repos.profiles, repos.infos, repos.visits, idGen, logger),
		Profiles:       usecase.NewProfileService(repos.infos),
		Matches:        usecase.NewMatchService(repos.matches, notifier, idGen, recorder, logger),
		Analysis:       analysis,
		Statistics:     usecase.NewStatisticsService(reader, store),
	}, logger)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Verifier:           verifier,
		Logger:             logger,
		Metrics:            recorder,
		MetricsHandler:     metricsHandler,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalAPIKey:     cfg.InternalAPIKey,
	})

	if cfg.Requeue.Enabled {
		s, err := newRequeueScheduler(analysis, cfg.Requeue.Interval, logger)
		if err != nil {
			return nil, fmt.Errorf("build requeue scheduler: %w", err)
		}
		a.scheduler = s
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	built = true
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		a.logger.Warn("using in-memory storage with seed data", "storage_driver", cfg.StorageDriver)

		seedUsers := memory.SeedUsers()
		users := memory.NewUserRepository(seedUsers)
		clubs := memory.NewClubRepository(memory.SeedClubs())
		return repositories{
			users:       users,
			clubs:       clubs,
			memberships: memory.NewClubMembershipRepository(clubs),
			matches:     memory.NewMatchRepository(users),
			profiles:    memory.NewPlayerProfileRepository(memory.SeedPlayerProfiles()),
			infos:       memory.NewProfileInfoRepository(memory.SeedProfileInfos()),
			visits:      memory.NewProfileVisitRepository(users),
			seedUsers:   seedUsers,
		}, nil
	}

	db, err := OpenDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	return repositories{
		users:       postgres.NewUserRepository(db),
		clubs:       postgres.NewClubRepository(db),
		memberships: postgres.NewClubMembershipRepository(db),
		matches:     postgres.NewMatchRepository(db),
		profiles:    postgres.NewPlayerProfileRepository(db),
		infos:       postgres.NewProfileInfoRepository(db),
		visits:      postgres.NewProfileVisitRepository(db),
	}, nil
}

// buildStatisticsReader returns a nil reader when no statistics database is
// configured; the statistics endpoints then answer 503.
func (a *App) buildStatisticsReader(ctx context.Context, cfg config.Config) (statistics.Reader, error) {
	if cfg.Statistics.DatabaseURL == "" {
		a.logger.Warn("statistics database is not configured; statistics endpoints will return 503")
		return nil, nil
	}

	db, err := OpenDB(ctx, cfg.Statistics.DatabaseURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, fmt.Errorf("open statistics database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	return postgres.NewStatisticsReader(db, cfg.Statistics.Schema, cfg.Statistics.Table, a.logger), nil
}

func buildNotifier(cfg config.Config, logger *logging.Logger) (match.Notifier, error) {
	if !cfg.QStash.Enabled {
		return nil, nil
	}
	n, err := qstash.NewNotifier(qstash.Config{
		BaseURL:   cfg.QStash.BaseURL,
		Token:     cfg.QStash.Token,
		TargetURL: cfg.QStash.TargetURL,
		Retries:   cfg.QStash.Retries,
		APIKey:    cfg.InternalAPIKey,
		Circuit:   cfg.QStash.Circuit,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build qstash notifier: %w", err)
	}
	return n, nil
}

// buildVerifier uses Firebase whenever a project is configured. Memory mode
// without one falls back to dev tokens.
func buildVerifier(cfg config.Config, repos repositories, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	if cfg.Firebase.ProjectID != "" {
		keys := firebase.NewCertKeySource(firebase.CertKeySourceConfig{
			CertsURL: cfg.Firebase.CertsURL,
			Timeout:  cfg.Firebase.Timeout,
			Circuit:  cfg.Firebase.Circuit,
			Logger:   logger,
		})
		return firebase.NewVerifier(cfg.Firebase.ProjectID, keys), nil
	}
	if cfg.StorageDriver != config.StorageMemory {
		return nil, fmt.Errorf("firebase project id is required with storage driver %q", cfg.StorageDriver)
	}

	logger.Warn("FIREBASE_PROJECT_ID is empty; accepting dev tokens", "token_format", devtoken.Prefix+"<uid>")
	return devtoken.NewVerifier(repos.seedUsers), nil
}

// Start launches background jobs. The caller runs Server.ListenAndServe.
func (a *App) Start() {
	if a.scheduler != nil {
		a.scheduler.Start()
		a.logger.Info("requeue scheduler started")
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown scheduler: %w", err))
		}
		a.scheduler = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
