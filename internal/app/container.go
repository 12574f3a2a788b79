package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"oasis-blood-platform/internal/config"
	"oasis-blood-platform/internal/http/handlers"
	"oasis-blood-platform/internal/http/middleware/ratelimit"
	"oasis-blood-platform/internal/http/router"
	"oasis-blood-platform/internal/logx"
	"oasis-blood-platform/internal/metrics"
	"oasis-blood-platform/internal/repository"
	"oasis-blood-platform/internal/service/donor"
	"oasis-blood-platform/internal/service/matcher"
	"oasis-blood-platform/internal/service/request"
	"oasis-blood-platform/internal/transport/kafka"
	"oasis-blood-platform/migrations"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
	serviceTimeout   = 3 * time.Second
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

type migrateFunc func(context.Context, *pgxpool.Pool) error

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	dbConnect  dbConnectFunc
	migrate    migrateFunc
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	notifier   matcher.Notifier
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		dbConnect:  connectDbWithRetry,
		migrate: func(ctx context.Context, pool *pgxpool.Pool) error {
			return repository.Migrate(ctx, pool, migrations.FS)
		},
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig uses cfg instead of loading configuration from the environment
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate replaces the schema migration step. A nil fn skips migrations.
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	b.migrate = fn
	return b
}

// WithRegistry registers metrics in reg instead of the default registry
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registerer = reg
		b.gatherer = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container, b.registerer, b.gatherer); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container from the environment
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
		if err != nil {
			return nil, err
		}
		if migrate != nil {
			if err := migrate(ctx, pool); err != nil {
				if pool != nil {
					pool.Close()
				}
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("database schema is up to date")
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type metricsOut struct {
	dig.Out

	Gatherer        prometheus.Gatherer
	RateLimited     prometheus.Counter     `name:"rate_limit_exceeded_total"`
	EventsPublished *prometheus.CounterVec `name:"request_events_published_total"`
	Matching        *metrics.Matching
}

func registerMetrics(container *dig.Container, reg prometheus.Registerer, gatherer prometheus.Gatherer) error {
	return provideAll(container, func() (metricsOut, error) {
		out := metricsOut{
			Gatherer:        gatherer,
			RateLimited:     metrics.NewRateLimitExceededTotal(),
			EventsPublished: metrics.NewEventsPublishedTotal(),
			Matching:        metrics.NewMatching(),
		}
		cs := append([]prometheus.Collector{out.RateLimited, out.EventsPublished}, out.Matching.Collectors()...)
		if err := registerCollectors(reg, cs...); err != nil {
			return metricsOut{}, err
		}
		return out, nil
	})
}

type producerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Published *prometheus.CounterVec `name:"request_events_published_total"`
}

func newProducer(in producerIn) (*kafka.Producer, error) {
	return kafka.NewProducer(in.Logger, in.Config.Kafka.Brokers, in.Config.Kafka.RequestsTopic, in.Published)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewDonorRepo,
		repository.NewDeviceRepo,
		repository.NewRequestRepo,
		newProducer,
		func(donors *repository.DonorRepo, devices *repository.DeviceRepo) *donor.Service {
			return donor.NewService(donors, devices, serviceTimeout)
		},
		func(repo *repository.RequestRepo, producer *kafka.Producer, logger logx.Logger) *request.Service {
			return request.NewService(repo, producer, serviceTimeout, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		func(logger logx.Logger, pool *pgxpool.Pool) *handlers.Handlers {
			var db handlers.Pinger
			if pool != nil {
				db = pool
			}
			return handlers.New(logger, db)
		},
		func(logger logx.Logger, svc *donor.Service) *handlers.DonorHandler {
			return handlers.NewDonorHandler(logger, svc)
		},
		func(logger logx.Logger, svc *request.Service) *handlers.RequestHandler {
			return handlers.NewRequestHandler(logger, svc)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}

type routerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Gatherer  prometheus.Gatherer
	Base      *handlers.Handlers
	Donors    *handlers.DonorHandler
	Requests  *handlers.RequestHandler
	RateLimit *ratelimit.Middleware
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Options{
		Logger:         in.Logger,
		RateLimit:      in.RateLimit.Handler(),
		AllowedOrigins: in.Config.CORS.AllowedOrigins,
		Gatherer:       in.Gatherer,
	}, in.Base, in.Donors, in.Requests)
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewKeyedLimiter(clock, ratelimit.Config{
		RPS:        rl.RPS,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxClients: rl.MaxClients,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
