package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"oasis-blood-platform/internal/config"
	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/http/opsserver"
	"oasis-blood-platform/internal/logx"
	"oasis-blood-platform/internal/matching"
	"oasis-blood-platform/internal/metrics"
	"oasis-blood-platform/internal/notify"
	"oasis-blood-platform/internal/repository"
	"oasis-blood-platform/internal/service/matcher"
	"oasis-blood-platform/internal/transport/kafka"
)

// MustBuildWorker builds the matching worker container. The worker never runs migrations.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, nil); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container, b.registerer, b.gatherer); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerMatching(container, b.newNotifier); err != nil {
		return nil, fmt.Errorf("matching: %w", err)
	}
	if err := registerOps(container); err != nil {
		return nil, fmt.Errorf("ops: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds the worker container from the environment
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// WithNotifier replaces the push provider selected by configuration.
func (b *ContainerBuilder) WithNotifier(n matcher.Notifier) *ContainerBuilder {
	if n != nil {
		b.notifier = n
	}
	return b
}

func (b *ContainerBuilder) newNotifier(ctx context.Context, cfg *config.Config, logger logx.Logger) (matcher.Notifier, error) {
	if b.notifier != nil {
		return b.notifier, nil
	}
	return newNotifier(ctx, cfg, logger)
}

func newNotifier(ctx context.Context, cfg *config.Config, logger logx.Logger) (matcher.Notifier, error) {
	switch cfg.Push.Provider {
	case config.PushFCM:
		n, err := notify.NewFCM(ctx, cfg.Push.FCMCredentialsFile, logger)
		if err != nil {
			return nil, fmt.Errorf("fcm: %w", err)
		}
		return n, nil
	case config.PushSNS:
		n, err := notify.NewSNS(ctx, logger)
		if err != nil {
			return nil, fmt.Errorf("sns: %w", err)
		}
		return n, nil
	default:
		return notify.NewLogNotifier(logger), nil
	}
}

type matcherIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Donors   *repository.DonorRepo
	Devices  *repository.DeviceRepo
	Runs     *repository.MatchRunRepo
	Notifier matcher.Notifier
	Metrics  *metrics.Matching
}

func newMatcher(in matcherIn) *matcher.Matcher {
	m := in.Config.Matching
	filter := matching.NewFilter(matching.Policy{
		StandardRadius:      m.StandardRadiusM,
		EmergencyRadius:     m.EmergencyRadiusM,
		MinDonationInterval: m.MinDonationInterval,
	})
	scorer := matching.NewScorer(matching.DefaultWeights(), matching.DefaultReferenceDistanceMeters, m.MinDonationInterval)
	return matcher.New(matcher.Deps{
		Donors:   in.Donors,
		Tokens:   in.Devices,
		Notifier: in.Notifier,
		Claims:   in.Runs,
		Filter:   filter,
		Scorer:   scorer,
		Metrics:  in.Metrics,
		Logger:   in.Logger,
	}, matcher.Config{TopN: m.TopN, RunTimeout: m.RunTimeout})
}

// matchHandler adapts a Matcher to the consumer callback. Failed runs are
// reported so the consumer logs them; the offset is committed either way.
func matchHandler(m *matcher.Matcher) kafka.HandleFunc {
	return func(ctx context.Context, ev domain.RequestCreated) error {
		return m.Handle(ctx, ev).Err
	}
}

func newConsumer(cfg *config.Config, logger logx.Logger, m *matcher.Matcher) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.RequestsTopic, matchHandler(m))
}

func registerMatching(container *dig.Container, notifier func(context.Context, *config.Config, logx.Logger) (matcher.Notifier, error)) error {
	return provideAll(container,
		repository.NewDonorRepo,
		repository.NewDeviceRepo,
		repository.NewMatchRunRepo,
		notifier,
		newMatcher,
		newConsumer,
	)
}

type opsOut struct {
	dig.Out

	Server *http.Server `name:"ops_server"`
}

func newOpsServer(cfg *config.Config, gatherer prometheus.Gatherer, pool *pgxpool.Pool) opsOut {
	if cfg.Ops.Port == 0 {
		return opsOut{}
	}
	var probe opsserver.Probe
	if pool != nil {
		probe = pool.Ping
	}
	return opsOut{Server: &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Ops.Port),
		Handler:           opsserver.Handler(opsserver.Config{User: cfg.Ops.User, Pass: cfg.Ops.Pass}, gatherer, probe),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerOps(container *dig.Container) error {
	return provideAll(container, newOpsServer)
}
