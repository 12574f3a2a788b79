package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"oasis-blood-platform/internal/logx"
	"oasis-blood-platform/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the API server
type Runner struct {
	runFn  func(*dig.Container) error
	exitFn func(int)
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run, exitFn: os.Exit}
}

// MustRun starts the HTTP server using the provided DI container and blocks
// until the context in the container is done.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := containerLogger(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Info("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		r.exitFn(1)
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	var logger logx.Logger = logx.Nop()
	if container == nil {
		return logger
	}
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type apiIn struct {
	dig.In

	Ctx      context.Context
	Server   *http.Server
	Pool     *pgxpool.Pool
	Producer *kafka.Producer
	Logger   logx.Logger
}

func appRun(in apiIn) error {
	errCh := startServer(in.Server, in.Logger, "service-api")

	var serveErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down service-api")
	case serveErr = <-errCh:
	}

	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	closeAPI(in.Pool, in.Producer, in.Logger)

	if serveErr != nil {
		return serveErr
	}
	return in.Ctx.Err()
}

// startServer serves in the background. The channel receives the error that
// stopped the server, except http.ErrServerClosed.
func startServer(server *http.Server, logger logx.Logger, name string) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(name+" listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeAPI(pool *pgxpool.Pool, producer *kafka.Producer, logger logx.Logger) {
	if err := producer.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
