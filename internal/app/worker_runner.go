package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"oasis-blood-platform/internal/logx"
	"oasis-blood-platform/internal/transport/kafka"
)

// WorkerRunner runs the matching worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes request-created events until the container context is done
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Ops      *http.Server `name:"ops_server" optional:"true"`
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(in.Pool, in.Logger, in.Consumer)

	if in.Ops != nil {
		errCh := startServer(in.Ops, in.Logger, "ops server")
		go func() {
			if err := <-errCh; err != nil {
				in.Logger.Error("ops server stopped", logx.Err(err))
			}
		}()
		defer gracefulShutdown(in.Ops, in.Logger, shutdownTimeout)
	}

	in.Logger.Info("donor-matching worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
