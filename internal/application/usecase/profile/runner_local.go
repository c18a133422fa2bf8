package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/pkg/logger"
)

// LocalRunner executes pipeline runs as in-process goroutines. Runs for the
// same profile id are serialized: a second enqueue while one is in flight
// waits for the first to finish before starting. The channel returned by
// Enqueue receives the run's terminal error and is then closed, so tests can
// await completion deterministically.
type LocalRunner struct {
	process *ProcessProfileUseCase
	logger  logger.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewLocalRunner(process *ProcessProfileUseCase, log logger.Logger) *LocalRunner {
	return &LocalRunner{
		process: process,
		logger:  log,
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

var _ service.PipelineRunner = (*LocalRunner)(nil)

func (r *LocalRunner) Enqueue(ctx context.Context, profileID uuid.UUID) (<-chan error, error) {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		lock := r.lockFor(profileID)
		lock.Lock()
		defer lock.Unlock()

		// The run outlives the request that accepted it.
		err := r.process.Execute(context.WithoutCancel(ctx), profileID)
		if err != nil {
			r.logger.Warn("pipeline run finished with error",
				zap.String("profile_id", profileID.String()), zap.Error(err))
		}
		done <- err
	}()

	return done, nil
}

func (r *LocalRunner) lockFor(profileID uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[profileID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[profileID] = lock
	}
	return lock
}
