package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bot-analytics-service/internal/model"
	"bot-analytics-service/internal/repository"
)

// InteractionWorker absorbs high-frequency interaction traffic and flushes
// it to the store in batches.
type InteractionWorker interface {
	Enqueue(in model.UserInteraction)
	Shutdown()
}

type batchInteractionWorker struct {
	repo          repository.InteractionRepository
	queue         chan model.UserInteraction
	batchSize     int
	flushInterval time.Duration
	log           zerolog.Logger
	wg            sync.WaitGroup
}

// NewInteractionWorker starts a background worker that flushes whenever the
// batch fills or the interval elapses, whichever comes first.
func NewInteractionWorker(repo repository.InteractionRepository, log zerolog.Logger, bufferSize, batchSize int, interval time.Duration) *batchInteractionWorker {
	worker := &batchInteractionWorker{
		repo:          repo,
		queue:         make(chan model.UserInteraction, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
		log:           log.With().Str("component", "interaction_worker").Logger(),
	}
	worker.wg.Add(1)
	go worker.loop()
	return worker
}

// Enqueue blocks when the buffer is full, applying backpressure to producers.
func (w *batchInteractionWorker) Enqueue(in model.UserInteraction) {
	w.queue <- in
}

// Shutdown closes the queue and blocks until the remaining interactions are
// flushed.
func (w *batchInteractionWorker) Shutdown() {
	close(w.queue)
	w.wg.Wait()
	w.log.Info().Msg("interaction worker drained")
}

func (w *batchInteractionWorker) loop() {
	defer w.wg.Done()

	var batch []model.UserInteraction
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case in, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}

			batch = append(batch, in)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *batchInteractionWorker) flush(batch []model.UserInteraction) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Errors are logged, not retried: a transient store failure costs this
	// batch only.
	if err := w.repo.CreateBatch(ctx, batch); err != nil {
		w.log.Error().Err(err).Int("batch_size", len(batch)).Msg("bulk insert failed")
		return
	}
	w.log.Debug().Int("batch_size", len(batch)).Msg("interactions flushed")
}
