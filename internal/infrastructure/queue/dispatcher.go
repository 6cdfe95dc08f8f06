package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kredibel/credit-scoring/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128

	// requeueDelay spaces retries when a client's score lock is held by an
	// interactive scoring run.
	requeueDelay = 250 * time.Millisecond
)

// ScoreLocker serializes compute-and-persist runs per client (backed by
// Redis). The dispatcher takes the same lock the HTTP scoring endpoint does.
type ScoreLocker interface {
	Acquire(ctx context.Context, clientID string) (bool, error)
	Release(ctx context.Context, clientID string) error
}

// Dispatcher fans bulk re-scoring jobs out to a fixed set of workers using
// consistent hashing on the client id. All jobs for one client land on the
// same worker, so bulk runs never interleave with each other; the score lock
// additionally serializes a worker against interactive scoring requests for
// the same client, closing the lost-update hazard on the credit score write.
type Dispatcher struct {
	workers []chan string
	scoring ports.ScoringService
	lock    ScoreLocker
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, scoring ports.ScoringService, lock ScoreLocker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		scoring: scoring,
		lock:    lock,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a re-scoring run for one client on its designated worker.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(clientID string) {
	d.workers[d.shardIndex(clientID)] <- clientID
}

// EnqueueBatch schedules re-scoring runs for many clients, preserving
// per-client ordering.
func (d *Dispatcher) EnqueueBatch(clientIDs []string) {
	for _, id := range clientIDs {
		d.Enqueue(id)
	}
}

// shardIndex maps a client id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case clientID, ok := <-ch:
			if !ok {
				return
			}
			d.rescore(ctx, id, clientID)
		}
	}
}

func (d *Dispatcher) rescore(ctx context.Context, workerID int, clientID string) {
	acquired, err := d.lock.Acquire(ctx, clientID)
	if err != nil {
		d.log.Error().Err(err).
			Str("client_id", clientID).
			Int("worker_id", workerID).
			Msg("score lock unavailable")
		return
	}
	if !acquired {
		// An interactive scoring run holds the lock; come back shortly.
		time.AfterFunc(requeueDelay, func() {
			if ctx.Err() == nil {
				d.Enqueue(clientID)
			}
		})
		return
	}
	defer func() { _ = d.lock.Release(ctx, clientID) }()

	result, err := d.scoring.ComputeScore(ctx, clientID)
	if err != nil {
		d.log.Error().Err(err).
			Str("client_id", clientID).
			Int("worker_id", workerID).
			Msg("re-scoring failed")
		return
	}
	if err := d.scoring.PersistScore(ctx, clientID, result.Score); err != nil {
		d.log.Error().Err(err).
			Str("client_id", clientID).
			Int("worker_id", workerID).
			Msg("re-scoring persist failed")
	}
}
