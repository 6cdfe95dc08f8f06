package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

type recordingScoringService struct {
	mu        sync.Mutex
	computed  []string
	persisted []string
	done      chan struct{}
	want      int
}

func (s *recordingScoringService) ComputeScore(ctx context.Context, clientID string) (*ports.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.computed = append(s.computed, clientID)
	return &ports.ScoreResult{Score: 600, Risk: domain.RiskSubstandard}, nil
}

func (s *recordingScoringService) PersistScore(ctx context.Context, clientID string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted = append(s.persisted, clientID)
	if len(s.persisted) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingScoringService) persistedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.persisted)
}

// gateLock mimics the Redis score lock: acquisition fails while an
// interactive scoring run holds the lease.
type gateLock struct {
	mu       sync.Mutex
	held     bool
	acquires int
	releases int
}

func (l *gateLock) Acquire(ctx context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquires++
	return !l.held, nil
}

func (l *gateLock) Release(ctx context.Context, clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releases++
	return nil
}

func (l *gateLock) setHeld(held bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = held
}

func TestDispatcher_ProcessesBatch(t *testing.T) {
	ids := []string{"client_1", "client_2", "client_3", "client_4", "client_5"}
	svc := &recordingScoringService{done: make(chan struct{}), want: len(ids)}
	lock := &gateLock{}

	d := NewDispatcher(3, svc, lock, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueueBatch(ids)

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for batch; persisted %d of %d", svc.persistedCount(), len(ids))
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	seen := make(map[string]bool, len(svc.persisted))
	for _, id := range svc.persisted {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Fatalf("client %s never persisted", id)
		}
	}
}

func TestDispatcher_DefersToHeldScoreLock(t *testing.T) {
	svc := &recordingScoringService{done: make(chan struct{}), want: 1}
	lock := &gateLock{held: true}

	d := NewDispatcher(1, svc, lock, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue("client_1")

	// While the interactive run holds the lock the worker must not compute
	// or persist, only back off and retry.
	time.Sleep(2 * requeueDelay)
	if n := svc.persistedCount(); n != 0 {
		t.Fatalf("persisted %d scores while lock was held", n)
	}
	lock.mu.Lock()
	attempts := lock.acquires
	lock.mu.Unlock()
	if attempts == 0 {
		t.Fatalf("worker never attempted the score lock")
	}

	lock.setHeld(false)

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("job never completed after lock release")
	}

	// Release runs after the persist, so give the worker a moment.
	deadline := time.Now().Add(time.Second)
	for {
		lock.mu.Lock()
		releases := lock.releases
		lock.mu.Unlock()
		if releases == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected one lock release, got %d", releases)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingScoringService{done: make(chan struct{}), want: 1}, &gateLock{}, zerolog.Nop())

	for _, id := range []string{"client_1", "client_2", "abc", ""} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q not stable: %d then %d", id, first, got)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard %d out of range for %q", first, id)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingScoringService{done: make(chan struct{}), want: 1}, &gateLock{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
