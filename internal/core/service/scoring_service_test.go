package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients    map[string]*domain.Client
	updateErr  error
	lastScore  int
	lastUpdate time.Time
	updates    int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) FindByID(_ context.Context, clientID string) (*domain.Client, error) {
	c, ok := r.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) UpdateCreditScore(_ context.Context, clientID string, score int, updatedAt time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	c, ok := r.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.CreditScore = score
	c.UpdatedAt = updatedAt
	r.lastScore = score
	r.lastUpdate = updatedAt
	r.updates++
	return nil
}

type stubTransactionRepo struct {
	byClient map[string][]domain.Transaction
	listErr  error
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{byClient: make(map[string][]domain.Transaction)}
}

func (r *stubTransactionRepo) ListByClient(_ context.Context, clientID string) ([]domain.Transaction, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Transaction(nil), r.byClient[clientID]...), nil
}

func (r *stubTransactionRepo) Create(_ context.Context, txn *domain.Transaction, _ string) error {
	r.byClient[txn.ClientID] = append(r.byClient[txn.ClientID], *txn)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func seedClient(repo *stubClientRepo, id string, income int64) {
	repo.clients[id] = &domain.Client{
		ID:          id,
		Name:        "Client " + id,
		Address:     "Jakarta",
		PhoneNumber: "+6281200000000",
		Income:      income,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func seedHistory(repo *stubTransactionRepo, clientID string, count int, amount int64, gapDays float64) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		offset := time.Duration(float64(i) * gapDays * 24 * float64(time.Hour))
		repo.byClient[clientID] = append(repo.byClient[clientID], domain.Transaction{
			ID:        "txn",
			ClientID:  clientID,
			Amount:    amount,
			Category:  domain.CategoryAccount,
			CreatedAt: base.Add(-offset),
		})
	}
}

// ---------------------------------------------------------------------------
// ComputeScore tests
// ---------------------------------------------------------------------------

func TestScoringService_ComputeScore_MidRangeClient(t *testing.T) {
	clients := newStubClientRepo()
	txns := newStubTransactionRepo()
	svc := NewScoringService(clients, txns, discardLogger)

	seedClient(clients, "client_1", 25_000_000)
	seedHistory(txns, "client_1", 100, 2_500_000, 30)

	result, err := svc.ComputeScore(context.Background(), "client_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Score-600) > 1e-9 {
		t.Errorf("expected score 600, got %v", result.Score)
	}
	if result.Risk != domain.RiskSubstandard {
		t.Errorf("expected %q, got %q", domain.RiskSubstandard, result.Risk)
	}
	if math.Abs(result.Breakdown.ActivityScore-600) > 1e-9 {
		t.Errorf("expected activity 600, got %v", result.Breakdown.ActivityScore)
	}
	if result.Breakdown.IncomeScore != 600 {
		t.Errorf("expected income 600, got %v", result.Breakdown.IncomeScore)
	}
	if result.Client == nil || result.Client.ID != "client_1" {
		t.Errorf("result must carry the client profile")
	}
	if len(result.Transactions) != 100 {
		t.Errorf("result must carry the raw history, got %d rows", len(result.Transactions))
	}
}

func TestScoringService_ComputeScore_HighIncomeNoActivity(t *testing.T) {
	clients := newStubClientRepo()
	txns := newStubTransactionRepo()
	svc := NewScoringService(clients, txns, discardLogger)

	// Income 45M scores 1000, but with zero transactions the aggregate is
	// 0.4*1000 = 400, which still lands in the highest-risk band.
	seedClient(clients, "client_1", 45_000_000)

	result, err := svc.ComputeScore(context.Background(), "client_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(result.Score-400) > 1e-9 {
		t.Errorf("expected score 400, got %v", result.Score)
	}
	if result.Risk != domain.RiskLoss {
		t.Errorf("expected %q, got %q", domain.RiskLoss, result.Risk)
	}
}

func TestScoringService_ComputeScore_ClientNotFound(t *testing.T) {
	svc := NewScoringService(newStubClientRepo(), newStubTransactionRepo(), discardLogger)

	_, err := svc.ComputeScore(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestScoringService_ComputeScore_RepoError(t *testing.T) {
	clients := newStubClientRepo()
	txns := newStubTransactionRepo()
	txns.listErr = errors.New("db unavailable")
	svc := NewScoringService(clients, txns, discardLogger)

	if _, err := svc.ComputeScore(context.Background(), "client_1"); err == nil {
		t.Fatal("expected error when transaction listing fails, got nil")
	}
}

func TestScoringService_ComputeScore_Idempotent(t *testing.T) {
	clients := newStubClientRepo()
	txns := newStubTransactionRepo()
	svc := NewScoringService(clients, txns, discardLogger)

	seedClient(clients, "client_1", 32_000_000)
	seedHistory(txns, "client_1", 42, 1_800_000, 12)

	first, err := svc.ComputeScore(context.Background(), "client_1")
	if err != nil {
		t.Fatalf("first compute failed: %v", err)
	}
	second, err := svc.ComputeScore(context.Background(), "client_1")
	if err != nil {
		t.Fatalf("second compute failed: %v", err)
	}

	if first.Score != second.Score {
		t.Errorf("same stored state must yield the same score: %v vs %v", first.Score, second.Score)
	}
	if clients.updates != 0 {
		t.Errorf("ComputeScore must not persist anything, saw %d updates", clients.updates)
	}
}

// ---------------------------------------------------------------------------
// PersistScore tests
// ---------------------------------------------------------------------------

func TestScoringService_PersistScore_RoundsAndWrites(t *testing.T) {
	clients := newStubClientRepo()
	svc := NewScoringService(clients, newStubTransactionRepo(), discardLogger)
	seedClient(clients, "client_1", 10_000_000)

	if err := svc.PersistScore(context.Background(), "client_1", 612.4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clients.lastScore != 612 {
		t.Errorf("expected rounded score 612, got %d", clients.lastScore)
	}
	if clients.lastUpdate.IsZero() {
		t.Error("expected a fresh update timestamp")
	}
	if clients.clients["client_1"].CreditScore != 612 {
		t.Errorf("stored score not updated: %d", clients.clients["client_1"].CreditScore)
	}
}

func TestScoringService_PersistScore_OutOfRange(t *testing.T) {
	clients := newStubClientRepo()
	svc := NewScoringService(clients, newStubTransactionRepo(), discardLogger)
	seedClient(clients, "client_1", 10_000_000)

	if err := svc.PersistScore(context.Background(), "client_1", -3); !errors.Is(err, domain.ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if err := svc.PersistScore(context.Background(), "client_1", 1000.6); !errors.Is(err, domain.ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if clients.updates != 0 {
		t.Errorf("no write must happen on rejected scores, saw %d", clients.updates)
	}
}

func TestScoringService_PersistScore_UnknownClient(t *testing.T) {
	svc := NewScoringService(newStubClientRepo(), newStubTransactionRepo(), discardLogger)

	if err := svc.PersistScore(context.Background(), "ghost", 500); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
