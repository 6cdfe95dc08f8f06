package ports

import (
	"context"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

// ScoreBreakdown carries the intermediate terms behind a final score so the
// presentation layer can explain the number.
type ScoreBreakdown struct {
	ActivityScore float64
	IncomeScore   float64
}

// ScoreResult is returned by ComputeScore: the final score, its risk band,
// the breakdown, and the raw data the score was computed from.
type ScoreResult struct {
	Score        float64
	Risk         domain.RiskCategory
	Breakdown    ScoreBreakdown
	Client       *domain.Client
	Transactions []domain.Transaction
}

// ScoringService drives the scoring pipeline for a single client.
type ScoringService interface {
	// ComputeScore is a pure read: it fetches the client's history and
	// profile, computes the score, and returns it with supporting data.
	// Nothing is persisted. Fails with domain.ErrClientNotFound when the
	// profile does not exist.
	ComputeScore(ctx context.Context, clientID string) (*ScoreResult, error)
	// PersistScore writes a computed score back onto the client profile with
	// a fresh update timestamp. The score is rounded to the nearest integer
	// and must land in [0, 1000].
	PersistScore(ctx context.Context, clientID string, score float64) error
}
