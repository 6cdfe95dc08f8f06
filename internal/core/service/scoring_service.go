package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// ScoringService orchestrates the scoring pipeline: fetch history and
// profile, run the pure scoring functions, classify. It is the only component
// touching the data store; the math itself lives in the domain package.
type ScoringService struct {
	clients      ports.ClientRepository
	transactions ports.TransactionRepository
	logger       zerolog.Logger
}

func NewScoringService(clients ports.ClientRepository, transactions ports.TransactionRepository, logger zerolog.Logger) *ScoringService {
	return &ScoringService{clients: clients, transactions: transactions, logger: logger}
}

// ComputeScore computes a fresh creditworthiness score for the client. Pure
// with respect to stored state: calling it twice without intervening
// transaction changes yields the same result, and nothing is written back.
func (s *ScoringService) ComputeScore(ctx context.Context, clientID string) (*ports.ScoreResult, error) {
	transactions, err := s.transactions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("compute score: list transactions: %w", err)
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("compute score: %w", err)
	}

	activity := domain.ActivityScore(transactions)
	income := float64(domain.IncomeScore(client.Income))
	final := domain.FinalScore(activity, income)

	s.logger.Info().
		Str("client_id", clientID).
		Int("transactions", len(transactions)).
		Float64("activity_score", activity).
		Float64("income_score", income).
		Float64("final_score", final).
		Msg("score computed")

	return &ports.ScoreResult{
		Score: final,
		Risk:  domain.ClassifyScore(final),
		Breakdown: ports.ScoreBreakdown{
			ActivityScore: activity,
			IncomeScore:   income,
		},
		Client:       client,
		Transactions: transactions,
	}, nil
}

// PersistScore writes the score onto the client profile. Invoked explicitly
// by the caller, never as a side effect of ComputeScore.
func (s *ScoringService) PersistScore(ctx context.Context, clientID string, score float64) error {
	rounded := int(math.Round(score))
	if rounded < 0 || rounded > 1000 {
		return fmt.Errorf("persist score %v: %w", score, domain.ErrScoreOutOfRange)
	}

	if err := s.clients.UpdateCreditScore(ctx, clientID, rounded, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to persist credit score")
		return fmt.Errorf("persist score: %w", err)
	}

	s.logger.Info().Str("client_id", clientID).Int("credit_score", rounded).Msg("credit score persisted")
	return nil
}
