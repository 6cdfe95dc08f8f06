package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kredibel/credit-scoring/internal/api/metrics"
	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// ScoreLocker serializes compute-and-persist runs per client (backed by
// Redis).
type ScoreLocker interface {
	Acquire(ctx context.Context, clientID string) (bool, error)
	Release(ctx context.Context, clientID string) error
}

// ScoringHandler exposes the scoring engine over HTTP.
type ScoringHandler struct {
	scoring ports.ScoringService
	lock    ScoreLocker
}

func NewScoringHandler(scoring ports.ScoringService, lock ScoreLocker) *ScoringHandler {
	return &ScoringHandler{scoring: scoring, lock: lock}
}

// Preview handles GET /v1/clients/:id/score — computes a fresh score without
// persisting it.
//
// @Summary      Compute a client's credit score without persisting
// @Tags         scoring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  scoreResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients/{id}/score [get]
func (h *ScoringHandler) Preview(c echo.Context) error {
	result, err := h.computeTimed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toScoreResponse(c.Param("id"), result, false))
}

// Score handles POST /v1/clients/:id/score — computes and persists the score
// under the per-client lock.
//
// @Summary      Compute and persist a client's credit score
// @Tags         scoring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  scoreResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients/{id}/score [post]
func (h *ScoringHandler) Score(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	acquired, err := h.lock.Acquire(ctx, clientID)
	if err != nil {
		return err
	}
	if !acquired {
		metrics.ScoringErrorsTotal.WithLabelValues("locked").Inc()
		return domain.ErrScoringInProgress
	}
	defer func() { _ = h.lock.Release(ctx, clientID) }()

	result, err := h.computeTimed(ctx, clientID)
	if err != nil {
		return err
	}

	if err := h.scoring.PersistScore(ctx, clientID, result.Score); err != nil {
		return err
	}
	metrics.ScoresPersistedTotal.Inc()

	return c.JSON(http.StatusOK, toScoreResponse(clientID, result, true))
}

func (h *ScoringHandler) computeTimed(ctx context.Context, clientID string) (*ports.ScoreResult, error) {
	start := time.Now()
	result, err := h.scoring.ComputeScore(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			metrics.ScoringErrorsTotal.WithLabelValues("client_not_found").Inc()
		} else {
			metrics.ScoringErrorsTotal.WithLabelValues("store_error").Inc()
		}
		return nil, err
	}

	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.ScoresComputedTotal.WithLabelValues(tierLabel(result.Risk)).Inc()
	return result, nil
}

func tierLabel(risk domain.RiskCategory) string {
	return [6]string{"", "1", "2", "3", "4", "5"}[risk.Tier()]
}

func toScoreResponse(clientID string, result *ports.ScoreResult, persisted bool) scoreResponse {
	return scoreResponse{
		ClientID:     clientID,
		Score:        result.Score,
		RiskCategory: string(result.Risk),
		RiskTier:     result.Risk.Tier(),
		Breakdown: scoreBreakdownResponse{
			ActivityScore: result.Breakdown.ActivityScore,
			IncomeScore:   result.Breakdown.IncomeScore,
		},
		Transactions: len(result.Transactions),
		Persisted:    persisted,
	}
}
