package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kredibel/credit-scoring/internal/api/metrics"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// Reseeder regenerates the full dummy dataset.
type Reseeder interface {
	Reseed(ctx context.Context) (clients, transactions int, err error)
}

// RescoreDispatcher enqueues bulk re-scoring jobs.
type RescoreDispatcher interface {
	EnqueueBatch(clientIDs []string)
}

// AdminHandler handles operational endpoints: data synthesis and bulk
// re-scoring.
type AdminHandler struct {
	seeder     Reseeder
	clients    ports.ClientRepository
	dispatcher RescoreDispatcher
}

func NewAdminHandler(seeder Reseeder, clients ports.ClientRepository, dispatcher RescoreDispatcher) *AdminHandler {
	return &AdminHandler{seeder: seeder, clients: clients, dispatcher: dispatcher}
}

// Seed handles POST /v1/admin/seed — wipes and regenerates the dataset.
//
// @Summary      Regenerate the dummy dataset
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  seedResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/admin/seed [post]
func (h *AdminHandler) Seed(c echo.Context) error {
	clients, transactions, err := h.seeder.Reseed(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.SeedRunsTotal.Inc()
	return c.JSON(http.StatusOK, seedResponse{
		Clients:      clients,
		Transactions: transactions,
	})
}

// Rescore handles POST /v1/admin/rescore — enqueues every client for
// re-scoring on the sharded worker pool and returns immediately.
//
// @Summary      Re-score every client asynchronously
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  rescoreResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/admin/rescore [post]
func (h *AdminHandler) Rescore(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context())
	if err != nil {
		return err
	}

	ids := make([]string, len(clients))
	for i, client := range clients {
		ids[i] = client.ID
	}
	h.dispatcher.EnqueueBatch(ids)

	return c.JSON(http.StatusAccepted, rescoreResponse{Enqueued: len(ids)})
}
