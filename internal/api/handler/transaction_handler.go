package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kredibel/credit-scoring/internal/api/metrics"
	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// TransactionSynthesizer is the interface the handler uses to generate random
// transactions (backed by the seed package).
type TransactionSynthesizer interface {
	AddRandomTransaction(ctx context.Context, clientID string) (*domain.Transaction, error)
}

// TransactionHandler handles HTTP requests for a client's transaction history.
type TransactionHandler struct {
	clients      ports.ClientRepository
	transactions ports.TransactionRepository
	synthesizer  TransactionSynthesizer
}

func NewTransactionHandler(clients ports.ClientRepository, transactions ports.TransactionRepository, synthesizer TransactionSynthesizer) *TransactionHandler {
	return &TransactionHandler{clients: clients, transactions: transactions, synthesizer: synthesizer}
}

// List handles GET /v1/clients/:id/transactions.
//
// @Summary      List a client's transactions, newest first
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  transactionListResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients/{id}/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	// Distinguish "no history" from "no such client".
	if _, err := h.clients.FindByID(ctx, clientID); err != nil {
		return err
	}

	transactions, err := h.transactions.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}

	items := make([]transactionResponse, len(transactions))
	for i, t := range transactions {
		items[i] = toTransactionResponse(t)
	}
	return c.JSON(http.StatusOK, transactionListResponse{
		ClientID: clientID,
		Total:    len(items),
		Items:    items,
	})
}

// Create handles POST /v1/clients/:id/transactions.
//
// @Summary      Record a transaction for a client
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Client id"
// @Param        body  body      recordTransactionRequest  true  "Transaction details"
// @Success      201   {object}  transactionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients/{id}/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	var req recordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if !domain.ValidTransactionType(domain.TransactionCategory(req.Category), req.Type) {
		return domain.ErrInvalidType
	}

	if _, err := h.clients.FindByID(ctx, clientID); err != nil {
		return err
	}

	txn, err := domain.NewTransaction(uuid.NewString(), clientID, req.Amount, domain.TransactionCategory(req.Category), time.Now().UTC())
	if err != nil {
		return err
	}
	switch txn.Category {
	case domain.CategoryAccount:
		txn.AccountType = req.Type
	case domain.CategoryFinancial:
		txn.FinancialType = req.Type
	}

	if err := h.transactions.Create(ctx, txn, req.RefID); err != nil {
		return err
	}

	metrics.TransactionsCreatedTotal.WithLabelValues(string(txn.Category)).Inc()
	return c.JSON(http.StatusCreated, toTransactionResponse(*txn))
}

// CreateRandom handles POST /v1/clients/:id/transactions/random — synthesizes
// one random transaction for demos.
//
// @Summary      Add a random transaction to a client's history
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      201  {object}  transactionResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients/{id}/transactions/random [post]
func (h *TransactionHandler) CreateRandom(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := c.Param("id")

	if _, err := h.clients.FindByID(ctx, clientID); err != nil {
		return err
	}

	txn, err := h.synthesizer.AddRandomTransaction(ctx, clientID)
	if err != nil {
		return err
	}

	metrics.TransactionsCreatedTotal.WithLabelValues(string(txn.Category)).Inc()
	return c.JSON(http.StatusCreated, toTransactionResponse(*txn))
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		Amount:    t.Amount,
		Category:  string(t.Category),
		Type:      t.Type(),
		CreatedAt: t.CreatedAt,
	}
}
