package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// ClientHandler handles HTTP requests for client profiles.
type ClientHandler struct {
	clients ports.ClientRepository
}

func NewClientHandler(clients ports.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /v1/clients. The risk category shown here is re-derived
// from the stored credit score, without recomputation.
//
// @Summary      List all clients with their stored scores and risk bands
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientSummaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clients.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]clientSummaryResponse, len(clients))
	for i, client := range clients {
		risk := domain.ClassifyScore(float64(client.CreditScore))
		items[i] = clientSummaryResponse{
			ID:           client.ID,
			Name:         client.Name,
			Address:      client.Address,
			Income:       client.Income,
			CreditScore:  client.CreditScore,
			RiskCategory: string(risk),
			RiskTier:     risk.Tier(),
		}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client profile
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientDetailResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientDetailResponse{
		ID:           client.ID,
		Name:         client.Name,
		Address:      client.Address,
		PhoneNumber:  client.PhoneNumber,
		Income:       client.Income,
		CreditScore:  client.CreditScore,
		RiskCategory: string(domain.ClassifyScore(float64(client.CreditScore))),
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	})
}
