package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

func TestClientHandler_List(t *testing.T) {
	e := echo.New()
	repo := &stubClientRepo{clients: []domain.Client{
		{ID: "client_1", Name: "Budi Santoso", Income: 35_000_000, CreditScore: 800},
		{ID: "client_2", Name: "Siti Rahayu", Income: 8_000_000, CreditScore: 400},
	}}
	handler := NewClientHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(resp))
	}
	// Risk band is re-derived from the stored score.
	if resp[0]["risk_tier"] != float64(1) {
		t.Fatalf("expected tier 1 for score 800, got %v", resp[0]["risk_tier"])
	}
	if resp[1]["risk_tier"] != float64(5) {
		t.Fatalf("expected tier 5 for score 400, got %v", resp[1]["risk_tier"])
	}
}

func TestClientHandler_Get(t *testing.T) {
	e := echo.New()
	repo := &stubClientRepo{clients: []domain.Client{
		{ID: "client_1", Name: "Budi Santoso", Income: 35_000_000, CreditScore: 700},
	}}
	handler := NewClientHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/clients/:id")
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "Budi Santoso" {
		t.Fatalf("unexpected name: %v", resp["name"])
	}
	if resp["risk_category"] != string(domain.RiskSpecialMention) {
		t.Fatalf("unexpected risk: %v", resp["risk_category"])
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewClientHandler(&stubClientRepo{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/clients/:id")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
