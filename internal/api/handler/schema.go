package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type recordTransactionRequest struct {
	Amount   int64  `json:"amount"   validate:"required,gt=0"`
	Category string `json:"category" validate:"required,oneof=Account Financial"`
	// Type is the attribute sub-type, e.g. "Purchase" for Account or
	// "Loan Payment" for Financial.
	Type string `json:"type" validate:"required"`
	// RefID is the originating company (Account) or financial product
	// (Financial) identifier.
	RefID string `json:"ref_id" validate:"required"`
}

// --- Response types ---

type clientSummaryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Income       int64  `json:"income"`
	CreditScore  int    `json:"credit_score"`
	RiskCategory string `json:"risk_category"`
	RiskTier     int    `json:"risk_tier"`
}

type clientDetailResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Income       int64     `json:"income"`
	CreditScore  int       `json:"credit_score"`
	RiskCategory string    `json:"risk_category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	Type      string    `json:"type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type transactionListResponse struct {
	ClientID string                `json:"client_id"`
	Total    int                   `json:"total"`
	Items    []transactionResponse `json:"items"`
}

type scoreBreakdownResponse struct {
	ActivityScore float64 `json:"activity_score"`
	IncomeScore   float64 `json:"income_score"`
}

type scoreResponse struct {
	ClientID     string                 `json:"client_id"`
	Score        float64                `json:"score"`
	RiskCategory string                 `json:"risk_category"`
	RiskTier     int                    `json:"risk_tier"`
	Breakdown    scoreBreakdownResponse `json:"breakdown"`
	Transactions int                    `json:"transactions"`
	Persisted    bool                   `json:"persisted"`
}

type seedResponse struct {
	Clients      int `json:"clients"`
	Transactions int `json:"transactions"`
}

type rescoreResponse struct {
	Enqueued int `json:"enqueued"`
}
