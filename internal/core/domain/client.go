package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrInvalidIncome = errors.New("income must not be negative")
var ErrScoreOutOfRange = errors.New("credit score outside [0, 1000]")
var ErrScoringInProgress = errors.New("a scoring run is already in progress for this client")

// Client is the individual being scored. CreditScore is the only mutable
// field in the model; once set it is always within [0, 1000].
type Client struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Income      int64     `json:"income" bson:"income"`
	CreditScore int       `json:"credit_score" bson:"credit_score"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewClient validates and builds a client profile. Income must be
// non-negative; the scoring formulas produce nonsense on negative values,
// so the boundary rejects them.
func NewClient(id, name, address, phone string, income int64, now time.Time) (*Client, error) {
	if income < 0 {
		return nil, ErrInvalidIncome
	}
	return &Client{
		ID:          id,
		Name:        name,
		Address:     address,
		PhoneNumber: phone,
		Income:      income,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
