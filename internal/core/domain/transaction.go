package domain

import (
	"errors"
	"time"
)

// TransactionCategory distinguishes the two ledgers a transaction can
// originate from: day-to-day account activity or financial products.
type TransactionCategory string

const (
	CategoryAccount   TransactionCategory = "Account"
	CategoryFinancial TransactionCategory = "Financial"
)

// Sub-types recorded on the category-dependent attribute row.
const (
	AccountTypePurchase    = "Purchase"
	AccountTypeBillPayment = "Bill Payment"
	AccountTypeTransfer    = "Transfer"

	FinancialTypeLoanDisbursement = "Loan Disbursement"
	FinancialTypeLoanPayment      = "Loan Payment"
	FinancialTypeInvestment       = "Investment"
)

var ErrInvalidAmount = errors.New("transaction amount must be positive")
var ErrInvalidCategory = errors.New("unknown transaction category")
var ErrInvalidType = errors.New("transaction type does not belong to category")

// Transaction is a single immutable financial event belonging to exactly one
// client. AccountType and FinancialType come from the attribute side-tables
// via a left join; at most one of them is set, and both may be empty when no
// attribute row exists.
type Transaction struct {
	ID            string              `json:"id" bson:"_id"`
	ClientID      string              `json:"client_id" bson:"client_id"`
	Amount        int64               `json:"amount" bson:"amount"`
	Category      TransactionCategory `json:"category" bson:"category"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	AccountType   string              `json:"account_type,omitempty" bson:"account_type,omitempty"`
	FinancialType string              `json:"financial_type,omitempty" bson:"financial_type,omitempty"`
}

// NewTransaction validates and builds a transaction event.
func NewTransaction(id, clientID string, amount int64, category TransactionCategory, createdAt time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if category != CategoryAccount && category != CategoryFinancial {
		return nil, ErrInvalidCategory
	}
	return &Transaction{
		ID:        id,
		ClientID:  clientID,
		Amount:    amount,
		Category:  category,
		CreatedAt: createdAt,
	}, nil
}

// ValidTransactionType reports whether t belongs to the category's sub-type
// enumeration. An Account transaction cannot carry a Financial sub-type and
// vice versa.
func ValidTransactionType(category TransactionCategory, t string) bool {
	switch category {
	case CategoryAccount:
		return t == AccountTypePurchase || t == AccountTypeBillPayment || t == AccountTypeTransfer
	case CategoryFinancial:
		return t == FinancialTypeLoanDisbursement || t == FinancialTypeLoanPayment || t == FinancialTypeInvestment
	}
	return false
}

// Type returns the unified sub-type for display: the account attribute when
// present, otherwise the financial attribute, otherwise empty (a transaction
// whose attribute row is missing).
func (t Transaction) Type() string {
	if t.AccountType != "" {
		return t.AccountType
	}
	return t.FinancialType
}

// CompanyType codes the kind of company a transaction attribute points at.
type CompanyType int

const (
	CompanyBank CompanyType = iota + 1
	CompanyDigitalPayment
	CompanyFintech
	CompanyInsurance
)

// Company originates account-category transactions.
type Company struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Type      CompanyType `json:"type" bson:"type"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// FinancialProduct originates financial-category transactions.
type FinancialProduct struct {
	ID           string    `json:"id" bson:"_id"`
	CompanyID    string    `json:"company_id" bson:"company_id"`
	Type         string    `json:"type" bson:"type"`
	InterestRate float64   `json:"interest_rate" bson:"interest_rate"`
	LoanTermMo   int       `json:"loan_term_months" bson:"loan_term_months"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
