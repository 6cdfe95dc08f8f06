package ports

import (
	"context"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

// TransactionRepository defines persistence operations for transactions and
// their category-dependent attribute rows.
type TransactionRepository interface {
	// ListByClient returns the client's full history ordered by created_at
	// descending, left-joined with the attribute side-tables so each row
	// carries its account or financial sub-type (or neither, when the
	// attribute row is missing).
	ListByClient(ctx context.Context, clientID string) ([]domain.Transaction, error)
	// Create inserts a transaction together with its attribute row. RefID is
	// the company (Account category) or financial product (Financial
	// category) the attribute points at.
	Create(ctx context.Context, txn *domain.Transaction, refID string) error
}
