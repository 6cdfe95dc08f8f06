package ports

import (
	"context"
	"time"

	"github.com/kredibel/credit-scoring/internal/core/domain"
)

// ClientRepository defines persistence operations for client profiles.
type ClientRepository interface {
	// FindByID retrieves a single client profile. Returns
	// domain.ErrClientNotFound when no profile row exists; callers never see
	// an empty result.
	FindByID(ctx context.Context, clientID string) (*domain.Client, error)
	// List returns all client profiles ordered by name.
	List(ctx context.Context) ([]domain.Client, error)
	// UpdateCreditScore persists a freshly computed score onto the client
	// along with the update timestamp. Repeated writes of the same value are
	// a no-op in effect.
	UpdateCreditScore(ctx context.Context, clientID string, score int, updatedAt time.Time) error
}
