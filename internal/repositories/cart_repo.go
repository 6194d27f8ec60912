package repositories

import (
	"context"

	"inventaris/internal/models"
)

// CartRepository defines the interface for cart data access. All methods are
// scoped to one user's cart; the checkout path passes a bounded context so no
// store call can block indefinitely.
type CartRepository interface {
	// Get returns the cart line for one product, or ErrCartLineNotFound.
	Get(ctx context.Context, userID, productID string) (*models.CartItem, error)
	// GetLines returns the user's cart joined with the live product rows.
	GetLines(ctx context.Context, userID string) ([]models.CartLine, error)
	// Save inserts the line or replaces its quantity if it already exists.
	Save(ctx context.Context, item *models.CartItem) error
	// Delete removes one line, or returns ErrCartLineNotFound.
	Delete(ctx context.Context, userID, productID string) error
	// Clear removes every line of the user's cart.
	Clear(ctx context.Context, userID string) error
}
