package repositories

import (
	"context"

	"inventaris/internal/models"
)

// OrderRepository defines the interface for reading the order log. Orders are
// only ever written by the checkout transaction (see CheckoutRepository).
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// CheckoutRepository applies a checkout as one atomic unit: the order row and
// its items are inserted, every product's stock is decremented, and the
// user's cart is emptied, or none of it happens.
type CheckoutRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order) error
}
