package services

import (
	"context"
	"errors"
	"log"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events to the message broker.
// *rabbitmq.Client satisfies this interface.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// CheckoutService converts a user's cart into a persisted order. This is the
// only place where stock is decremented and the cart is cleared, and both
// happen in the same transaction as the order insert.
type CheckoutService struct {
	cartRepo     repositories.CartRepository
	checkoutRepo repositories.CheckoutRepository
	publisher    EventPublisher
	storeTimeout time.Duration
	now          func() time.Time
}

// NewCheckoutService creates a new CheckoutService. The publisher may be nil,
// in which case no events are emitted. storeTimeout bounds every store call;
// zero or negative means a 5 second default.
func NewCheckoutService(cartRepo repositories.CartRepository, checkoutRepo repositories.CheckoutRepository, publisher EventPublisher, storeTimeout time.Duration) *CheckoutService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &CheckoutService{
		cartRepo:     cartRepo,
		checkoutRepo: checkoutRepo,
		publisher:    publisher,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Used by tests that need a fixed order
// timestamp.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// Checkout places an order for everything in the user's cart.
//
// The cart is snapshotted together with current product prices, priced with
// the tier discount, and re-validated against live stock. On success exactly
// one order is inserted, stock is decremented per line and the cart is
// emptied, all in one transaction. On any failure nothing changes:
//   - models.ErrEmptyCart when there is nothing to buy,
//   - *models.InsufficientStockError listing every line over stock,
//   - *models.CheckoutPersistenceError wrapping a store failure.
//
// The returned Bill is derived for display; it is not persisted.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		return nil, &models.CheckoutPersistenceError{Err: err}
	}
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	priceLines := make([]PriceLine, len(lines))
	for i, line := range lines {
		priceLines[i] = PriceLine{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}
	pricing := PriceCart(priceLines)

	// Validate against the stock snapshot before touching the store. The
	// transaction re-checks with a compare-and-set, so this is a fast path
	// that reports every shortage at once rather than just the first.
	var shortages []models.StockShortage
	for _, line := range lines {
		if line.Quantity > line.Stock {
			shortages = append(shortages, models.StockShortage{
				ProductID: line.ProductID,
				Name:      line.Name,
				Requested: line.Quantity,
				Available: line.Stock,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &models.InsufficientStockError{Shortages: shortages}
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		TotalPrice:      pricing.FinalPrice,
		DiscountPercent: pricing.DiscountPercent,
		CreatedAt:       s.now(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	if err := s.checkoutRepo.PlaceOrder(ctx, order); err != nil {
		var insufficient *models.InsufficientStockError
		if errors.As(err, &insufficient) {
			return nil, insufficient
		}
		return nil, &models.CheckoutPersistenceError{Err: err}
	}

	if s.publisher != nil {
		// Best effort: a lost event never rolls back a committed order.
		event := map[string]interface{}{
			"orderID":         order.ID,
			"userID":          order.UserID,
			"totalPrice":      order.TotalPrice,
			"discountPercent": order.DiscountPercent,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	bill := &models.Bill{
		OrderID:         order.ID,
		Subtotal:        pricing.Subtotal,
		DiscountPercent: pricing.DiscountPercent,
		DiscountAmount:  pricing.DiscountAmount,
		FinalPrice:      pricing.FinalPrice,
	}
	for _, line := range lines {
		bill.Lines = append(bill.Lines, models.BillLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice * int64(line.Quantity),
		})
	}
	return bill, nil
}
