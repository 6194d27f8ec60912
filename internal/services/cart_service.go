package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"
)

// CartService handles business logic for a single user's cart.
type CartService struct {
	cartRepo     repositories.CartRepository
	productRepo  repositories.ProductRepository
	storeTimeout time.Duration
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, storeTimeout time.Duration) *CartService {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &CartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		storeTimeout: storeTimeout,
	}
}

// Add puts quantity units of a product into the user's cart. A repeat add
// merges into the existing line. The new line total must not exceed current
// stock; on violation nothing is added.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}

	newQuantity := quantity
	existing, err := s.cartRepo.Get(ctx, userID, productID)
	switch {
	case err == nil:
		newQuantity += existing.Quantity
	case !errors.Is(err, models.ErrCartLineNotFound):
		// A store failure must not be mistaken for a fresh line: the
		// upsert would replace the existing quantity instead of merging.
		return err
	}

	if newQuantity > product.Stock {
		return &models.InsufficientStockError{Shortages: []models.StockShortage{{
			ProductID: product.ID,
			Name:      product.Name,
			Requested: newQuantity,
			Available: product.Stock,
		}}}
	}

	return s.cartRepo.Save(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  newQuantity,
	})
}

// Remove deletes one product line from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.cartRepo.Delete(ctx, userID, productID)
}

// View returns the user's cart lines joined with live product data, plus a
// price preview computed the same way checkout will compute it.
func (s *CartService) View(ctx context.Context, userID string) ([]models.CartLine, PricingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	lines, err := s.cartRepo.GetLines(ctx, userID)
	if err != nil {
		return nil, PricingResult{}, err
	}
	priceLines := make([]PriceLine, len(lines))
	for i, line := range lines {
		priceLines[i] = PriceLine{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}
	return lines, PriceCart(priceLines), nil
}
