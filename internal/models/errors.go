package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the cart, wishlist and account operations. Callers
// match them with errors.Is after the services wrap them with context.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrProductNotFound      = errors.New("product not found")
	ErrCartLineNotFound     = errors.New("product not found in cart")
	ErrAlreadyInWishlist    = errors.New("product is already in wishlist")
	ErrWishlistItemNotFound = errors.New("product not found in wishlist")
	ErrEmailTaken           = errors.New("email already registered")
	ErrAdminSignupDenied    = errors.New("admin registration denied")
)

// StockShortage describes one product for which the requested quantity
// exceeds the available stock.
type StockShortage struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// InsufficientStockError is returned when one or more cart lines ask for
// more units than the catalog has. It carries every offending line so the
// caller can tell the user exactly what to fix.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.Name, s.Requested, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// CheckoutPersistenceError wraps a store failure that aborted a checkout.
// The transaction was rolled back; no order, stock or cart change is visible.
type CheckoutPersistenceError struct {
	Err error
}

func (e *CheckoutPersistenceError) Error() string {
	return fmt.Sprintf("checkout could not be persisted: %v", e.Err)
}

func (e *CheckoutPersistenceError) Unwrap() error {
	return e.Err
}
