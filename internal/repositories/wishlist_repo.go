package repositories

import "inventaris/internal/models"

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	// Add inserts the wishlist entry, or returns ErrAlreadyInWishlist.
	Add(item *models.WishlistItem) error
	// Remove deletes the entry, or returns ErrWishlistItemNotFound.
	Remove(userID, productID string) error
	// List returns the products on the user's wishlist.
	List(userID string) ([]models.Product, error)
}
