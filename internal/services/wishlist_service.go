package services

import (
	"inventaris/internal/models"
	"inventaris/internal/repositories"
)

// WishlistService handles business logic for per-user wishlists.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Add saves a product to the user's wishlist. The product must exist and
// must not already be on the list.
func (s *WishlistService) Add(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// Remove takes a product off the user's wishlist.
func (s *WishlistService) Remove(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}

// List returns the products on the user's wishlist.
func (s *WishlistService) List(userID string) ([]models.Product, error) {
	return s.wishlistRepo.List(userID)
}
