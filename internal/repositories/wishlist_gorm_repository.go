package repositories

import (
	"errors"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/gorm"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// Add inserts a wishlist entry.
func (r *GORMWishlistRepository) Add(item *models.WishlistItem) error {
	var existing models.WishlistItem
	err := r.db.First(&existing, "user_id = ? AND product_id = ?", item.UserID, item.ProductID).Error
	if err == nil {
		return fmt.Errorf("%w: %s", models.ErrAlreadyInWishlist, item.ProductID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check wishlist: %w", err)
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

// Remove deletes a wishlist entry.
func (r *GORMWishlistRepository) Remove(userID, productID string) error {
	res := r.db.Delete(&models.WishlistItem{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrWishlistItemNotFound, productID)
	}
	return nil
}

// List returns the products on the user's wishlist.
func (r *GORMWishlistRepository) List(userID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Table("products").
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ? AND products.deleted_at IS NULL", userID).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist for user %s: %w", userID, err)
	}
	return products, nil
}
