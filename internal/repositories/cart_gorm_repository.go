package repositories

import (
	"context"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Get retrieves a single cart line.
func (r *GORMCartRepository) Get(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", models.ErrCartLineNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}
	return &item, nil
}

// GetLines retrieves the user's cart joined with product name, category,
// price and current stock.
func (r *GORMCartRepository) GetLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id, products.name, products.category, products.price AS unit_price, cart_items.quantity, products.stock").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ? AND products.deleted_at IS NULL", userID).
		Order("products.name ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines for user %s: %w", userID, err)
	}
	return lines, nil
}

// Save upserts a cart line: inserts it, or replaces the quantity when the
// (user, product) pair already exists.
func (r *GORMCartRepository) Save(ctx context.Context, item *models.CartItem) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to save cart line: %w", err)
	}
	return nil
}

// Delete removes one cart line.
func (r *GORMCartRepository) Delete(ctx context.Context, userID, productID string) error {
	res := r.db.WithContext(ctx).
		Delete(&models.CartItem{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrCartLineNotFound, productID)
	}
	return nil
}

// Clear removes every line of the user's cart.
func (r *GORMCartRepository) Clear(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
