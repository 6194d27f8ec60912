package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a fresh in-memory SQLite database for one test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedCheckoutState(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{ID: "prod-a", Name: "Product A", Category: "gadgets", Price: 30000, Stock: 10},
		{ID: "prod-b", Name: "Product B", Category: "gadgets", Price: 5000, Stock: 5},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	cart := []models.CartItem{
		{UserID: "user-1", ProductID: "prod-a", Quantity: 2},
		{UserID: "user-1", ProductID: "prod-b", Quantity: 1},
	}
	for i := range cart {
		require.NoError(t, db.Create(&cart[i]).Error)
	}
}

func buildOrder(userID string, createdAt time.Time, items ...models.OrderItem) *models.Order {
	order := &models.Order{
		ID:              "order-1",
		UserID:          userID,
		TotalPrice:      61750,
		DiscountPercent: 5,
		CreatedAt:       createdAt,
	}
	for _, item := range items {
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestPlaceOrder_CommitsEverythingTogether(t *testing.T) {
	db := setupDB(t)
	seedCheckoutState(t, db)
	repo := repositories.NewGORMOrderRepository(db)

	order := buildOrder("user-1", time.Now(),
		models.OrderItem{ProductID: "prod-a", ProductName: "Product A", Quantity: 2, UnitPrice: 30000},
		models.OrderItem{ProductID: "prod-b", ProductName: "Product B", Quantity: 1, UnitPrice: 5000},
	)

	err := repo.PlaceOrder(context.Background(), order)
	require.NoError(t, err)

	// One order with both items, stock decremented, cart emptied.
	saved, err := repo.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, int64(61750), saved.TotalPrice)
	assert.Len(t, saved.Items, 2)
	assert.Equal(t, 8, stockOf(t, db, "prod-a"))
	assert.Equal(t, 4, stockOf(t, db, "prod-b"))
	assert.Zero(t, countRows(t, db, &models.CartItem{}, "user_id = ?", "user-1"))
}

func TestPlaceOrder_ShortStockRollsBackEverything(t *testing.T) {
	db := setupDB(t)
	seedCheckoutState(t, db)
	repo := repositories.NewGORMOrderRepository(db)

	// First line fits, second asks for more than exists. The order insert
	// and the first decrement must both be rolled back.
	order := buildOrder("user-1", time.Now(),
		models.OrderItem{ProductID: "prod-a", ProductName: "Product A", Quantity: 2, UnitPrice: 30000},
		models.OrderItem{ProductID: "prod-b", ProductName: "Product B", Quantity: 6, UnitPrice: 5000},
	)

	err := repo.PlaceOrder(context.Background(), order)

	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "prod-b", insufficient.Shortages[0].ProductID)
	assert.Equal(t, 6, insufficient.Shortages[0].Requested)
	assert.Equal(t, 5, insufficient.Shortages[0].Available)

	assert.Zero(t, countRows(t, db, &models.Order{}, "1 = 1"))
	assert.Zero(t, countRows(t, db, &models.OrderItem{}, "1 = 1"))
	assert.Equal(t, 10, stockOf(t, db, "prod-a"))
	assert.Equal(t, 5, stockOf(t, db, "prod-b"))
	assert.Equal(t, int64(2), countRows(t, db, &models.CartItem{}, "user_id = ?", "user-1"))
}

func TestPlaceOrder_FailedRetryLeavesFirstCheckoutIntact(t *testing.T) {
	db := setupDB(t)
	seedCheckoutState(t, db)
	repo := repositories.NewGORMOrderRepository(db)

	first := buildOrder("user-1", time.Now(),
		models.OrderItem{ProductID: "prod-a", ProductName: "Product A", Quantity: 2, UnitPrice: 30000},
	)
	require.NoError(t, repo.PlaceOrder(context.Background(), first))
	require.Equal(t, 8, stockOf(t, db, "prod-a"))

	// A second order over the remaining stock fails and must leave the
	// state exactly as the first checkout left it.
	second := buildOrder("user-1", time.Now(),
		models.OrderItem{ProductID: "prod-a", ProductName: "Product A", Quantity: 9, UnitPrice: 30000},
	)
	second.ID = "order-2"
	for i := range second.Items {
		second.Items[i].OrderID = second.ID
	}

	err := repo.PlaceOrder(context.Background(), second)

	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), countRows(t, db, &models.Order{}, "1 = 1"))
	assert.Equal(t, 8, stockOf(t, db, "prod-a"))
	assert.GreaterOrEqual(t, stockOf(t, db, "prod-a"), 0)
	assert.Zero(t, countRows(t, db, &models.CartItem{}, "user_id = ?", "user-1"))
}

func TestCartRepository_SaveGetDelete(t *testing.T) {
	db := setupDB(t)
	seedCheckoutState(t, db)
	repo := repositories.NewGORMCartRepository(db)
	ctx := context.Background()

	// Upsert replaces the quantity for an existing (user, product) pair.
	require.NoError(t, repo.Save(ctx, &models.CartItem{UserID: "user-1", ProductID: "prod-a", Quantity: 7}))
	item, err := repo.Get(ctx, "user-1", "prod-a")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	// GetLines joins live product data onto the cart.
	lines, err := repo.GetLines(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Product A", lines[0].Name)
	assert.Equal(t, int64(30000), lines[0].UnitPrice)
	assert.Equal(t, 10, lines[0].Stock)
	assert.Equal(t, 7, lines[0].Quantity)

	// Deleting a missing line reports the taxonomy error.
	err = repo.Delete(ctx, "user-1", "no-such-product")
	assert.ErrorIs(t, err, models.ErrCartLineNotFound)

	require.NoError(t, repo.Clear(ctx, "user-1"))
	lines, err = repo.GetLines(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
