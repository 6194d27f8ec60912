package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"inventaris/internal/handlers"
	"inventaris/internal/middleware"
	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired the same way main does it.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	v := viper.New()
	v.SetDefault("JWT_SECRET", "test_jwt_secret")
	v.SetDefault("ADMIN_SECRET", "TestAdmin123")
	v.SetDefault("ADMIN_EMAIL_DOMAIN", "@inventory.com")
	v.AutomaticEnv()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(
		userRepo,
		v.GetString("JWT_SECRET"),
		v.GetString("ADMIN_SECRET"),
		v.GetString("ADMIN_EMAIL_DOMAIN"),
	)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, 5*time.Second)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, nil, 5*time.Second) // nil publisher: no broker in tests
	recommendationService := services.NewRecommendationService(cartRepo, productRepo, 5*time.Second)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo)
	reportService := services.NewReportService(orderRepo, productRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	admin := middleware.AdminRequired()
	handlers.NewProductHandler(productService).RegisterRoutes(authed, admin)
	handlers.NewCartHandler(cartService, checkoutService, recommendationService).RegisterRoutes(authed)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(authed)
	handlers.NewOrderHandler(orderService).RegisterRoutes(authed, admin)
	handlers.NewReportHandler(reportService).RegisterRoutes(authed, admin)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email, role, secretKey string) string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":       name,
		"email":      email,
		"password":   "secret123",
		"role":       role,
		"secret_key": secretKey,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, app *fiber.App, token, name, category string, price int64, stock int) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":     name,
		"category": category,
		"price":    price,
		"stock":    stock,
	})
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestUnauthenticatedAccess(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)

	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminGate(t *testing.T) {
	app := setupApp(t)
	userToken := registerAndLogin(t, app, "Asha", "asha@example.com", "user", "")

	// A plain user can read products but not create them or see reports.
	status, _ := doJSON(t, app, http.MethodGet, "/api/v1/products", userToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/products", userToken, map[string]interface{}{
		"name": "Sneaky", "category": "misc", "price": 100, "stock": 1,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/reports/revenue", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestEndToEndCheckout(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "Boss", "boss@inventory.com", "admin", "TestAdmin123")
	userToken := registerAndLogin(t, app, "Asha", "asha@example.com", "user", "")

	productA := createProduct(t, app, adminToken, "Product A", "gadgets", 30000, 10)
	productB := createProduct(t, app, adminToken, "Product B", "gadgets", 5000, 5)

	// Fill the cart: 2 x ₹300 + 1 x ₹50.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", userToken, map[string]interface{}{
		"product_id": productA, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", userToken, map[string]interface{}{
		"product_id": productB, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, status)

	// The cart view previews the same numbers checkout will commit to.
	status, body := doJSON(t, app, http.MethodGet, "/api/v1/cart", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	preview := body["preview"].(map[string]interface{})
	assert.Equal(t, float64(65000), preview["subtotal"])
	assert.Equal(t, float64(5), preview["discount_percent"])

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	bill := body["bill"].(map[string]interface{})
	assert.Equal(t, float64(65000), bill["subtotal"])
	assert.Equal(t, float64(5), bill["discount_percent"])
	assert.Equal(t, float64(3250), bill["discount_amount"])
	assert.Equal(t, float64(61750), bill["final_price"])
	assert.Equal(t, "₹617.50", body["total"])

	// Stock was decremented.
	status, productBody := doJSON(t, app, http.MethodGet, "/api/v1/products/"+productA, userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(8), productBody["stock"])
	status, productBody = doJSON(t, app, http.MethodGet, "/api/v1/products/"+productB, userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), productBody["stock"])

	// The cart is empty now, so a second checkout is rejected cleanly.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/cart", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", userToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// The order shows up in the user's history and the admin order log.
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/mine", userToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAddToCartOverStock(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "Boss", "boss@inventory.com", "admin", "TestAdmin123")
	userToken := registerAndLogin(t, app, "Asha", "asha@example.com", "user", "")

	productID := createProduct(t, app, adminToken, "Scarce Thing", "misc", 10000, 2)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", userToken, map[string]interface{}{
		"product_id": productID, "quantity": 3,
	})

	assert.Equal(t, http.StatusConflict, status)
	shortages := body["shortages"].([]interface{})
	first := shortages[0].(map[string]interface{})
	assert.Equal(t, float64(3), first["requested"])
	assert.Equal(t, float64(2), first["available"])
}

func TestWishlistFlow(t *testing.T) {
	app := setupApp(t)
	adminToken := registerAndLogin(t, app, "Boss", "boss@inventory.com", "admin", "TestAdmin123")
	userToken := registerAndLogin(t, app, "Asha", "asha@example.com", "user", "")

	productID := createProduct(t, app, adminToken, "Nice Thing", "misc", 10000, 5)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/wishlist", userToken, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(t, http.StatusCreated, status)

	// Adding the same product twice conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/wishlist", userToken, map[string]interface{}{
		"product_id": productID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/wishlist/"+productID, userToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/wishlist/"+productID, userToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
