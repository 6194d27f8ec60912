package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inventaris/internal/handlers"
	"inventaris/internal/middleware"
	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"
	"inventaris/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "inventory.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("ADMIN_SECRET", "InventoryAdmin123")
	viper.SetDefault("ADMIN_EMAIL_DOMAIN", "@inventory.com")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables order events
	viper.SetDefault("STORE_TIMEOUT", 5*time.Second)
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	storeTimeout := viper.GetDuration("STORE_TIMEOUT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; order events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(
		userRepo,
		viper.GetString("JWT_SECRET"),
		viper.GetString("ADMIN_SECRET"),
		viper.GetString("ADMIN_EMAIL_DOMAIN"),
	)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, storeTimeout)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, publisher, storeTimeout)
	recommendationService := services.NewRecommendationService(cartRepo, productRepo, storeTimeout)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo)
	reportService := services.NewReportService(orderRepo, productRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService, recommendationService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	admin := middleware.AdminRequired()
	productHandler.RegisterRoutes(authed, admin)
	cartHandler.RegisterRoutes(authed)
	wishlistHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed, admin)
	reportHandler.RegisterRoutes(authed, admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM driver. SQLite is the default for
// single-file deployments; Postgres is for shared installs.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
