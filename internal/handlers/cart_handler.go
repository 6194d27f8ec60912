package handlers

import (
	"errors"
	"log"

	"inventaris/internal/models"
	"inventaris/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart, checkout and
// recommendations. The acting user always comes from the JWT claims, never
// from the request body.
type CartHandler struct {
	cartService     *services.CartService
	checkoutService *services.CheckoutService
	recommendations *services.RecommendationService
	validate        *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, checkoutService *services.CheckoutService, recommendations *services.RecommendationService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		recommendations: recommendations,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:productID", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)
	cartRoutes.Get("/recommendations", h.HandleRecommendations)
}

// HandleViewCart returns the cart lines, a price preview and suggested
// products.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	lines, preview, err := h.cartService.View(c.Context(), userID)
	if err != nil {
		log.Printf("Error viewing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}

	suggestions, err := h.recommendations.Suggest(c.Context(), userID)
	if err != nil {
		// Suggestions are decoration; never fail the cart view over them.
		log.Printf("Error getting recommendations for user %s: %v", userID, err)
		suggestions = nil
	}

	return c.JSON(fiber.Map{
		"items":           lines,
		"preview":         preview,
		"recommendations": suggestions,
	})
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAddItem adds a quantity of one product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.cartService.Add(c.Context(), userID, req.ProductID, req.Quantity); err != nil {
		return cartErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added to cart",
	})
}

// HandleRemoveItem removes one product line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productID")

	if err := h.cartService.Remove(c.Context(), userID, productID); err != nil {
		return cartErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
	})
}

// HandleCheckout converts the cart into an order and returns the bill.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	bill, err := h.checkoutService.Checkout(c.Context(), userID)
	if err != nil {
		return cartErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Checkout successful",
		"bill":    bill,
		"total":   models.Rupees(bill.FinalPrice),
	})
}

// HandleRecommendations returns suggested products for the user's cart.
func (h *CartHandler) HandleRecommendations(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	suggestions, err := h.recommendations.Suggest(c.Context(), userID)
	if err != nil {
		log.Printf("Error getting recommendations for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute recommendations",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"recommendations": suggestions,
	})
}

// cartErrorResponse maps the cart/checkout error taxonomy onto HTTP statuses.
// Everything except a persistence failure is recoverable by the user.
func cartErrorResponse(c *fiber.Ctx, err error) error {
	var insufficient *models.InsufficientStockError
	var persistence *models.CheckoutPersistenceError

	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Your cart is empty. Add items before checking out.",
			"error":   err.Error(),
		})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   "Insufficient stock",
			"error":     err.Error(),
			"shortages": insufficient.Shortages,
		})
	case errors.Is(err, models.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrCartLineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found in cart",
			"error":   err.Error(),
		})
	case errors.As(err, &persistence):
		log.Printf("Checkout persistence failure: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Checkout failed; nothing was charged",
			"error":   err.Error(),
		})
	default:
		log.Printf("Unexpected cart error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Cart operation failed",
			"error":   err.Error(),
		})
	}
}
