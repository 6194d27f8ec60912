package handlers

import (
	"errors"
	"log"

	"inventaris/internal/models"
	"inventaris/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the per-user wishlist.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleList)
	wishlistRoutes.Post("/", h.HandleAdd)
	wishlistRoutes.Delete("/:productID", h.HandleRemove)
}

// WishlistRequest represents the request body for adding to the wishlist.
type WishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// HandleList returns the products on the user's wishlist.
func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	products, err := h.service.List(userID)
	if err != nil {
		log.Printf("Error listing wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleAdd saves a product to the user's wishlist.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req WishlistRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.Add(userID, req.ProductID); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
				"error":   err.Error(),
			})
		case errors.Is(err, models.ErrAlreadyInWishlist):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Product is already in your wishlist",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error adding to wishlist for user %s: %v", userID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not add to wishlist",
				"error":   err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added to wishlist",
	})
}

// HandleRemove takes a product off the user's wishlist.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productID")

	if err := h.service.Remove(userID, productID); err != nil {
		if errors.Is(err, models.ErrWishlistItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found in wishlist",
				"error":   err.Error(),
			})
		}
		log.Printf("Error removing from wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from wishlist",
	})
}
