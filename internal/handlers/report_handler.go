package handlers

import (
	"log"

	"inventaris/internal/services"

	"github.com/gofiber/fiber/v2"
)

// How many rows the top-products and low-stock reports return.
const reportLimit = 5

// ReportHandler handles HTTP requests for the admin analysis reports.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterRoutes registers the report routes; all of them are admin-only.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, admin fiber.Handler) {
	reportRoutes := router.Group("/reports", admin)
	reportRoutes.Get("/revenue", h.HandleRevenue)
	reportRoutes.Get("/top-products", h.HandleTopProducts)
	reportRoutes.Get("/low-stock", h.HandleLowStock)
	reportRoutes.Get("/peak-hours", h.HandlePeakHours)
}

// HandleRevenue returns revenue aggregated by week and month.
func (h *ReportHandler) HandleRevenue(c *fiber.Ctx) error {
	report, err := h.service.Revenue(c.Context())
	if err != nil {
		log.Printf("Error computing revenue report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute revenue report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleTopProducts returns the most bought products.
func (h *ReportHandler) HandleTopProducts(c *fiber.Ctx) error {
	ranking, err := h.service.TopProducts(c.Context(), reportLimit)
	if err != nil {
		log.Printf("Error computing top products report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute top products report",
			"error":   err.Error(),
		})
	}
	return c.JSON(ranking)
}

// HandleLowStock returns the products closest to running out.
func (h *ReportHandler) HandleLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStock(reportLimit)
	if err != nil {
		log.Printf("Error computing low stock report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute low stock report",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandlePeakHours returns order counts bucketed by hour of day.
func (h *ReportHandler) HandlePeakHours(c *fiber.Ctx) error {
	buckets, err := h.service.PeakHours(c.Context())
	if err != nil {
		log.Printf("Error computing peak hours report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute peak hours report",
			"error":   err.Error(),
		})
	}
	return c.JSON(buckets)
}
