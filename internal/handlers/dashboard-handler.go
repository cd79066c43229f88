package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/asre459/menna/internal/service"
)

type DashboardHandler struct {
	donationService *service.DonationService
	mediaService    *service.MediaService
	userService     *service.UserService
}

func NewDashboardHandler(donationService *service.DonationService, mediaService *service.MediaService, userService *service.UserService) *DashboardHandler {
	return &DashboardHandler{
		donationService: donationService,
		mediaService:    mediaService,
		userService:     userService,
	}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	adminGroup := app.Group("/api/admin", requireAdmin)
	adminGroup.Get("/dashboard-stats", h.DashboardStats)
}

// DashboardStats aggregates the overview numbers: all-time and last-30-day
// completed donation totals plus media and user counts.
func (h *DashboardHandler) DashboardStats(c fiber.Ctx) error {
	ctx := c.Context()

	totalDonations, err := h.donationService.CompletedTotal(ctx, time.Time{})
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	recentDonations, err := h.donationService.CompletedTotal(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	mediaCount, err := h.mediaService.Count(ctx)
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	userCount, err := h.userService.Count(ctx)
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"totalDonations":  totalDonations,
		"recentDonations": recentDonations,
		"mediaCount":      mediaCount,
		"userCount":       userCount,
	})
}
