package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/service"
)

type DonationHandler struct {
	donationService *service.DonationService
}

func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

func (h *DonationHandler) RegisterRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	publicGroup := app.Group("/api/donations")
	publicGroup.Post("/", h.CreateDonation)
	publicGroup.Get("/:donationId", h.GetDonation)

	adminGroup := app.Group("/api/admin", requireAdmin)
	adminGroup.Get("/donations/summary", h.Summary)
	adminGroup.Get("/donations", h.ListDonations)
	adminGroup.Patch("/donations/:id", h.UpdateStatus)
	adminGroup.Get("/analytics/donations", h.Analytics)
}

// CreateDonation records a donor's submission in the pending state. Payment
// itself is settled by the provider; only the reference comes back here.
func (h *DonationHandler) CreateDonation(c fiber.Ctx) error {
	var donationRequest struct {
		Name   string                `json:"name"`
		Amount float64               `json:"amount"`
		Email  string                `json:"email"`
		Phone  string                `json:"phone"`
		Method string                `json:"method"`
		Items  []models.DonationItem `json:"items"`
	}

	if err := c.Bind().Body(&donationRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if donationRequest.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Amount must be greater than zero",
		})
	}
	if donationRequest.Method == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Payment method is required",
		})
	}

	donation := &models.Donation{
		Name:   donationRequest.Name,
		Amount: donationRequest.Amount,
		Email:  donationRequest.Email,
		Phone:  donationRequest.Phone,
		Method: donationRequest.Method,
		Items:  donationRequest.Items,
	}

	if err := h.donationService.Create(c.Context(), donation); err != nil {
		log.Printf("Error creating donation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(donation)
}

func (h *DonationHandler) GetDonation(c fiber.Ctx) error {
	donation, err := h.donationService.FindByDonationID(c.Context(), c.Params("donationId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Donation not found",
			})
		}
		log.Printf("Error fetching donation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"donationId": donation.DonationID,
		"status":     donation.Status,
		"amount":     donation.Amount,
		"createdAt":  donation.CreatedAt,
	})
}

// ListDonations supports an optional status filter plus page/limit pagination.
func (h *DonationHandler) ListDonations(c fiber.Ctx) error {
	page, limit := parsePagination(c)
	status := c.Query("status")

	donations, total, err := h.donationService.List(c.Context(), status, page, limit)
	if err != nil {
		log.Printf("Error fetching donations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"donations": donations,
		"total":     total,
		"page":      page,
		"pages":     totalPages(total, limit),
	})
}

func (h *DonationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Donation not found",
		})
	}

	var statusRequest struct {
		Status string `json:"status"`
	}
	if err := c.Bind().Body(&statusRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	donation, err := h.donationService.UpdateStatus(c.Context(), id, statusRequest.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Donation not found",
			})
		default:
			log.Printf("Error updating donation: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
	}

	return c.JSON(donation)
}

func (h *DonationHandler) Summary(c fiber.Ctx) error {
	summary, err := h.donationService.Summary(c.Context())
	if err != nil {
		log.Printf("Error fetching donation summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(summary)
}

func (h *DonationHandler) Analytics(c fiber.Ctx) error {
	days := service.AnalyticsPeriodDays(c.Query("period", "30d"))

	analytics, err := h.donationService.Analytics(c.Context(), days)
	if err != nil {
		log.Printf("Error fetching donation analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(analytics)
}
