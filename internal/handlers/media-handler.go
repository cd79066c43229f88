package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/service"
)

var mediaUploads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "media_upload_attempts_total",
		Help: "Total number of media upload attempts",
	},
	[]string{"status"},
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

func (h *MediaHandler) RegisterRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	adminGroup := app.Group("/api/admin", requireAdmin)
	adminGroup.Post("/media", h.UploadMedia)
	adminGroup.Get("/media", h.ListMedia)
	adminGroup.Delete("/media/:id", h.DeleteMedia)
}

// UploadMedia accepts a multipart form with title, description and file
// fields. Disallowed file types are rejected before anything is persisted.
func (h *MediaHandler) UploadMedia(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		mediaUploads.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	title := c.FormValue("title", "")
	description := c.FormValue("description", "")
	if title == "" {
		mediaUploads.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	media, err := h.mediaService.Upload(c.Context(), fileHeader, title, description)
	if err != nil {
		mediaUploads.WithLabelValues("failure").Inc()
		if errors.Is(err, service.ErrFileType) || errors.Is(err, service.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error uploading media: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	mediaUploads.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusCreated).JSON(media)
}

func (h *MediaHandler) ListMedia(c fiber.Ctx) error {
	page, limit := parsePagination(c)

	media, total, err := h.mediaService.List(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching media: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"media": media,
		"total": total,
		"page":  page,
		"pages": totalPages(total, limit),
	})
}

func (h *MediaHandler) DeleteMedia(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Media not found",
		})
	}

	if err := h.mediaService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Media not found",
			})
		}
		log.Printf("Error deleting media: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Media deleted successfully",
	})
}
