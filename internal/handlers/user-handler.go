package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/middleware"
	"github.com/asre459/menna/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	adminGroup := app.Group("/api/admin", requireAdmin)
	adminGroup.Post("/users", h.CreateUser)
	adminGroup.Get("/users", h.ListUsers)
	adminGroup.Delete("/users/:id", h.DeleteUser)
}

func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var userRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.Bind().Body(&userRequest); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if userRequest.Username == "" || userRequest.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	user, err := h.userService.Create(c.Context(), userRequest.Username, userRequest.Password, userRequest.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "User already exists",
			})
		case errors.Is(err, service.ErrInvalidRole):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		default:
			log.Printf("Error creating user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
	}

	// password hash is excluded by the model's json tags
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	page, limit := parsePagination(c)

	users, total, err := h.userService.List(c.Context(), page, limit)
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"pages": totalPages(total, limit),
	})
}

// DeleteUser removes an account. Deleting yourself or the last remaining
// admin is refused.
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No token, authorization denied",
		})
	}

	if err := h.userService.Delete(c.Context(), claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete), errors.Is(err, service.ErrLastAdmin):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		default:
			log.Printf("Error deleting user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
