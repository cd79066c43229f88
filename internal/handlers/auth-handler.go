package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/service"
)

var (
	// Counter for total login attempts
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	// Counter for registrations
	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)
)

type AuthHandler struct {
	userService *service.UserService
	jwtService  *service.JWTService
}

func NewAuthHandler(userService *service.UserService, jwtService *service.JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)
}

func (h *AuthHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}

// Login authenticates an admin account and hands out a bearer token. Unknown
// usernames and wrong passwords get the identical response; correct non-admin
// credentials are refused outright.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&loginRequest); err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if loginRequest.Username == "" || loginRequest.Password == "" {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing username or password",
		})
	}

	user, err := h.userService.Login(c.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserLocked) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
			})
		}
		log.Printf("Error login with username: %s : %s", loginRequest.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	if user.Role != models.RoleAdmin {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied: Admins only",
		})
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		log.Printf("Error generating token for %s: %s", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
		})
	}

	loginAttempts.WithLabelValues("success").Inc()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var registerRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.Bind().Body(&registerRequest); err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if registerRequest.Username == "" || registerRequest.Password == "" {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	_, err := h.userService.Register(c.Context(), registerRequest.Username, registerRequest.Password, registerRequest.Role)
	if err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
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
			log.Printf("Register error: %s", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Server error",
			})
		}
	}

	registrationAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin user created successfully",
	})
}
