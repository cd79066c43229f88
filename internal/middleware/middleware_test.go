package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/service"
)

func newTestApp(t *testing.T, jwtService *service.JWTService) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/protected", func(c fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			t.Error("Expected claims in locals on guarded route")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"username": claims.Username})
	}, RequireRole(jwtService, models.RoleAdmin))
	return app
}

func tokenFor(t *testing.T, jwtService *service.JWTService, role string) string {
	t.Helper()

	token, err := jwtService.GenerateToken(&models.User{
		ID:       bson.NewObjectID(),
		Username: "tester",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestRequireRole(t *testing.T) {
	jwtService := service.NewJWTService("test-secret", time.Hour)
	app := newTestApp(t, jwtService)

	testCases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"editor role", "Bearer " + tokenFor(t, jwtService, models.RoleEditor), http.StatusForbidden},
		{"admin role", "Bearer " + tokenFor(t, jwtService, models.RoleAdmin), http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestRequireRoleRejectsExpiredToken(t *testing.T) {
	expired := service.NewJWTService("test-secret", -time.Hour)
	live := service.NewJWTService("test-secret", time.Hour)
	app := newTestApp(t, live)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, expired, models.RoleAdmin))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for expired token, got %d", resp.StatusCode)
	}
}
