package service

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/asre459/menna/internal/models"
)

func testUser(role string) *models.User {
	return &models.User{
		ID:       bson.NewObjectID(),
		Username: "mesfin",
		Role:     role,
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	jwtService := NewJWTService("test-secret", 9*24*time.Hour)
	user := testUser(models.RoleAdmin)

	token, err := jwtService.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jwtService.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.UserID != user.ID.Hex() {
		t.Errorf("Expected user id %s, got %s", user.ID.Hex(), claims.UserID)
	}
	if claims.Username != "mesfin" {
		t.Errorf("Expected username mesfin, got %s", claims.Username)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Expected role admin, got %s", claims.Role)
	}

	expiry := claims.ExpiresAt.Time
	wantExpiry := time.Now().Add(9 * 24 * time.Hour)
	if expiry.Before(wantExpiry.Add(-time.Minute)) || expiry.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("Expected expiry around %v, got %v", wantExpiry, expiry)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)

	expiredService := NewJWTService("test-secret", -time.Hour)
	expiredToken, err := expiredService.GenerateToken(testUser(models.RoleAdmin))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	otherService := NewJWTService("other-secret", time.Hour)
	foreignToken, err := otherService.GenerateToken(testUser(models.RoleAdmin))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.token"},
		{"expired", expiredToken},
		{"wrong secret", foreignToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := jwtService.VerifyToken(tc.token); err == nil {
				t.Errorf("Expected verification of %s token to fail", tc.name)
			}
		})
	}
}

func TestEditorRoleSurvivesRoundtrip(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := jwtService.GenerateToken(testUser(models.RoleEditor))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jwtService.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != models.RoleEditor {
		t.Errorf("Expected role editor, got %s", claims.Role)
	}
}
