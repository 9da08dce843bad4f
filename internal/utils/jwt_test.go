package utils

import (
	"strings"
	"testing"

	"clinic-server/internal/config"
	"clinic-server/internal/models"
)

func tokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
	}
}

func tokenUser(role models.Role) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "doc@clinic.test",
		Role:      role,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := tokenConfig()
	access, refresh, err := GenerateTokens(tokenUser(models.RoleDoctor), cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	claims, err := ValidateToken(access, cfg.JWTSecret, TokenKindAccess)
	if err != nil {
		t.Fatalf("validating access token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != models.RoleDoctor {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := ValidateToken(refresh, cfg.JWTRefreshSecret, TokenKindRefresh); err != nil {
		t.Fatalf("validating refresh token: %v", err)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	cfg := tokenConfig()
	// Same secret for both kinds, so only the kind claim separates them.
	cfg.JWTRefreshSecret = cfg.JWTSecret

	access, refresh, err := GenerateTokens(tokenUser(models.RolePatient), cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}

	if _, err := ValidateToken(refresh, cfg.JWTSecret, TokenKindAccess); err == nil {
		t.Fatal("a refresh token must not pass as an access token")
	}
	if _, err := ValidateToken(access, cfg.JWTSecret, TokenKindRefresh); err == nil {
		t.Fatal("an access token must not pass as a refresh token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := tokenConfig()
	access, _, err := GenerateTokens(tokenUser(models.RoleAdmin), cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	if _, err := ValidateToken(access, "other-secret", TokenKindAccess); err == nil {
		t.Fatal("a token signed with a different secret must fail")
	}
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	cfg := tokenConfig()
	access, _, err := GenerateTokens(tokenUser(models.Role("superuser")), cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	_, err = ValidateToken(access, cfg.JWTSecret, TokenKindAccess)
	if err == nil || !strings.Contains(err.Error(), "unknown role") {
		t.Fatalf("expected an unknown role rejection, got %v", err)
	}
}
