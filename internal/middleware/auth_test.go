package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"clinic-server/internal/config"
	"clinic-server/internal/models"
	"clinic-server/internal/utils"
)

func authTestRouter(cfg *config.Config, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func issueTokens(t *testing.T, cfg *config.Config, role models.Role) (string, string) {
	t.Helper()
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: role}
	access, refresh, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("generating tokens: %v", err)
	}
	return access, refresh
}

func middlewareConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "access-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
	}
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	cfg := middlewareConfig()
	access, _ := issueTokens(t, cfg, models.RoleDoctor)

	rec := doRequest(authTestRouter(cfg), access)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	cfg := middlewareConfig()
	_, refresh := issueTokens(t, cfg, models.RoleDoctor)

	// Refresh tokens are only good for the refresh endpoint, even when
	// signed with the same secret.
	rec := doRequest(authTestRouter(cfg), refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	cfg := middlewareConfig()
	router := authTestRouter(cfg)

	if rec := doRequest(router, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a non-bearer header, got %d", rec.Code)
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := middlewareConfig()
	router := authTestRouter(cfg, models.RoleAdmin, models.RoleRegistrar)

	adminToken, _ := issueTokens(t, cfg, models.RoleAdmin)
	if rec := doRequest(router, adminToken); rec.Code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", rec.Code)
	}

	patientToken, _ := issueTokens(t, cfg, models.RolePatient)
	if rec := doRequest(router, patientToken); rec.Code != http.StatusForbidden {
		t.Fatalf("patient should be forbidden, got %d", rec.Code)
	}
}
