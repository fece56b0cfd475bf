package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
}

func newAuthRouter(cfg *config.Config, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/")
	group.Use(AuthMiddleware(cfg))
	if adminOnly {
		group.Use(AdminMiddleware())
	}
	group.GET("/secure", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	jwtManager := auth.NewJWTManager(cfg)
	router := newAuthRouter(cfg, false)

	tests := []struct {
		name       string
		authHeader func(t *testing.T) string
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: func(t *testing.T) string { return "Bearer not.a.token" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "refresh token on an access route",
			authHeader: func(t *testing.T) string {
				token, err := jwtManager.GenerateRefreshToken(1, "asha@example.com")
				if err != nil {
					t.Fatalf("GenerateRefreshToken() error = %v", err)
				}
				return "Bearer " + token
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid access token",
			authHeader: func(t *testing.T) string {
				token, err := jwtManager.GenerateAccessToken(1, "asha@example.com", false)
				if err != nil {
					t.Fatalf("GenerateAccessToken() error = %v", err)
				}
				return "Bearer " + token
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if header := tt.authHeader(t); header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	cfg := testConfig()
	jwtManager := auth.NewJWTManager(cfg)
	router := newAuthRouter(cfg, true)

	t.Run("non-admin is forbidden", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(1, "asha@example.com", false)
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(2, "staff@example.com", true)
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	jwtManager := auth.NewJWTManager(cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalAuthMiddleware(cfg))
	router.GET("/browse", func(c *gin.Context) {
		if userID, ok := GetUserIDFromContext(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})

	t.Run("anonymous request passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/browse", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("invalid token still passes as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/browse", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("valid token attaches the user", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(7, "asha@example.com", false)
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/browse", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}
