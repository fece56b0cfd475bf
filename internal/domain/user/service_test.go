package user

import (
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
}

func TestService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	t.Run("creates the account and issues tokens", func(t *testing.T) {
		resp, err := service.Register(&RegisterRequest{
			Email:    "Asha@Example.com",
			Password: "Sunrise42",
			Name:     "Asha Rao",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.User.Email != "asha@example.com" {
			t.Errorf("expected lowercased email, got %q", resp.User.Email)
		}
		if resp.User.Password == "Sunrise42" {
			t.Error("expected password to be hashed")
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("expected both tokens issued")
		}
		if resp.User.IsAdmin {
			t.Error("expected new accounts to not be admin")
		}
	})

	t.Run("rejects duplicate email regardless of case", func(t *testing.T) {
		if _, err := service.Register(&RegisterRequest{
			Email:    "ASHA@example.com",
			Password: "Sunrise42",
			Name:     "Imposter",
		}); err == nil {
			t.Error("expected error for duplicate email")
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		if _, err := service.Register(&RegisterRequest{
			Email:    "weak@example.com",
			Password: "short",
			Name:     "Weak",
		}); err == nil {
			t.Error("expected error for weak password")
		}
	})
}

func TestService_Login(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	if _, err := service.Register(&RegisterRequest{
		Email:    "asha@example.com",
		Password: "Sunrise42",
		Name:     "Asha Rao",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := service.Login(&LoginRequest{Email: "asha@example.com", Password: "Sunrise42"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.User.LastLoginAt == nil {
			t.Error("expected last login timestamp set")
		}
	})

	t.Run("wrong password and unknown email produce the same error", func(t *testing.T) {
		_, badPass := service.Login(&LoginRequest{Email: "asha@example.com", Password: "Wrong1234"})
		_, badEmail := service.Login(&LoginRequest{Email: "nobody@example.com", Password: "Sunrise42"})
		if badPass == nil || badEmail == nil {
			t.Fatal("expected both logins to fail")
		}
		if badPass.Error() != badEmail.Error() {
			t.Errorf("expected identical errors, got %q and %q", badPass, badEmail)
		}
	})

	t.Run("deactivated accounts cannot log in", func(t *testing.T) {
		db.Model(&User{}).Where("email = ?", "asha@example.com").Update("is_active", false)
		if _, err := service.Login(&LoginRequest{Email: "asha@example.com", Password: "Sunrise42"}); err == nil {
			t.Error("expected error for deactivated account")
		}
	})
}

func TestService_RefreshToken(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	resp, err := service.Register(&RegisterRequest{
		Email:    "asha@example.com",
		Password: "Sunrise42",
		Name:     "Asha Rao",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		refreshed, err := service.RefreshToken(&RefreshRequest{RefreshToken: resp.RefreshToken})
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}
		if refreshed.AccessToken == "" {
			t.Error("expected a new access token")
		}
	})

	t.Run("access tokens are not accepted as refresh tokens", func(t *testing.T) {
		if _, err := service.RefreshToken(&RefreshRequest{RefreshToken: resp.AccessToken}); err == nil {
			t.Error("expected error for access token on the refresh path")
		}
	})
}

func TestService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	resp, err := service.Register(&RegisterRequest{
		Email:    "asha@example.com",
		Password: "Sunrise42",
		Name:     "Asha Rao",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	name := "Asha R."
	phone := "9876543210"
	updated, err := service.UpdateProfile(resp.User.ID, &UpdateProfileRequest{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != "Asha R." || updated.Phone != "9876543210" {
		t.Errorf("expected updated profile, got %q %q", updated.Name, updated.Phone)
	}

	if _, err := service.GetProfile(999); err == nil {
		t.Error("expected error for missing user")
	}
}
