// internal/domain/user/service.go
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(req.Email)

	var existing User
	if result := s.db.Where("email = ?", email).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	newUser := User{
		Email:    email,
		Password: hashed,
		Name:     req.Name,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(&newUser)
}

// Login authenticates a user. Invalid email and invalid password produce
// the same error.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	result := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	s.db.Model(&u).Update("last_login_at", now)
	u.LastLoginAt = &now

	return s.issueTokens(&u)
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *Service) RefreshToken(req *RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	var u User
	result := s.db.Where("id = ?", claims.UserID).First(&u)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return s.issueTokens(&u)
}

// GetProfile retrieves a user's profile
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", result.Error)
	}

	return &u, nil
}

// UpdateProfile updates a user's profile fields
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return u, nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
