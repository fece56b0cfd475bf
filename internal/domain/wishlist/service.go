// internal/domain/wishlist/service.go
package wishlist

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ToggleResult reports which way a toggle went
type ToggleResult struct {
	ProductID uint `json:"product_id"`
	Added     bool `json:"added"`
}

// Toggle adds the product to the wishlist when absent and removes it
// when present.
func (s *Service) Toggle(userID, productID uint) (*ToggleResult, error) {
	var prod product.Product
	if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	res := &ToggleResult{ProductID: productID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&WishlistItem{})
		if result.Error != nil {
			return fmt.Errorf("failed to toggle wishlist item: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			res.Added = false
			return nil
		}

		item := WishlistItem{UserID: userID, ProductID: productID}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to add wishlist item: %w", err)
		}
		res.Added = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// GetWishlist returns the user's saved products, newest first
func (s *Service) GetWishlist(userID uint) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	return items, nil
}
