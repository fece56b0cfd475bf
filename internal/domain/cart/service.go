// internal/domain/cart/service.go
package cart

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateQuantityRequest represents a quantity change for a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Add puts a product into the user's cart, or bumps its quantity by one
// when a line for it already exists.
func (s *Service) Add(userID, productID uint) (*CartItem, error) {
	var prod product.Product
	if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	var item CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item)
		switch {
		case result.Error == nil:
			item.Quantity++
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return fmt.Errorf("failed to increment cart item: %w", err)
			}
		case result.Error == gorm.ErrRecordNotFound:
			item = CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up cart item: %w", result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item.Product = prod
	return &item, nil
}

// BuyNow makes sure the product has a cart line so the user can jump
// straight to checkout. Unlike Add, an existing line keeps its quantity.
func (s *Service) BuyNow(userID, productID uint) (*CartItem, error) {
	var prod product.Product
	if err := s.db.Where("id = ?", productID).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	var item CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item)
		switch {
		case result.Error == nil:
			return nil
		case result.Error == gorm.ErrRecordNotFound:
			item = CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("failed to look up cart item: %w", result.Error)
		}
	})
	if err != nil {
		return nil, err
	}

	item.Product = prod
	return &item, nil
}

// SetQuantity sets the quantity of a cart line owned by the user.
// Quantities below one are clamped to one.
func (s *Service) SetQuantity(userID, itemID uint, quantity int) (*CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var item CartItem
	result := s.db.Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart item not found")
		}
		return nil, fmt.Errorf("failed to find cart item: %w", result.Error)
	}

	if err := s.db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	item.Quantity = quantity

	return &item, nil
}

// Remove deletes a cart line owned by the user
func (s *Service) Remove(userID, itemID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

// GetCart assembles the user's cart with line totals priced at the
// current product price.
func (s *Service) GetCart(userID uint) (*Cart, error) {
	var items []CartItem
	if err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	cart := &Cart{Items: items}
	for _, item := range items {
		cart.ItemCount += item.Quantity
		cart.Total += item.LineTotal()
	}

	return cart, nil
}

// Clear removes all of the user's cart lines
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
