// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// WishlistItem represents a product saved to a user's wishlist
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product_wishlist" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_user_product_wishlist" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
}

// TableName overrides
func (WishlistItem) TableName() string { return "wishlist_items" }
