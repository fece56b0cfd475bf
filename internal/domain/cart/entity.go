// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// CartItem represents a line in a user's cart. Unit price is not stored:
// totals always follow the current product price.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product_cart" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_user_product_cart" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
}

// TableName overrides
func (CartItem) TableName() string { return "cart_items" }

// LineTotal computes quantity times the current product price
func (i *CartItem) LineTotal() int64 {
	return int64(i.Quantity) * i.Product.Price
}

// Cart is the assembled view of a user's cart
type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     int64      `json:"total"` // paise
}
