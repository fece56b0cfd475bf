// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Category    string         `gorm:"not null;size:100;index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in paise
	Image       string         `gorm:"size:500" json:"image"`
	InStock     bool           `gorm:"not null" json:"in_stock"`
	Rating      float64        `gorm:"default:0" json:"rating"` // Average, 1 decimal
	RatingCount int            `gorm:"default:0" json:"rating_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Rating represents a single user's star rating for a product
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_user_rating" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_product_user_rating" json:"user_id"`
	Stars     int       `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Rating) TableName() string  { return "product_ratings" }

// GetFormattedPrice returns the price in rupees
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
