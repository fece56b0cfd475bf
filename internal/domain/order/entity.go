// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	MethodCOD        PaymentMethod = "COD"
	MethodGPay       PaymentMethod = "GPAY"
	MethodNetBanking PaymentMethod = "NETBANKING"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCOD, MethodGPay, MethodNetBanking:
		return true
	}
	return false
}

// ShippingAddress is the delivery address captured at checkout
type ShippingAddress struct {
	CustomerName string `gorm:"not null;size:255" json:"customer_name"`
	AddressLine1 string `gorm:"not null;size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"not null;size:100" json:"city"`
	State        string `gorm:"not null;size:100" json:"state"`
	Pincode      string `gorm:"not null;size:20" json:"pincode"`
	PhoneNumber  string `gorm:"not null;size:20" json:"phone_number"`
}

// Order represents a placed order. TotalAmount is frozen at creation and
// only changes when staff edit the order's items.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	PaymentMethod PaymentMethod `gorm:"not null;size:20" json:"payment_method"`
	Status        OrderStatus   `gorm:"not null;size:20;default:'Pending';index" json:"status"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"` // paise

	ShippingAddress ShippingAddress `gorm:"embedded" json:"shipping_address"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// OrderItem is a line of a placed order. Price is the unit price in
// paise snapshotted at order creation; later product edits do not touch it.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // unit price snapshot, paise
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// LineTotal returns quantity times the snapshotted unit price
func (i *OrderItem) LineTotal() int64 {
	return int64(i.Quantity) * i.Price
}
