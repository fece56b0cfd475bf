// internal/domain/payment/entity.go
package payment

import "time"

// AttemptStatus tracks a gateway payment attempt
type AttemptStatus string

const (
	AttemptCreated   AttemptStatus = "created"
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
)

// Attempt records one round-trip with the payment gateway. The callback
// resolves the attempt by gateway order ID before an order exists.
type Attempt struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"not null;index" json:"user_id"`
	GatewayOrderID  string        `gorm:"not null;uniqueIndex;size:100" json:"gateway_order_id"`
	GatewayPayment  string        `gorm:"size:100" json:"gateway_payment_id"`
	Amount          int64         `gorm:"not null" json:"amount"` // paise
	Status          AttemptStatus `gorm:"not null;size:20;default:'created'" json:"status"`
	FailureReason   string        `gorm:"size:255" json:"failure_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName overrides
func (Attempt) TableName() string { return "payment_attempts" }
