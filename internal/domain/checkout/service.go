// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gateway is the payment gateway surface checkout needs
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, receipt string) (*payment.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Service drives the checkout state machine: address, payment selection,
// then order placement.
type Service struct {
	db      *gorm.DB
	drafts  DraftStore
	gateway Gateway
	config  *config.Config
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, drafts DraftStore, gateway Gateway, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		drafts:  drafts,
		gateway: gateway,
		config:  cfg,
	}
}

// ErrCartEmpty is returned when checkout is attempted with no cart lines
var ErrCartEmpty = fmt.Errorf("cart is empty")

// AddressRequest captures the shipping address step
type AddressRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
}

// PaymentRequest selects a payment method for the drafted checkout
type PaymentRequest struct {
	Method order.PaymentMethod `json:"method" binding:"required"`
}

// PaymentSelection is the outcome of the payment step. Exactly one of
// Order or Pending is set.
type PaymentSelection struct {
	Order   *order.Order    `json:"order,omitempty"`
	Pending *PendingPayment `json:"pending,omitempty"`
}

// PendingPayment tells the client how to complete an unfinished payment
type PendingPayment struct {
	Method         order.PaymentMethod `json:"method"`
	Amount         int64               `json:"amount"` // paise
	GatewayKeyID   string              `json:"gateway_key_id,omitempty"`
	GatewayOrderID string              `json:"gateway_order_id,omitempty"`
}

// CallbackRequest is the gateway's payment confirmation payload
type CallbackRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature        string `json:"razorpay_signature" binding:"required"`
}

// SaveAddress stores the shipping address draft. Rejected when the cart
// is empty.
func (s *Service) SaveAddress(ctx context.Context, userID uint, req *AddressRequest) (*Draft, error) {
	total, count, err := s.cartTotal(s.db, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 || total <= 0 {
		return nil, ErrCartEmpty
	}

	draft := &Draft{
		UserID:       userID,
		CustomerName: req.CustomerName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		PhoneNumber:  req.PhoneNumber,
		SavedAt:      time.Now(),
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// SelectPayment dispatches on the chosen payment method. COD places the
// order immediately; GPAY and NETBANKING return a pending payload.
func (s *Service) SelectPayment(ctx context.Context, userID uint, req *PaymentRequest) (*PaymentSelection, error) {
	if !order.ValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("invalid payment method: %s", req.Method)
	}

	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, count, err := s.cartTotal(s.db, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 || total <= 0 {
		return nil, ErrCartEmpty
	}

	switch req.Method {
	case order.MethodCOD:
		ord, err := s.placeOrder(ctx, userID, draft, order.MethodCOD, order.StatusPending, "")
		if err != nil {
			return nil, err
		}
		return &PaymentSelection{Order: ord}, nil

	case order.MethodGPay:
		// Self-attested UPI payment: the client confirms separately.
		return &PaymentSelection{Pending: &PendingPayment{
			Method: order.MethodGPay,
			Amount: total,
		}}, nil

	case order.MethodNetBanking:
		pending, err := s.initiateGatewayPayment(ctx, userID, total)
		if err != nil {
			return nil, err
		}
		return &PaymentSelection{Pending: pending}, nil
	}

	return nil, fmt.Errorf("invalid payment method: %s", req.Method)
}

// ConfirmMockPayment completes the GPAY path on the client's word and
// places the order as paid. There is deliberately no server-side
// verification on this path.
func (s *Service) ConfirmMockPayment(ctx context.Context, userID uint) (*order.Order, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.placeOrder(ctx, userID, draft, order.MethodGPay, order.StatusPaid, "")
}

// HandleGatewayCallback verifies the gateway signature, then places the
// order as paid. Callbacks with bad signatures are rejected and the
// attempt is marked failed.
func (s *Service) HandleGatewayCallback(ctx context.Context, userID uint, req *CallbackRequest) (*order.Order, error) {
	var attempt payment.Attempt
	result := s.db.Where("gateway_order_id = ? AND user_id = ?", req.GatewayOrderID, userID).
		First(&attempt)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("unknown payment attempt")
		}
		return nil, fmt.Errorf("failed to load payment attempt: %w", result.Error)
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.db.Model(&attempt).Updates(map[string]interface{}{
			"status":         payment.AttemptFailed,
			"failure_reason": "signature verification failed",
		})
		logrus.WithFields(logrus.Fields{
			"user_id":          userID,
			"gateway_order_id": req.GatewayOrderID,
		}).Warn("Payment signature verification failed")
		return nil, fmt.Errorf("payment signature verification failed")
	}

	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ord, err := s.placeOrder(ctx, userID, draft, order.MethodNetBanking, order.StatusPaid, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&attempt).Updates(map[string]interface{}{
		"status":          payment.AttemptSucceeded,
		"gateway_payment": req.GatewayPaymentID,
	}).Error; err != nil {
		logrus.WithError(err).Warn("Failed to mark payment attempt succeeded")
	}

	return ord, nil
}

// initiateGatewayPayment creates a gateway order for the cart total and
// records the attempt.
func (s *Service) initiateGatewayPayment(ctx context.Context, userID uint, total int64) (*PendingPayment, error) {
	receipt := fmt.Sprintf("user-%d", userID)
	gatewayOrder, err := s.gateway.CreateOrder(ctx, total, receipt)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	attempt := payment.Attempt{
		UserID:         userID,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         total,
		Status:         payment.AttemptCreated,
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment attempt: %w", err)
	}

	return &PendingPayment{
		Method:         order.MethodNetBanking,
		Amount:         total,
		GatewayKeyID:   s.gateway.KeyID(),
		GatewayOrderID: gatewayOrder.ID,
	}, nil
}

// placeOrder drains the cart into a new order in a single transaction.
// Cart rows are locked for the duration; unit prices are snapshotted
// from the products as they are now. A concurrent double submission
// finds an empty cart and fails.
func (s *Service) placeOrder(ctx context.Context, userID uint, draft *Draft, method order.PaymentMethod, status order.OrderStatus, gatewayOrderID string) (*order.Order, error) {
	var placed order.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []cart.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Product").
			Where("user_id = ?", userID).
			Order("id ASC").
			Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var total int64
		orderItems := make([]order.OrderItem, 0, len(items))
		for _, item := range items {
			total += int64(item.Quantity) * item.Product.Price
			orderItems = append(orderItems, order.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}
		if total <= 0 {
			return ErrCartEmpty
		}

		placed = order.Order{
			UserID:        userID,
			PaymentMethod: method,
			Status:        status,
			TotalAmount:   total,
			ShippingAddress: order.ShippingAddress{
				CustomerName: draft.CustomerName,
				AddressLine1: draft.AddressLine1,
				AddressLine2: draft.AddressLine2,
				City:         draft.City,
				State:        draft.State,
				Pincode:      draft.Pincode,
				PhoneNumber:  draft.PhoneNumber,
			},
		}
		if err := tx.Create(&placed).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = placed.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		placed.Items = orderItems

		if err := tx.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order exists either way; a stale draft only risks a rejected
	// re-checkout against an empty cart.
	if err := s.drafts.Delete(ctx, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to delete checkout draft")
	}

	return &placed, nil
}

// cartTotal sums the user's cart at current product prices
func (s *Service) cartTotal(db *gorm.DB, userID uint) (int64, int, error) {
	var items []cart.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load cart: %w", err)
	}

	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}

	return total, len(items), nil
}
