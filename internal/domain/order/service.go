// internal/domain/order/service.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AdminOrderListRequest represents the staff order list query
type AdminOrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"q"`
}

// AdminOrderUpdateRequest overwrites order header fields
type AdminOrderUpdateRequest struct {
	CustomerName  *string        `json:"customer_name"`
	AddressLine1  *string        `json:"address_line1"`
	AddressLine2  *string        `json:"address_line2"`
	City          *string        `json:"city"`
	State         *string        `json:"state"`
	Pincode       *string        `json:"pincode"`
	PhoneNumber   *string        `json:"phone_number"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
	Status        *OrderStatus   `json:"status"`
}

// AdminItemsUpdateRequest maps order item IDs to their new quantities.
// A quantity of zero or less removes the item; unknown IDs are ignored.
type AdminItemsUpdateRequest struct {
	Quantities map[uint]int `json:"quantities" binding:"required"`
}

// OrderListResponse represents orders with pagination
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// DashboardStats is the staff dashboard summary
type DashboardStats struct {
	TotalOrders   int64 `json:"total_orders"`
	PaidOrders    int64 `json:"paid_orders"`
	TodaysRevenue int64 `json:"todays_revenue"` // paise, paid orders created today
}

// GetUserOrders returns the user's orders newest first, with items
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns a single order scoped to its owner
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var ord Order
	result := s.db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &ord, nil
}

// GetOrderByID returns a single order without an owner scope (staff use)
func (s *Service) GetOrderByID(orderID uint) (*Order, error) {
	var ord Order
	result := s.db.Preload("Items").Preload("Items.Product").
		Where("id = ?", orderID).
		First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &ord, nil
}

// AdminListOrders returns all orders newest first. The free-text search
// matches order ID, customer name or phone number, case-insensitively.
func (s *Service) AdminListOrders(req *AdminOrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{}).Preload("Items")

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"CAST(id AS TEXT) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(phone_number) LIKE ?",
			search, search, search,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &OrderListResponse{Orders: orders, Pagination: pagination}, nil
}

// AdminUpdateOrder overwrites order header fields. Only enum domains are
// validated; staff edits are otherwise trusted.
func (s *Service) AdminUpdateOrder(orderID uint, req *AdminOrderUpdateRequest) (*Order, error) {
	var ord Order
	result := s.db.Where("id = ?", orderID).First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", result.Error)
	}

	updates := make(map[string]interface{})

	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.AddressLine1 != nil {
		updates["address_line1"] = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		updates["address_line2"] = *req.AddressLine2
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Pincode != nil {
		updates["pincode"] = *req.Pincode
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.PaymentMethod != nil {
		if !ValidPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("invalid payment method: %s", *req.PaymentMethod)
		}
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid order status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&ord).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	return s.GetOrderByID(orderID)
}

// AdminUpdateItems applies quantity edits to an order's items and
// recomputes the order total from the snapshotted unit prices, all in
// one transaction. Quantities of zero or less delete the item; IDs not
// belonging to the order are ignored.
func (s *Service) AdminUpdateItems(orderID uint, req *AdminItemsUpdateRequest) (*Order, error) {
	var ord Order
	result := s.db.Where("id = ?", orderID).First(&ord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", result.Error)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []OrderItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}

		for _, item := range items {
			qty, ok := req.Quantities[item.ID]
			if !ok {
				continue
			}
			if qty <= 0 {
				if err := tx.Delete(&OrderItem{}, item.ID).Error; err != nil {
					return fmt.Errorf("failed to delete order item: %w", err)
				}
				continue
			}
			if err := tx.Model(&OrderItem{}).Where("id = ?", item.ID).
				Update("quantity", qty).Error; err != nil {
				return fmt.Errorf("failed to update order item: %w", err)
			}
		}

		var total int64
		if err := tx.Model(&OrderItem{}).
			Where("order_id = ?", orderID).
			Select("COALESCE(SUM(quantity * price), 0)").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("failed to recompute order total: %w", err)
		}

		if err := tx.Model(&Order{}).Where("id = ?", orderID).
			Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByID(orderID)
}

// AdminDeleteOrder hard deletes an order and its items
func (s *Service) AdminDeleteOrder(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		result := tx.Delete(&Order{}, orderID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order not found")
		}
		return nil
	})
}

// GetDashboardStats returns the staff dashboard summary
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	if err := s.db.Model(&Order{}).
		Where("status = ?", StatusPaid).
		Count(&stats.PaidOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count paid orders: %w", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.db.Model(&Order{}).
		Where("status = ? AND created_at >= ?", StatusPaid, startOfDay).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TodaysRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}

	return stats, nil
}
