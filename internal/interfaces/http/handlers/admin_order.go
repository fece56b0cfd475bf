// internal/interfaces/http/handlers/admin_order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// AdminOrderHandler handles staff order management endpoints
type AdminOrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewAdminOrderHandler creates a new admin order handler
func NewAdminOrderHandler(db *gorm.DB, cfg *config.Config) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderService: order.NewService(db, cfg),
		config:       cfg,
	}
}

// ListOrders handles GET /admin/orders
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	var req order.AdminOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.orderService.AdminListOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// GetOrder handles GET /admin/orders/:id
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ord, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// UpdateOrder handles PUT /admin/orders/:id
func (h *AdminOrderHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req order.AdminOrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.orderService.AdminUpdateOrder(orderID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"data":    ord,
	})
}

// UpdateOrderItems handles PUT /admin/orders/:id/items
func (h *AdminOrderHandler) UpdateOrderItems(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req order.AdminItemsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.orderService.AdminUpdateItems(orderID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order items updated successfully",
		"data":    ord,
	})
}

// DeleteOrder handles DELETE /admin/orders/:id
func (h *AdminOrderHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.AdminDeleteOrder(orderID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminOrderHandler) Dashboard(c *gin.Context) {
	stats, err := h.orderService.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve dashboard stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard stats retrieved successfully",
		"data":    stats,
	})
}
