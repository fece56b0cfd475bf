// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	drafts := checkout.NewRedisDraftStore(redisClient, cfg.Checkout.DraftTTL)
	gateway := payment.NewRazorpayClient(cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, drafts, gateway, cfg),
		config:          cfg,
	}
}

// SaveAddress handles POST /checkout/address
func (h *CheckoutHandler) SaveAddress(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, err := h.checkoutService.SaveAddress(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping address saved",
		"data":    draft,
	})
}

// SelectPayment handles POST /checkout/payment
func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	selection, err := h.checkoutService.SelectPayment(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if selection.Order != nil {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"data":    selection,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment initiated",
		"data":    selection,
	})
}

// ConfirmMockPayment handles POST /checkout/gpay/confirm
func (h *CheckoutHandler) ConfirmMockPayment(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	placed, err := h.checkoutService.ConfirmMockPayment(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// GatewayCallback handles POST /checkout/razorpay/callback
func (h *CheckoutHandler) GatewayCallback(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req checkout.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.checkoutService.HandleGatewayCallback(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}
