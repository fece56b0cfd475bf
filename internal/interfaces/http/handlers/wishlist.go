// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(db),
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	items, err := h.wishlistService.GetWishlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    items,
	})
}

// Toggle handles POST /wishlist/toggle/:productId
func (h *WishlistHandler) Toggle(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	result, err := h.wishlistService.Toggle(userID, productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	message := "Item removed from wishlist"
	if result.Added {
		message = "Item added to wishlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    result,
	})
}
