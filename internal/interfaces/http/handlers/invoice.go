// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// InvoiceHandler handles staff invoice downloads
type InvoiceHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: order.NewService(db, cfg),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// GenerateInvoice handles GET /admin/orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
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

	pdfBuffer, err := h.pdfService.GenerateInvoice(ord)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", ord.ID))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
