// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(ord *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%05d", ord.ID),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
		Order:         ord,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"rupees": func(paise int64) string {
			return fmt.Sprintf("₹%.2f", float64(paise)/100)
		},
		"lineTotal": func(item order.OrderItem) string {
			return fmt.Sprintf("₹%.2f", float64(item.LineTotal())/100)
		},
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string       `json:"invoice_number"`
	InvoiceDate   string       `json:"invoice_date"`
	StoreName     string       `json:"store_name"`
	Order         *order.Order `json:"order"`
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .num { text-align: right; width: 90px; }
        .totals { float: right; font-size: 18px; font-weight: bold; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee;
                  text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="invoice-title">{{.StoreName}} — INVOICE</div>
        <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
        <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
        <p><strong>Order #:</strong> {{.Order.ID}}</p>
        <p><strong>Order Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
        <p><strong>Status:</strong> {{.Order.Status}} ({{.Order.PaymentMethod}})</p>
    </div>

    <div class="section-title">Ship To:</div>
    <p><strong>{{.Order.ShippingAddress.CustomerName}}</strong></p>
    <p>{{.Order.ShippingAddress.AddressLine1}}</p>
    {{if .Order.ShippingAddress.AddressLine2}}<p>{{.Order.ShippingAddress.AddressLine2}}</p>{{end}}
    <p>{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.Pincode}}</p>
    <p>Phone: {{.Order.ShippingAddress.PhoneNumber}}</p>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Product.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{rupees .Price}}</td>
                <td class="num">{{lineTotal .}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">Total: {{rupees .Order.TotalAmount}}</div>
    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your business!</p>
    </div>
</body>
</html>
`
