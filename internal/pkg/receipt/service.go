// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/pkg/currency"
)

// Service renders PDF receipts for recorded orders
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Generate renders a PDF receipt for a recorded order. Amounts are
// formatted with the locale conventions of the order's currency region.
func (s *Service) Generate(record *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(s.buildData(record))
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

func (s *Service) buildData(record *order.Order) receiptData {
	info := currency.ResolveCode(record.Currency)

	data := receiptData{
		CompanyName: s.config.App.CompanyName,
		OrderNumber: record.OrderNumber,
		OrderDate:   record.CreatedAt.Format("January 2, 2006"),
		Payment:     record.PaymentMethod,
		Delivery:    record.DeliveryMethod,
		Address:     record.DeliveryAddress,
		Subtotal:    currency.Format(record.Subtotal, info),
		GeneratedAt: time.Now().UTC().Format(time.RFC1123),
	}

	for _, item := range record.Items {
		lineInfo := currency.ResolveCode(item.Currency)
		data.Lines = append(data.Lines, receiptLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: currency.Format(item.UnitPrice, lineInfo),
			Total:     currency.Format(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))), lineInfo),
		})
	}

	return data
}

func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// receiptData is the data passed to the receipt template
type receiptData struct {
	CompanyName string
	OrderNumber string
	OrderDate   string
	Payment     string
	Delivery    string
	Address     string
	Subtotal    string
	GeneratedAt string
	Lines       []receiptLine
}

type receiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.OrderNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 16px; margin-bottom: 24px; }
        .title { font-size: 24px; font-weight: bold; color: #16a34a; }
        .meta td { padding: 4px 12px 4px 0; }
        .meta .label { font-weight: bold; }
        .items { width: 100%; border-collapse: collapse; margin: 24px 0; }
        .items th, .items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items th { background-color: #f8f9fa; }
        .items .num { text-align: right; width: 90px; }
        .total-row td { font-size: 16px; font-weight: bold; }
        .footer { margin-top: 40px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.CompanyName}}</h1>
        <div class="title">ORDER RECEIPT</div>
    </div>

    <table class="meta">
        <tr><td class="label">Order #:</td><td>{{.OrderNumber}}</td></tr>
        <tr><td class="label">Order Date:</td><td>{{.OrderDate}}</td></tr>
        <tr><td class="label">Payment:</td><td>{{.Payment}}</td></tr>
        <tr><td class="label">Delivery:</td><td>{{.Delivery}}</td></tr>
        {{if .Address}}<tr><td class="label">Address:</td><td>{{.Address}}</td></tr>{{end}}
    </table>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Unit Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.Total}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td colspan="3">Subtotal</td>
                <td class="num">{{.Subtotal}}</td>
            </tr>
        </tbody>
    </table>

    <div class="footer">
        <p>Thank you for your order!</p>
        <p>Generated {{.GeneratedAt}}</p>
    </div>
</body>
</html>
`
