package invoicing

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Branding holds the seller identity printed on every invoice
type Branding struct {
	Name    string
	Address string
	GSTIN   string
	// GSTRate is the tax rate in percent included in prices (0 disables the row)
	GSTRate float64
	// Terms is the static terms text printed at the bottom
	Terms string
}

// inrPrinter groups digits the Indian way (1,00,000)
var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders a decimal amount as rupees with Indian digit grouping
func FormatINR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inrPrinter.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// TemplateFuncs is the shared func map for invoice and email templates
var TemplateFuncs = template.FuncMap{
	"money": FormatINR,
	"date": func(t time.Time) string {
		return t.Format("02 Jan 2006")
	},
	"datePtr": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
}

// invoiceData is the view model for the invoice template
type invoiceData struct {
	Brand     Branding
	Order     *order.Order
	Date      time.Time
	GSTAmount decimal.Decimal
	// Taxable is the total net of the included GST
	Taxable  decimal.Decimal
	ShowGST  bool
	Carrier  string
	Tracking string
}

// TemplateBuilder renders orders into printable invoice HTML
type TemplateBuilder struct {
	brand Branding
	tmpl  *template.Template
}

// NewTemplateBuilder creates a TemplateBuilder with the given branding
func NewTemplateBuilder(brand Branding) (*TemplateBuilder, error) {
	tmpl, err := template.New("invoice").Funcs(TemplateFuncs).Parse(invoiceTemplate)
	if err != nil {
		return nil, err
	}
	return &TemplateBuilder{brand: brand, tmpl: tmpl}, nil
}

// Build renders the invoice HTML for an order. The shipment carries the
// courier metadata printed in the dispatch block; nil is allowed before
// dispatch.
func (b *TemplateBuilder) Build(o *order.Order, s *order.Shipment, now time.Time) (string, error) {
	data := invoiceData{
		Brand: b.brand,
		Order: o,
		Date:  now,
	}
	if s != nil {
		data.Carrier = s.Carrier
		data.Tracking = s.TrackingID
	}

	// Prices are GST-inclusive; the tax rows break the total apart.
	if b.brand.GSTRate > 0 {
		rate := decimal.NewFromFloat(b.brand.GSTRate)
		divisor := decimal.NewFromInt(100).Add(rate)
		data.Taxable = o.Total.Mul(decimal.NewFromInt(100)).Div(divisor).Round(2)
		data.GSTAmount = o.Total.Sub(data.Taxable)
		data.ShowGST = true
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.Order.InvoiceNumber}}</title>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; font-size: 13px; color: #1a1a1a; margin: 0; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a1a1a; padding-bottom: 12px; }
  .brand h1 { margin: 0 0 4px 0; font-size: 22px; letter-spacing: 1px; }
  .brand p { margin: 0; color: #555; white-space: pre-line; }
  .meta { text-align: right; }
  .meta h2 { margin: 0 0 4px 0; font-size: 18px; }
  .parties { display: flex; justify-content: space-between; margin: 20px 0; }
  .party { width: 48%; }
  .party h3 { margin: 0 0 6px 0; font-size: 12px; text-transform: uppercase; color: #777; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 8px; }
  table.items th { text-align: left; border-bottom: 1px solid #1a1a1a; padding: 6px 4px; font-size: 12px; text-transform: uppercase; }
  table.items td { padding: 6px 4px; border-bottom: 1px solid #e0e0e0; }
  table.items .num { text-align: right; }
  .totals { width: 280px; margin-left: auto; margin-top: 12px; }
  .totals tr td { padding: 4px; }
  .totals .label { color: #555; }
  .totals .num { text-align: right; }
  .totals .grand td { border-top: 2px solid #1a1a1a; font-weight: bold; font-size: 15px; }
  .dispatch { margin-top: 16px; color: #555; }
  .terms { margin-top: 28px; padding-top: 10px; border-top: 1px solid #e0e0e0; color: #777; font-size: 11px; white-space: pre-line; }
</style>
</head>
<body>
<div class="header">
  <div class="brand">
    <h1>{{.Brand.Name}}</h1>
    <p>{{.Brand.Address}}</p>
    {{if .Brand.GSTIN}}<p>GSTIN: {{.Brand.GSTIN}}</p>{{end}}
  </div>
  <div class="meta">
    <h2>TAX INVOICE</h2>
    <p>Invoice No: <strong>{{.Order.InvoiceNumber}}</strong></p>
    <p>Order No: {{.Order.Number}}</p>
    <p>Date: {{date .Date}}</p>
  </div>
</div>

<div class="parties">
  <div class="party">
    <h3>Bill To</h3>
    <p><strong>{{.Order.CustomerName}}</strong><br>
    {{.Order.Email}}<br>
    {{.Order.ShippingAddress.Phone}}</p>
  </div>
  <div class="party">
    <h3>Ship To</h3>
    <p>{{.Order.ShippingAddress.Line1}}<br>
    {{if .Order.ShippingAddress.Line2}}{{.Order.ShippingAddress.Line2}}<br>{{end}}
    {{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.PostalCode}}<br>
    {{.Order.ShippingAddress.Country}}</p>
  </div>
</div>

<table class="items">
  <thead>
    <tr><th>Item</th><th>Size</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
    {{range .Order.Items}}
    <tr>
      <td>{{.Title}}</td>
      <td>{{.Size}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{money .UnitPrice}}</td>
      <td class="num">{{money .Subtotal}}</td>
    </tr>
    {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td class="label">Subtotal</td><td class="num">{{money .Order.Subtotal}}</td></tr>
  {{if .Order.Discount.IsPositive}}
  <tr><td class="label">Discount{{if .Order.CouponCode}} ({{.Order.CouponCode}}){{end}}</td><td class="num">-{{money .Order.Discount}}</td></tr>
  {{end}}
  {{if .ShowGST}}
  <tr><td class="label">Taxable Value</td><td class="num">{{money .Taxable}}</td></tr>
  <tr><td class="label">GST ({{.Brand.GSTRate}}%) incl.</td><td class="num">{{money .GSTAmount}}</td></tr>
  {{end}}
  <tr class="grand"><td>Grand Total</td><td class="num">{{money .Order.Total}}</td></tr>
</table>

{{if .Carrier}}
<div class="dispatch">
  <p>Shipped via {{.Carrier}}{{if .Tracking}} · Tracking ID {{.Tracking}}{{end}}</p>
</div>
{{end}}

{{if .Brand.Terms}}
<div class="terms">{{.Brand.Terms}}</div>
{{end}}
</body>
</html>`
