package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/infrastructure/invoicing"
)

// Rendered is a ready-to-send email body
type Rendered struct {
	Subject string
	HTML    string
}

// Templates renders the HTML bodies for every customer-facing email.
// Rendering is pure; nothing here touches the network.
type Templates struct {
	brandName string
	baseURL   string
	tmpl      *template.Template
}

// NewTemplates parses the email template set
func NewTemplates(brandName, baseURL string) (*Templates, error) {
	tmpl, err := template.New("mail").Funcs(invoicing.TemplateFuncs).Parse(mailTemplates)
	if err != nil {
		return nil, err
	}
	return &Templates{brandName: brandName, baseURL: baseURL, tmpl: tmpl}, nil
}

type mailData struct {
	Brand       string
	Order       *order.Order
	Shipment    *order.Shipment
	Name        string
	Link        string
	Code        string
	ExpiresIn   string
	BodyHTML    template.HTML
	PreviewText string
}

func (t *Templates) render(name string, data mailData) (string, error) {
	data.Brand = t.brandName
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OrderConfirmation is sent right after checkout
func (t *Templates) OrderConfirmation(o *order.Order) (*Rendered, error) {
	html, err := t.render("order_confirmation", mailData{Order: o})
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Subject: fmt.Sprintf("Order %s confirmed", o.Number),
		HTML:    html,
	}, nil
}

// Shipped is sent when the order is dispatched; the invoice PDF is attached
// by the caller.
func (t *Templates) Shipped(o *order.Order, s *order.Shipment) (*Rendered, error) {
	html, err := t.render("shipped", mailData{Order: o, Shipment: s})
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Subject: fmt.Sprintf("Order %s is on its way", o.Number),
		HTML:    html,
	}, nil
}

// OutForDelivery is sent when the courier is out for final delivery
func (t *Templates) OutForDelivery(o *order.Order, s *order.Shipment) (*Rendered, error) {
	html, err := t.render("out_for_delivery", mailData{Order: o, Shipment: s})
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Subject: fmt.Sprintf("Order %s arrives today", o.Number),
		HTML:    html,
	}, nil
}

// Delivered is sent after delivery with a link to the feedback form
func (t *Templates) Delivered(o *order.Order, feedbackToken string) (*Rendered, error) {
	link := fmt.Sprintf("%s/feedback/%s", t.baseURL, feedbackToken)
	html, err := t.render("delivered", mailData{Order: o, Link: link})
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Subject: fmt.Sprintf("Order %s delivered. How did we do?", o.Number),
		HTML:    html,
	}, nil
}

// PasswordReset carries the short-lived reset code
func (t *Templates) PasswordReset(name, code string, ttl time.Duration) (*Rendered, error) {
	html, err := t.render("password_reset", mailData{
		Name:      name,
		Code:      code,
		ExpiresIn: fmt.Sprintf("%d minutes", int(ttl.Minutes())),
	})
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Subject: "Your password reset code",
		HTML:    html,
	}, nil
}

// Broadcast wraps an admin-authored body in the standard shell. The body is
// trusted HTML written by staff, not user input.
func (t *Templates) Broadcast(subject, bodyHTML string) (*Rendered, error) {
	html, err := t.render("broadcast", mailData{BodyHTML: template.HTML(bodyHTML)})
	if err != nil {
		return nil, err
	}
	return &Rendered{Subject: subject, HTML: html}, nil
}

const mailTemplates = `
{{define "shell_top"}}<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:'Helvetica Neue',Arial,sans-serif;color:#1a1a1a;">
<div style="max-width:600px;margin:0 auto;background:#ffffff;">
<div style="padding:24px 32px;border-bottom:2px solid #1a1a1a;">
<h1 style="margin:0;font-size:20px;letter-spacing:2px;">{{.Brand}}</h1>
</div>
<div style="padding:24px 32px;">{{end}}

{{define "shell_bottom"}}</div>
<div style="padding:16px 32px;background:#f9f9f9;color:#999;font-size:12px;">
<p style="margin:0;">{{.Brand}} · This email was sent regarding your order.</p>
</div>
</div>
</body>
</html>{{end}}

{{define "order_summary"}}
<table style="width:100%;border-collapse:collapse;margin:16px 0;">
<tr>
<th style="text-align:left;padding:6px 4px;border-bottom:1px solid #1a1a1a;font-size:12px;">Item</th>
<th style="text-align:right;padding:6px 4px;border-bottom:1px solid #1a1a1a;font-size:12px;">Qty</th>
<th style="text-align:right;padding:6px 4px;border-bottom:1px solid #1a1a1a;font-size:12px;">Amount</th>
</tr>
{{range .Order.Items}}
<tr>
<td style="padding:6px 4px;border-bottom:1px solid #eee;">{{.Title}}{{if .Size}} ({{.Size}}){{end}}</td>
<td style="text-align:right;padding:6px 4px;border-bottom:1px solid #eee;">{{.Quantity}}</td>
<td style="text-align:right;padding:6px 4px;border-bottom:1px solid #eee;">{{money .Subtotal}}</td>
</tr>
{{end}}
{{if .Order.Discount.IsPositive}}
<tr><td colspan="2" style="text-align:right;padding:6px 4px;color:#555;">Discount</td>
<td style="text-align:right;padding:6px 4px;">-{{money .Order.Discount}}</td></tr>
{{end}}
<tr><td colspan="2" style="text-align:right;padding:6px 4px;font-weight:bold;">Total</td>
<td style="text-align:right;padding:6px 4px;font-weight:bold;">{{money .Order.Total}}</td></tr>
</table>
{{end}}

{{define "order_confirmation"}}{{template "shell_top" .}}
<h2 style="font-size:17px;">Thank you, {{.Order.CustomerName}}!</h2>
<p>Your order <strong>{{.Order.Number}}</strong> has been placed.</p>
{{template "order_summary" .}}
<p style="color:#555;">We will email you again once it ships.</p>
{{template "shell_bottom" .}}{{end}}

{{define "shipped"}}{{template "shell_top" .}}
<h2 style="font-size:17px;">Your order is on its way</h2>
<p>Order <strong>{{.Order.Number}}</strong> has been dispatched.</p>
{{if .Shipment}}{{if .Shipment.Carrier}}
<p>Courier: <strong>{{.Shipment.Carrier}}</strong>{{if .Shipment.TrackingID}} · Tracking ID <strong>{{.Shipment.TrackingID}}</strong>{{end}}</p>
{{end}}{{end}}
{{template "order_summary" .}}
<p style="color:#555;">Your invoice is attached to this email.</p>
{{template "shell_bottom" .}}{{end}}

{{define "out_for_delivery"}}{{template "shell_top" .}}
<h2 style="font-size:17px;">Out for delivery</h2>
<p>Order <strong>{{.Order.Number}}</strong> is out for delivery and should reach you today.</p>
{{if .Shipment}}{{if .Shipment.TrackingID}}
<p>Tracking ID: <strong>{{.Shipment.TrackingID}}</strong></p>
{{end}}{{end}}
{{template "shell_bottom" .}}{{end}}

{{define "delivered"}}{{template "shell_top" .}}
<h2 style="font-size:17px;">Delivered!</h2>
<p>Order <strong>{{.Order.Number}}</strong> has been delivered. We hope everything fits perfectly.</p>
<p style="margin:24px 0;">
<a href="{{.Link}}" style="background:#1a1a1a;color:#ffffff;padding:12px 24px;text-decoration:none;display:inline-block;">Share your feedback</a>
</p>
<p style="color:#555;font-size:13px;">The feedback link is personal to this order and expires after 90 days.</p>
{{template "shell_bottom" .}}{{end}}

{{define "password_reset"}}{{template "shell_top" .}}
<h2 style="font-size:17px;">Password reset</h2>
{{if .Name}}<p>Hi {{.Name}},</p>{{end}}
<p>Use this code to reset your password:</p>
<p style="font-size:28px;letter-spacing:6px;font-weight:bold;margin:24px 0;">{{.Code}}</p>
<p style="color:#555;">The code expires in {{.ExpiresIn}}. If you did not request a reset, ignore this email.</p>
{{template "shell_bottom" .}}{{end}}

{{define "broadcast"}}{{template "shell_top" .}}
{{.BodyHTML}}
{{template "shell_bottom" .}}{{end}}
`
