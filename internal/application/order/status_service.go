package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/order"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/invoicing"
	"github.com/shopfront/backend/internal/infrastructure/mail"
)

// StatusService drives orders through their fulfillment stages. The status
// write is transactional; the side effects (invoice PDF, emails) are
// best-effort and never roll it back.
type StatusService struct {
	orderRepo     order.Repository
	shipmentRepo  order.ShipmentRepository
	invoiceRepo   order.InvoiceRepository
	renderer      invoicing.PDFRenderer
	invoiceHTML   *invoicing.TemplateBuilder
	mailer        mail.Sender
	templates     *mail.Templates
	feedbackToken *auth.FeedbackTokenService
	logger        *zap.Logger
	now           func() time.Time
}

// StatusServiceOption configures the StatusService
type StatusServiceOption func(*StatusService)

// WithClock overrides the time source
func WithClock(now func() time.Time) StatusServiceOption {
	return func(s *StatusService) {
		s.now = now
	}
}

// NewStatusService creates a new StatusService
func NewStatusService(
	orderRepo order.Repository,
	shipmentRepo order.ShipmentRepository,
	invoiceRepo order.InvoiceRepository,
	renderer invoicing.PDFRenderer,
	invoiceHTML *invoicing.TemplateBuilder,
	mailer mail.Sender,
	templates *mail.Templates,
	feedbackToken *auth.FeedbackTokenService,
	logger *zap.Logger,
	opts ...StatusServiceOption,
) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StatusService{
		orderRepo:     orderRepo,
		shipmentRepo:  shipmentRepo,
		invoiceRepo:   invoiceRepo,
		renderer:      renderer,
		invoiceHTML:   invoiceHTML,
		mailer:        mailer,
		templates:     templates,
		feedbackToken: feedbackToken,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transition moves an order to the target status. Per-stage timestamps are
// stamped at most once; repeating a transition re-runs nothing destructive.
func (s *StatusService) Transition(ctx context.Context, orderID uuid.UUID, req StatusRequest) (*OrderResponse, error) {
	target := order.Status(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Unknown status %q", req.Status))
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stamped, err := o.MarkStatus(target, now)
	if err != nil {
		return nil, err
	}

	if target == order.StatusFulfilled || target == order.StatusShipped {
		if o.AssignInvoiceNumber(order.GenerateInvoiceNumber(now)) {
			s.logger.Info("invoice number assigned",
				zap.String("order", o.Number),
				zap.String("invoice", o.InvoiceNumber))
		}
	}

	shipment, err := s.shipmentRepo.FindByOrderID(ctx, o.ID)
	if err != nil {
		if err != shared.ErrNotFound {
			return nil, err
		}
		if shipment, err = order.NewShipment(o); err != nil {
			return nil, err
		}
	}
	shipment.SetTracking(req.TrackingID, req.Carrier, req.PackagingProvider)
	shipment.SyncWith(o)

	if err := s.orderRepo.SaveWithShipment(ctx, o, shipment); err != nil {
		return nil, err
	}

	// Side effects run after the status is durably written. Failures are
	// logged and surface nowhere else.
	switch target {
	case order.StatusShipped:
		s.afterShipped(ctx, o, shipment, stamped, now)
	case order.StatusOutForDelivery:
		if stamped {
			s.sendBestEffort(ctx, o, func() (*mail.Rendered, error) {
				return s.templates.OutForDelivery(o, shipment)
			}, nil)
		}
	case order.StatusDelivered:
		if stamped {
			s.afterDelivered(ctx, o)
		}
	}

	return ToOrderResponse(o), nil
}

// afterShipped renders and stores the invoice, then emails it to the customer
func (s *StatusService) afterShipped(ctx context.Context, o *order.Order, shipment *order.Shipment, stamped bool, now time.Time) {
	invoice, err := s.ensureInvoice(ctx, o, shipment, now)
	if err != nil {
		s.logger.Error("invoice generation failed",
			zap.String("order", o.Number), zap.Error(err))
	}

	// Only the first shipped transition emails the customer.
	if !stamped {
		return
	}

	var attachments []mail.Attachment
	if invoice != nil {
		pdf, err := invoice.PDF()
		if err != nil {
			s.logger.Error("stored invoice is unreadable",
				zap.String("order", o.Number), zap.Error(err))
		} else {
			attachments = append(attachments, mail.Attachment{
				Filename: invoice.Number + ".pdf",
				MIMEType: "application/pdf",
				Data:     pdf,
			})
		}
	}

	s.sendBestEffort(ctx, o, func() (*mail.Rendered, error) {
		return s.templates.Shipped(o, shipment)
	}, attachments)
}

// afterDelivered issues the feedback token and emails the feedback link
func (s *StatusService) afterDelivered(ctx context.Context, o *order.Order) {
	token, err := s.feedbackToken.Issue(o.ID, o.CustomerCode)
	if err != nil {
		s.logger.Error("feedback token issue failed",
			zap.String("order", o.Number), zap.Error(err))
		return
	}
	s.sendBestEffort(ctx, o, func() (*mail.Rendered, error) {
		return s.templates.Delivered(o, token)
	}, nil)
}

// ensureInvoice returns the stored invoice for the order, rendering and
// persisting it on first call
func (s *StatusService) ensureInvoice(ctx context.Context, o *order.Order, shipment *order.Shipment, now time.Time) (*order.Invoice, error) {
	existing, err := s.invoiceRepo.FindByOrderID(ctx, o.ID)
	if err == nil {
		return existing, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	html, err := s.invoiceHTML.Build(o, shipment, now)
	if err != nil {
		return nil, err
	}
	result, err := s.renderer.Render(ctx, &invoicing.RenderRequest{
		HTML:  html,
		Title: "Invoice " + o.InvoiceNumber,
	})
	if err != nil {
		return nil, err
	}

	invoice, err := order.NewInvoice(o.ID, o.InvoiceNumber, result.PDFData, now)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoicePDF returns the invoice PDF bytes for an order, rendering it on
// demand when no stored copy exists
func (s *StatusService) GetInvoicePDF(ctx context.Context, orderID uuid.UUID) (string, []byte, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", nil, err
	}
	if o.InvoiceNumber == "" {
		o.AssignInvoiceNumber(order.GenerateInvoiceNumber(s.now()))
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return "", nil, err
		}
	}

	shipment, err := s.shipmentRepo.FindByOrderID(ctx, o.ID)
	if err != nil && err != shared.ErrNotFound {
		return "", nil, err
	}

	invoice, err := s.ensureInvoice(ctx, o, shipment, s.now())
	if err != nil {
		return "", nil, err
	}
	pdf, err := invoice.PDF()
	if err != nil {
		return "", nil, err
	}
	return invoice.Number, pdf, nil
}

// SendConfirmation emails the order confirmation; failures are logged only
func (s *StatusService) SendConfirmation(ctx context.Context, o *order.Order) {
	s.sendBestEffort(ctx, o, func() (*mail.Rendered, error) {
		return s.templates.OrderConfirmation(o)
	}, nil)
}

func (s *StatusService) sendBestEffort(ctx context.Context, o *order.Order, render func() (*mail.Rendered, error), attachments []mail.Attachment) {
	if o.Email == "" {
		return
	}
	rendered, err := render()
	if err != nil {
		s.logger.Error("email render failed",
			zap.String("order", o.Number), zap.Error(err))
		return
	}
	msg := &mail.Message{
		To:          o.Email,
		Subject:     rendered.Subject,
		HTML:        rendered.HTML,
		Attachments: attachments,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("lifecycle email failed",
			zap.String("order", o.Number),
			zap.String("to", o.Email),
			zap.Error(err))
	}
}
