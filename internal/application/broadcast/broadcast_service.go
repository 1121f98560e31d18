package broadcast

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/customer"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/infrastructure/mail"
)

// BroadcastService sends bulk email to customer segments in throttled
// batches. A failed recipient never aborts the run; failures are logged and
// counted in the summary.
type BroadcastService struct {
	customerRepo   customer.Repository
	subscriberRepo customer.SubscriberRepository
	mailer         mail.Sender
	templates      *mail.Templates
	cfg            config.BroadcastConfig
	logger         *zap.Logger
	sleep          func(ctx context.Context, d time.Duration) error
}

// NewBroadcastService creates a new broadcast service. subscriberRepo may be
// nil; standalone newsletter signups are then left out of the segments.
func NewBroadcastService(customerRepo customer.Repository, subscriberRepo customer.SubscriberRepository, mailer mail.Sender, templates *mail.Templates, cfg config.BroadcastConfig, logger *zap.Logger) *BroadcastService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &BroadcastService{
		customerRepo:   customerRepo,
		subscriberRepo: subscriberRepo,
		mailer:         mailer,
		templates:      templates,
		cfg:            cfg,
		logger:         logger,
		sleep:          sleepCtx,
	}
}

// Send resolves the segment and delivers the broadcast batch by batch,
// pausing between batches. Cancelling the context stops after the current
// recipient; the summary reflects what was actually sent.
func (s *BroadcastService) Send(ctx context.Context, req *SendBroadcastRequest) (*BroadcastResult, error) {
	recipients, err := s.resolveSegment(ctx, req.Segment)
	if err != nil {
		return nil, err
	}

	rendered, err := s.templates.Broadcast(req.Subject, req.Body)
	if err != nil {
		return nil, err
	}

	result := &BroadcastResult{Recipients: len(recipients)}
	for start := 0; start < len(recipients); start += s.cfg.BatchSize {
		if start > 0 && s.cfg.BatchDelay > 0 {
			if err := s.sleep(ctx, s.cfg.BatchDelay); err != nil {
				return result, err
			}
		}

		end := start + s.cfg.BatchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		result.Batches++

		for _, r := range recipients[start:end] {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			msg := &mail.Message{
				To:      r.email,
				Subject: rendered.Subject,
				HTML:    rendered.HTML,
			}
			if err := s.mailer.Send(ctx, msg); err != nil {
				result.Failed++
				s.logger.Warn("broadcast send failed",
					zap.String("customer_code", r.code),
					zap.Error(err))
				continue
			}
			result.Sent++
		}
	}

	s.logger.Info("broadcast finished",
		zap.String("segment", req.Segment),
		zap.Int("recipients", result.Recipients),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	return result, nil
}

type recipient struct {
	code  string
	email string
}

// resolveSegment returns one deliverable address per customer, deduplicated.
// Customers without an email address are silently skipped.
func (s *BroadcastService) resolveSegment(ctx context.Context, segment string) ([]recipient, error) {
	var customers []customer.Customer
	var err error
	switch segment {
	case SegmentSubscribed:
		customers, err = s.customerRepo.FindSubscribed(ctx)
	case SegmentAll:
		filter := shared.Filter{
			OrderBy:  "code",
			OrderDir: "asc",
			Filters:  map[string]interface{}{"archived": false},
		}
		customers, err = s.customerRepo.FindAll(ctx, filter)
	default:
		return nil, shared.NewDomainError("INVALID_SEGMENT", "Unknown broadcast segment")
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(customers))
	recipients := make([]recipient, 0, len(customers))
	for i := range customers {
		email := customers[i].PrimaryEmail()
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		recipients = append(recipients, recipient{code: customers[i].Code, email: email})
	}

	// standalone newsletter signups join both segments
	if s.subscriberRepo != nil {
		subscribers, err := s.subscriberRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		for i := range subscribers {
			if _, dup := seen[subscribers[i].Email]; dup {
				continue
			}
			seen[subscribers[i].Email] = struct{}{}
			recipients = append(recipients, recipient{email: subscribers[i].Email})
		}
	}
	return recipients, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
