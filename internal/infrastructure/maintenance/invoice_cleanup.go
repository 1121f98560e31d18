package maintenance

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/order"
)

const defaultCleanupInterval = time.Hour

// InvoiceCleanup periodically removes invoice PDFs whose retention window
// has passed. Invoice numbers stay on the orders; only the stored blob goes.
type InvoiceCleanup struct {
	invoiceRepo order.InvoiceRepository
	interval    time.Duration
	logger      *zap.Logger
	now         func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewInvoiceCleanup creates a cleanup job that sweeps at the given interval
func NewInvoiceCleanup(invoiceRepo order.InvoiceRepository, interval time.Duration, logger *zap.Logger) *InvoiceCleanup {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceCleanup{
		invoiceRepo: invoiceRepo,
		interval:    interval,
		logger:      logger,
		now:         time.Now,
	}
}

// Start begins the background sweep loop. Calling Start on a running job is
// a no-op.
func (c *InvoiceCleanup) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.run(ctx)

	c.logger.Info("Invoice cleanup started", zap.Duration("interval", c.interval))
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep to finish, or for
// the passed context to expire.
func (c *InvoiceCleanup) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Invoice cleanup stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *InvoiceCleanup) run(ctx context.Context) {
	defer c.wg.Done()

	// One sweep at startup so a restart never extends retention.
	c.sweep(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *InvoiceCleanup) sweep(ctx context.Context) {
	deleted, err := c.invoiceRepo.DeleteExpired(ctx, c.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Error("Invoice cleanup sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		c.logger.Info("Expired invoices removed", zap.Int64("count", deleted))
	}
}
