package maintenance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/order"
)

type stubInvoiceRepo struct {
	deletes atomic.Int64
	err     error
}

func (s *stubInvoiceRepo) FindByOrderID(context.Context, uuid.UUID) (*order.Invoice, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInvoiceRepo) FindByNumber(context.Context, string) (*order.Invoice, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInvoiceRepo) Save(context.Context, *order.Invoice) error {
	return errors.New("not implemented")
}

func (s *stubInvoiceRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	s.deletes.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return 2, nil
}

func TestInvoiceCleanup_SweepsOnStartAndInterval(t *testing.T) {
	repo := &stubInvoiceRepo{}
	job := NewInvoiceCleanup(repo, 20*time.Millisecond, zap.NewNop())

	require.NoError(t, job.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return repo.deletes.Load() >= 2
	}, time.Second, 5*time.Millisecond, "expected the startup sweep plus at least one ticker sweep")

	require.NoError(t, job.Stop(context.Background()))
}

func TestInvoiceCleanup_StopIsIdempotent(t *testing.T) {
	repo := &stubInvoiceRepo{}
	job := NewInvoiceCleanup(repo, time.Hour, zap.NewNop())

	require.NoError(t, job.Start(context.Background()))
	require.NoError(t, job.Stop(context.Background()))
	require.NoError(t, job.Stop(context.Background()))

	before := repo.deletes.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, repo.deletes.Load(), "no sweeps after Stop")
}

func TestInvoiceCleanup_SurvivesRepoErrors(t *testing.T) {
	repo := &stubInvoiceRepo{err: errors.New("db unavailable")}
	job := NewInvoiceCleanup(repo, 15*time.Millisecond, zap.NewNop())

	require.NoError(t, job.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return repo.deletes.Load() >= 3
	}, time.Second, 5*time.Millisecond, "loop keeps running through sweep failures")

	require.NoError(t, job.Stop(context.Background()))
}
