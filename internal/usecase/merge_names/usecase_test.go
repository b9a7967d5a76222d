package merge_names

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type stubRenamer struct {
	gotVariants  []string
	gotCanonical string
	updated      int64
	err          error
}

func (s *stubRenamer) rename(fromNames []string, toName string) (int64, error) {
	s.gotVariants = fromNames
	s.gotCanonical = toName
	return s.updated, s.err
}

type stubBookingRenamer struct{ stubRenamer }

func (s *stubBookingRenamer) RenameClient(ctx context.Context, fromNames []string, toName string) (int64, error) {
	return s.rename(fromNames, toName)
}

type stubInvoiceRenamer struct{ stubRenamer }

func (s *stubInvoiceRenamer) RenameCounterparty(ctx context.Context, fromNames []string, toName string) (int64, error) {
	return s.rename(fromNames, toName)
}

type stubFineRenamer struct{ stubRenamer }

func (s *stubFineRenamer) RenameDriver(ctx context.Context, fromNames []string, toName string) (int64, error) {
	return s.rename(fromNames, toName)
}

func TestRun_MergesAllTables(t *testing.T) {
	bookings := &stubBookingRenamer{stubRenamer{updated: 3}}
	invoices := &stubInvoiceRenamer{stubRenamer{updated: 2}}
	fines := &stubFineRenamer{stubRenamer{updated: 1}}
	tx := &fakeTxManager{}

	uc := New(bookings, invoices, fines, tx, nopLogger{})

	resp, err := uc.Run(context.Background(), &MergeRequest{
		CanonicalName: "Иван Иванов",
		Variants:      []string{"Иванов Иван", "И. Иванов"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", resp.CanonicalName)
	assert.Equal(t, int64(3), resp.BookingsUpdated)
	assert.Equal(t, int64(2), resp.InvoicesUpdated)
	assert.Equal(t, int64(1), resp.FinesUpdated)
	assert.Equal(t, int64(6), resp.TotalUpdated)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []string{"Иванов Иван", "И. Иванов"}, bookings.gotVariants)
	assert.Equal(t, "Иван Иванов", fines.gotCanonical)
}

func TestRun_DropsCanonicalAndDuplicateVariants(t *testing.T) {
	bookings := &stubBookingRenamer{}
	uc := New(bookings, &stubInvoiceRenamer{}, &stubFineRenamer{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Run(context.Background(), &MergeRequest{
		CanonicalName: "Иван Иванов",
		Variants:      []string{" Иванов Иван ", "Иванов Иван", "Иван Иванов", ""},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Иванов Иван"}, bookings.gotVariants)
}

func TestRun_EmptyCanonicalName(t *testing.T) {
	uc := New(&stubBookingRenamer{}, &stubInvoiceRenamer{}, &stubFineRenamer{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Run(context.Background(), &MergeRequest{
		CanonicalName: "  ",
		Variants:      []string{"Иванов Иван"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRun_NoVariantsAfterCleanup(t *testing.T) {
	uc := New(&stubBookingRenamer{}, &stubInvoiceRenamer{}, &stubFineRenamer{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Run(context.Background(), &MergeRequest{
		CanonicalName: "Иван Иванов",
		Variants:      []string{"Иван Иванов", ""},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRun_RenameFailure_RollsUpIntoMergeError(t *testing.T) {
	invoices := &stubInvoiceRenamer{stubRenamer{err: errors.New("db down")}}
	uc := New(&stubBookingRenamer{}, invoices, &stubFineRenamer{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Run(context.Background(), &MergeRequest{
		CanonicalName: "Иван Иванов",
		Variants:      []string{"Иванов Иван"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMergeFailed)
}
