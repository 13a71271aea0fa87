package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/dbmetrics"
)

var errStop = errors.New("stop")

type rowsAffected int64

func (r rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (r rowsAffected) RowsAffected() (int64, error) { return int64(r), nil }

// capturingExecutor запоминает последний запрос и не ходит в базу
type capturingExecutor struct {
	query    string
	args     []interface{}
	affected int64
}

func (e *capturingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return rowsAffected(e.affected), nil
}

func (e *capturingExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query, e.args = query, args
	return nil, errStop
}

func (e *capturingExecutor) QueryRowContext(_ context.Context, query string, args ...interface{}) *sql.Row {
	panic("not used")
}

type capturingTx struct {
	*capturingExecutor
}

func (capturingTx) Commit() error   { return nil }
func (capturingTx) Rollback() error { return nil }

func TestGetWithFilter_ActiveBookingsOfBarber(t *testing.T) {
	exec := &capturingExecutor{}
	repo := NewRepository(exec)

	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	barberID := int64(3)

	_, err := repo.GetWithFilter(context.Background(), domain.BookingsFilter{
		ShopID:    1,
		BarberID:  &barberID,
		StartDate: &date,
		EndDate:   &date,
	})

	require.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, errStop)
	assert.Contains(t, exec.query, "shop_id = $1")
	assert.Contains(t, exec.query, "barber_id = $2")
	assert.Contains(t, exec.query, "status IN ($5,$6,$7)")
	assert.Contains(t, exec.query, "ORDER BY start_time ASC")
	assert.NotContains(t, exec.query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(1), int64(3), date, date, "pending", "confirmed", "in_progress"}, exec.args)
}

func TestGetWithFilter_LocksSingleDayInTransaction(t *testing.T) {
	tx := capturingTx{&capturingExecutor{}}
	repo := NewRepository(&capturingExecutor{})
	ctx := dbmetrics.WithTx(context.Background(), tx)

	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	_, _ = repo.GetWithFilter(ctx, domain.BookingsFilter{ShopID: 1, StartDate: &date, EndDate: &date})

	assert.Contains(t, tx.query, "FOR UPDATE")

	from := date.AddDate(0, 0, -7)
	_, _ = repo.GetWithFilter(ctx, domain.BookingsFilter{ShopID: 1, StartDate: &from, EndDate: &date, IncludeInactive: true})

	assert.NotContains(t, tx.query, "FOR UPDATE")
	assert.NotContains(t, tx.query, "status IN")
	assert.Contains(t, tx.query, "ORDER BY booking_date DESC, start_time DESC")
}

func TestUpdateStatus_CompareAndSet(t *testing.T) {
	exec := &capturingExecutor{affected: 1}
	repo := NewRepository(exec)

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusPending, domain.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3", exec.query)
	assert.Equal(t, []interface{}{domain.StatusConfirmed, int64(42), domain.StatusPending}, exec.args)
}

func TestCancel_SetsReason(t *testing.T) {
	exec := &capturingExecutor{affected: 1}
	repo := NewRepository(exec)
	reason := "client called"

	err := repo.Cancel(context.Background(), 7, domain.StatusConfirmed, &reason)

	require.NoError(t, err)
	assert.Contains(t, exec.query, "cancelled_at = NOW()")
	assert.Equal(t, []interface{}{domain.StatusCancelled, &reason, int64(7), domain.StatusConfirmed}, exec.args)
}

func TestIsExclusionViolation(t *testing.T) {
	assert.True(t, isExclusionViolation(&pq.Error{Code: "23P01"}))
	assert.True(t, isExclusionViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"})))
	assert.False(t, isExclusionViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isExclusionViolation(nil))
}
