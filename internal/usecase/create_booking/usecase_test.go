package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/domain"
	bookingRepo "github.com/m04kA/barber-booking/internal/infra/storage/booking"
	"github.com/m04kA/barber-booking/internal/integrations/catalogservice"
	"github.com/m04kA/barber-booking/pkg/logger"
	"github.com/m04kA/barber-booking/pkg/ptr"
	"github.com/m04kA/barber-booking/pkg/txmanager"
	"github.com/m04kA/barber-booking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	existing  []*domain.Booking
	created   []*domain.Booking
	createErr error
}

func (r *fakeRepo) GetWithFilter(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return r.existing, nil
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := *b
	saved.ID = int64(len(r.created) + 1)
	r.created = append(r.created, &saved)
	return &saved, nil
}

type fakeRules struct{ rules domain.BookingRules }

func (f fakeRules) Resolve(context.Context, int64) (domain.BookingRules, error) { return f.rules, nil }

type fakeCatalog struct {
	service *catalogservice.Service
	err     error
}

func (f fakeCatalog) GetServiceWithGracefulDegradation(context.Context, int64, int64) (*catalogservice.Service, error) {
	return f.service, f.err
}

// inlineTx выполняет fn без БД, err подменяет результат транзакции
type inlineTx struct{ err error }

func (tx inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx.err != nil {
		return tx.err
	}
	return fn(ctx)
}

type resultRecorder struct{ results []string }

func (m *resultRecorder) IncBookingCreated(result string) { m.results = append(m.results, result) }

var (
	dayBefore = time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC)
	fade      = &catalogservice.Service{ID: 3, ShopID: 1, Name: "Fade", Price: 1500, DurationMinutes: 45}
)

func existing(start string, duration int) *domain.Booking {
	return &domain.Booking{
		ShopID:          1,
		BarberID:        7,
		StartTime:       types.MustTimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func request(date, start string) *Request {
	return &Request{
		ShopID:     1,
		BarberID:   7,
		ServiceID:  3,
		ClientName: "  Ivan  ",
		Date:       date,
		StartTime:  types.MustTimeString(start),
	}
}

type testEnv struct {
	uc      *UseCase
	repo    *fakeRepo
	metrics *resultRecorder
}

func newTestEnv(now time.Time, catalog CatalogClient, tx TransactionManager, bookings ...*domain.Booking) testEnv {
	repo := &fakeRepo{existing: bookings}
	m := &resultRecorder{}
	uc := NewUseCase(repo, fakeRules{rules: domain.DefaultBookingRules()}, catalog, tx, m, time.UTC, logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return testEnv{uc: uc, repo: repo, metrics: m}
}

func TestExecute_CreatesPendingBookingAtEdge(t *testing.T) {
	env := newTestEnv(dayBefore, fakeCatalog{service: fade}, inlineTx{}, existing("10:00", 45))

	resp, err := env.uc.Execute(context.Background(), request("2025-01-15", "10:45"))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:45", resp.StartTime.String())
	assert.Equal(t, "11:30", resp.EndTime.String())
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, "Fade", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
	assert.Equal(t, "Ivan", resp.ClientName)

	require.Len(t, env.repo.created, 1)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), env.repo.created[0].BookingDate)
	assert.Equal(t, []string{resultCreated}, env.metrics.results)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		catalog    CatalogClient
		tx         TransactionManager
		createErr  error
		req        *Request
		wantErr    error
		wantResult string
	}{
		{
			name:       "overlaps existing booking",
			req:        request("2025-01-15", "10:30"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "off grid and not adjacent",
			req:        request("2025-01-15", "14:10"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "service runs past closing",
			req:        request("2025-01-15", "17:30"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "same day inside advance notice",
			now:        time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			req:        request("2025-01-15", "11:00"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "database exclusion constraint",
			createErr:  fmt.Errorf("%w: Create - insert booking", bookingRepo.ErrSlotNotAvailable),
			req:        request("2025-01-15", "12:00"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "serialization retries exhausted",
			tx:         inlineTx{err: fmt.Errorf("%w: could not serialize access", txmanager.ErrSerialization)},
			req:        request("2025-01-15", "12:00"),
			wantErr:    ErrSlotNotAvailable,
			wantResult: resultConflict,
		},
		{
			name:       "sunday",
			req:        request("2025-01-19", "12:00"),
			wantErr:    ErrShopClosed,
			wantResult: resultRejected,
		},
		{
			name:       "past date",
			now:        time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC),
			req:        request("2025-01-15", "12:00"),
			wantErr:    ErrInvalidDate,
			wantResult: resultRejected,
		},
		{
			name:       "empty client name",
			req:        &Request{ShopID: 1, BarberID: 7, ServiceID: 3, ClientName: " ", Date: "2025-01-15", StartTime: types.MustTimeString("12:00")},
			wantErr:    ErrInvalidInput,
			wantResult: resultRejected,
		},
		{
			name:       "barber does not offer service",
			catalog:    fakeCatalog{service: &catalogservice.Service{ID: 3, DurationMinutes: 30, BarberIDs: []int64{9}}},
			req:        request("2025-01-15", "12:00"),
			wantErr:    ErrServiceNotOffered,
			wantResult: resultRejected,
		},
		{
			name:       "catalog unavailable",
			catalog:    fakeCatalog{err: fmt.Errorf("%w: timeout", catalogservice.ErrServiceDegraded)},
			req:        request("2025-01-15", "12:00"),
			wantErr:    ErrCatalogUnavailable,
			wantResult: resultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = dayBefore
			}
			catalog := tt.catalog
			if catalog == nil {
				catalog = fakeCatalog{service: fade}
			}
			tx := tt.tx
			if tx == nil {
				tx = inlineTx{}
			}

			env := newTestEnv(now, catalog, tx, existing("10:00", 45))
			env.repo.createErr = tt.createErr

			_, err := env.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.repo.created)
			assert.Equal(t, []string{tt.wantResult}, env.metrics.results)
		})
	}
}

func TestExecute_WithoutCatalogUsesRequestedDuration(t *testing.T) {
	env := newTestEnv(dayBefore, nil, inlineTx{})

	req := request("2025-01-15", "16:00")
	req.DurationMinutes = 120
	req.Notes = ptr.Ptr("beard too")

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, "18:00", resp.EndTime.String())
	assert.Empty(t, resp.ServiceName)
}
