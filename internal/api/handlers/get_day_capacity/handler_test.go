package get_day_capacity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getDayCapacity "github.com/m04kA/barber-booking/internal/usecase/get_day_capacity"
	"github.com/m04kA/barber-booking/pkg/logger"
)

type fakeUseCase struct {
	got *getDayCapacity.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDayCapacity.Request) (*getDayCapacity.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getDayCapacity.Response{
		Date:            req.Date,
		ShopID:          req.ShopID,
		BarberID:        req.BarberID,
		MaxGapMinutes:   120,
		RequiredMinutes: req.DurationMinutes,
		HasCapacity:     true,
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/shops/{shopId}/barbers/{barberId}/capacity", NewHandler(uc, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/shops/1/barbers/2/capacity?date=2025-03-10&duration=90")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90, uc.got.DurationMinutes)

	var body DayCapacityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 120, body.MaxGapMinutes)
	assert.True(t, body.HasGap)
	assert.Contains(t, rec.Body.String(), `"maxGap":120`)
	assert.Contains(t, rec.Body.String(), `"hasGap":true`)
	assert.Equal(t, "2025-03-10", body.Date)
}

func TestHandle_BadRequest(t *testing.T) {
	targets := []string{
		"/shops/x/barbers/2/capacity?date=2025-03-10",
		"/shops/1/barbers/0/capacity?date=2025-03-10",
		"/shops/1/barbers/2/capacity",
		"/shops/1/barbers/2/capacity?date=2025-03-10&duration=long",
	}
	for _, target := range targets {
		assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, target).Code, target)
	}

	rec := serve(&fakeUseCase{err: getDayCapacity.ErrInvalidInput}, "/shops/1/barbers/2/capacity?date=10.03.2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: getDayCapacity.ErrInternal}, "/shops/1/barbers/2/capacity?date=2025-03-10")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
