package get_shop_rules

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/service/rules"
	"github.com/m04kA/barber-booking/internal/service/rules/models"
	"github.com/m04kA/barber-booking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, shopID int64) (*models.RulesResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RulesResponse{
		ShopID:      shopID,
		WorkingDays: []string{"monday", "tuesday"},
		StartHour:   9,
		EndHour:     19,
	}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/shops/{shopId}/rules", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeService{}, "/shops/4/rules")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.ShopID)
	assert.False(t, body.Customized)
	assert.Equal(t, 19, body.EndHour)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/shops/-1/rules").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: rules.ErrInternal}, "/shops/4/rules").Code)
}
