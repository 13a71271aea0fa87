package update_shop_rules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barber-booking/internal/service/rules"
	"github.com/m04kA/barber-booking/internal/service/rules/models"
	"github.com/m04kA/barber-booking/pkg/logger"
)

type fakeService struct {
	got *models.UpdateRulesRequest
	err error
}

func (f *fakeService) Update(_ context.Context, shopID int64, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RulesResponse{ShopID: shopID, Customized: true, WorkingDays: req.WorkingDays, EndHour: 20}, nil
}

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/shops/{shopId}/rules", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/shops/2/rules", `{"workingDays":["monday","sábado"],"endHour":20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"monday", "sábado"}, svc.got.WorkingDays)
	require.NotNil(t, svc.got.EndHour)
	assert.Equal(t, 20, *svc.got.EndHour)

	var body models.RulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Customized)
	assert.Equal(t, int64(2), body.ShopID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/shops/x/rules", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/shops/2/rules", `{"endHour":"late"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity,
		serve(&fakeService{err: fmt.Errorf("%w: endHour", rules.ErrInvalidInput)}, "/shops/2/rules", `{"endHour":5}`).Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeService{err: rules.ErrInternal}, "/shops/2/rules", `{}`).Code)
}
