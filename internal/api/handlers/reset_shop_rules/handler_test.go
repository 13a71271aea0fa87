package reset_shop_rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/barber-booking/internal/service/rules"
	"github.com/m04kA/barber-booking/pkg/logger"
)

type fakeService struct {
	err   error
	reset []int64
}

func (f *fakeService) Reset(_ context.Context, shopID int64) error {
	f.reset = append(f.reset, shopID)
	return f.err
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/shops/{shopId}/rules", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/shops/8/rules")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []int64{8}, svc.reset)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/shops/zero/rules").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: rules.ErrRulesNotFound}, "/shops/8/rules").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: rules.ErrInternal}, "/shops/8/rules").Code)
}
