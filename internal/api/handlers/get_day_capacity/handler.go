package get_day_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/barber-booking/internal/api/handlers"
	getDayCapacity "github.com/m04kA/barber-booking/internal/usecase/get_day_capacity"
)

const (
	msgInvalidShopID   = "некорректный ID барбершопа"
	msgInvalidBarberID = "некорректный ID мастера"
	msgInvalidDuration = "некорректная длительность услуги"
	msgMissingDate     = "дата обязательна"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetDayCapacityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/barbers/{barberId}/capacity
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	shopID, err := handlers.ParseID(vars["shopId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/capacity - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	barberID, err := handlers.ParseID(vars["barberId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/capacity - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	req := &getDayCapacity.Request{
		ShopID:   shopID,
		BarberID: barberID,
		Date:     query.Get("date"),
	}
	if req.Date == "" {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/capacity - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	if raw := query.Get("duration"); raw != "" {
		req.DurationMinutes, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/barbers/{id}/capacity - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDayCapacity.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/capacity - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /shops/{id}/barbers/{id}/capacity - Failed to compute capacity: shop_id=%d, barber_id=%d, error=%v",
				shopID, barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/barbers/{id}/capacity - Capacity computed: shop_id=%d, barber_id=%d, max_gap=%d",
		shopID, barberID, result.MaxGapMinutes)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
