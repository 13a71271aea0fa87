package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barber-booking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/barber-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID     = "некорректный ID барбершопа"
	msgInvalidBarberID   = "некорректный ID мастера"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidDuration   = "некорректная длительность услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgServiceNotFound   = "услуга не найдена"
	msgServiceNotOffered = "мастер не выполняет выбранную услугу"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/barbers/{barberId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	shopID, err := handlers.ParseID(vars["shopId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	barberID, err := handlers.ParseID(vars["barberId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	req := &getAvailableSlots.Request{
		ShopID:   shopID,
		BarberID: barberID,
		Date:     query.Get("date"),
	}

	if req.Date == "" {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := handlers.ParseID(raw)
		if err != nil {
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	req.DurationMinutes, err = parseDuration(query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Service not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /shops/{id}/barbers/{id}/available-slots - Service not offered: shop_id=%d, barber_id=%d",
				shopID, barberID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		default:
			h.logger.Error("GET /shops/{id}/barbers/{id}/available-slots - Failed to get slots: shop_id=%d, barber_id=%d, error=%v",
				shopID, barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/barbers/{id}/available-slots - Slots retrieved: shop_id=%d, barber_id=%d, start_times=%d",
		shopID, barberID, len(result.StartTimes))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
