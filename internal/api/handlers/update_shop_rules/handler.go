package update_shop_rules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barber-booking/internal/api/handlers"
	"github.com/m04kA/barber-booking/internal/service/rules"
	"github.com/m04kA/barber-booking/internal/service/rules/models"
)

const (
	msgInvalidShopID      = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRules       = "некорректные правила бронирования"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/rules
// Тело полностью заменяет переопределения, пропущенные поля наследуют значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("PUT /shops/{id}/rules - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req models.UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), shopID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{id}/rules - Validation failed: shop_id=%d, %v", shopID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidRules+": "+err.Error())

		default:
			h.logger.Error("PUT /shops/{id}/rules - Failed to update rules: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/rules - Rules updated successfully: shop_id=%d", shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
