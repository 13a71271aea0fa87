package reset_shop_rules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barber-booking/internal/api/handlers"
	"github.com/m04kA/barber-booking/internal/service/rules"
)

const (
	msgInvalidShopID = "некорректный ID барбершопа"
	msgNotFound      = "у барбершопа нет собственных правил"
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

// Handle DELETE /api/v1/shops/{shopId}/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("DELETE /shops/{id}/rules - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	if err := h.service.Reset(r.Context(), shopID); err != nil {
		switch {
		case errors.Is(err, rules.ErrRulesNotFound):
			h.logger.Warn("DELETE /shops/{id}/rules - No custom rules: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /shops/{id}/rules - Failed to reset rules: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shops/{id}/rules - Rules reset to defaults: shop_id=%d", shopID)
	handlers.RespondNoContent(w)
}
