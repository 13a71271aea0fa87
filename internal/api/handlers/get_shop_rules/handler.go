package get_shop_rules

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/barber-booking/internal/api/handlers"
)

const (
	msgInvalidShopID = "некорректный ID барбершопа"
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

// Handle GET /api/v1/shops/{shopId}/rules
// Без переопределений возвращаются правила по умолчанию с customized=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.ParseID(mux.Vars(r)["shopId"])
	if err != nil {
		h.logger.Warn("GET /shops/{id}/rules - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	result, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		h.logger.Error("GET /shops/{id}/rules - Failed to get rules: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/rules - Rules retrieved successfully: shop_id=%d, customized=%t",
		shopID, result.Customized)
	handlers.RespondJSON(w, http.StatusOK, result)
}
