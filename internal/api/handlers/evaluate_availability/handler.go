package evaluate_availability

import (
	"net/http"
	"time"

	"github.com/m04kA/barber-booking/internal/api/handlers"
	"github.com/m04kA/barber-booking/internal/availability"
	"github.com/m04kA/barber-booking/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "дата должна быть в формате YYYY-MM-DD"
	msgInvalidDuration    = "длительность не может быть отрицательной"
	msgInvalidRules       = "некорректные правила бронирования"
)

// Handler считает доступность по переданным бронированиям, не обращаясь к хранилищу
type Handler struct {
	base         domain.BookingRules
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(base domain.BookingRules, location *time.Location, metrics Metrics, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		base:         base,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle POST /api/v1/availability/evaluate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/evaluate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// 1. Валидация
	day, err := availability.ParseDate(req.Date, h.location)
	if err != nil {
		h.logger.Warn("POST /availability/evaluate - Invalid date=%q", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if req.DurationMinutes < 0 {
		h.logger.Warn("POST /availability/evaluate - Negative duration=%d", req.DurationMinutes)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	rules := req.Rules.apply(h.base)
	if err := rules.Validate(); err != nil {
		h.logger.Warn("POST /availability/evaluate - Invalid rules: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRules+": "+err.Error())
		return
	}

	now := h.timeProvider.Now()
	if req.Now != nil {
		now = *req.Now
	}
	now = now.In(h.location)

	// 2. Считаем
	resp := evaluate(day, req, rules, now)
	h.metrics.IncAvailabilityComputation("evaluate")

	h.logger.Info("POST /availability/evaluate - Evaluated: date=%s, bookings=%d, start_times=%d, max_gap=%d",
		resp.Date, len(req.Bookings), len(resp.StartTimes), resp.MaxGapMinutes)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// evaluate нормализует записи один раз по правилам и считает план дня.
// В нерабочий день списки пустые и вместимость нулевая.
func evaluate(day time.Time, req EvaluateRequest, rules domain.BookingRules, now time.Time) *EvaluateResponse {
	intervals := availability.NormalizeBookings(req.Bookings, day, rules.DefaultServiceDurationMinutes)
	plan := availability.PlanDay(day, intervals, req.DurationMinutes, rules, now)

	return &EvaluateResponse{
		Date:            day.Format(domain.DateFormat),
		WorkingDay:      plan.WorkingDay,
		DurationMinutes: plan.Capacity.RequiredMinutes,
		Slots:           plan.Slots,
		AvailableTimes:  availability.FilterAvailableTimes(plan.Slots),
		StartTimes:      plan.StartTimes,
		MaxGapMinutes:   plan.Capacity.MaxGapMinutes,
		HasGap:          plan.Capacity.HasGap(),
	}
}
