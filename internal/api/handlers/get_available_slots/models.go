package get_available_slots

import (
	"strconv"

	"github.com/m04kA/barber-booking/internal/availability"
	getAvailableSlots "github.com/m04kA/barber-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string              `json:"date"`
	ShopID          int64               `json:"shopId"`
	BarberID        int64               `json:"barberId"`
	ServiceID       *int64              `json:"serviceId,omitempty"`
	DurationMinutes int                 `json:"durationMinutes"`
	WorkingDay      bool                `json:"workingDay"`
	Slots           []availability.Slot `json:"slots"`
	StartTimes      []string            `json:"startTimes"`
	MaxGapMinutes   int                 `json:"maxGap"`
	HasGap          bool                `json:"hasGap"`
	Degraded        bool                `json:"degraded,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:            resp.Date,
		ShopID:          resp.ShopID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		WorkingDay:      resp.WorkingDay,
		Slots:           resp.Slots,
		StartTimes:      resp.StartTimes,
		MaxGapMinutes:   resp.Capacity.MaxGapMinutes,
		HasGap:          resp.Capacity.HasGap(),
		Degraded:        resp.Degraded,
	}
}

// parseDuration разбирает необязательный query параметр duration
func parseDuration(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
