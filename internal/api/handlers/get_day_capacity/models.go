package get_day_capacity

import getDayCapacity "github.com/m04kA/barber-booking/internal/usecase/get_day_capacity"

// DayCapacityResponse HTTP response model
type DayCapacityResponse struct {
	Date            string `json:"date"`
	ShopID          int64  `json:"shopId"`
	BarberID        int64  `json:"barberId"`
	MaxGapMinutes   int    `json:"maxGap"`
	RequiredMinutes int    `json:"requiredMinutes"`
	HasGap          bool   `json:"hasGap"`
}

func FromUseCaseResponse(resp *getDayCapacity.Response) *DayCapacityResponse {
	return &DayCapacityResponse{
		Date:            resp.Date,
		ShopID:          resp.ShopID,
		BarberID:        resp.BarberID,
		MaxGapMinutes:   resp.MaxGapMinutes,
		RequiredMinutes: resp.RequiredMinutes,
		HasGap:          resp.HasCapacity,
	}
}
