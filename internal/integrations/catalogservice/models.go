package catalogservice

// Service услуга барбершопа из каталога
type Service struct {
	ID              int64   `json:"id"`
	ShopID          int64   `json:"shop_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	BarberIDs       []int64 `json:"barber_ids"` // мастера, выполняющие услугу. Пусто - все мастера
}

// OfferedBy проверяет, выполняет ли мастер эту услугу
func (s *Service) OfferedBy(barberID int64) bool {
	if len(s.BarberIDs) == 0 {
		return true
	}
	for _, id := range s.BarberIDs {
		if id == barberID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
