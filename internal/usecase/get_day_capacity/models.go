package get_day_capacity

// Request модель запроса на оценку вместимости дня мастера
type Request struct {
	ShopID          int64
	BarberID        int64
	DurationMinutes int    // 0 - длительность услуги по умолчанию
	Date            string // "YYYY-MM-DD"
}

// Response модель ответа с оценкой вместимости
type Response struct {
	Date            string
	ShopID          int64
	BarberID        int64
	MaxGapMinutes   int  // Самый большой свободный промежуток
	RequiredMinutes int  // Длительность, для которой считалась оценка
	HasCapacity     bool // Услуга помещается в самый большой промежуток
}
