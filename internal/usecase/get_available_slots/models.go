package get_available_slots

import "github.com/m04kA/barber-booking/internal/availability"

// Request модель запроса на получение доступных слотов мастера
type Request struct {
	ShopID          int64  // ID барбершопа
	BarberID        int64  // ID мастера
	ServiceID       *int64 // ID услуги (опционально, длительность берётся из каталога)
	DurationMinutes int    // Длительность услуги, если ServiceID не указан. 0 - по умолчанию
	Date            string // Дата "YYYY-MM-DD"
}

// Response модель ответа со слотами и допустимыми началами записи
type Response struct {
	Date            string                   // Дата, на которую запрашивались слоты
	ShopID          int64                    // ID барбершопа
	BarberID        int64                    // ID мастера
	ServiceID       *int64                   // ID услуги
	DurationMinutes int                      // Длительность, для которой считались начала
	WorkingDay      bool                     // false - барбершоп не работает в этот день
	Slots           []availability.Slot      // Базовая сетка дня
	StartTimes      []string                 // Допустимые начала для услуги, включая начала встык
	Capacity        availability.DayCapacity // Самый большой свободный промежуток
	Degraded        bool                     // Каталог недоступен, использована длительность по умолчанию
}
