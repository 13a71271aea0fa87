package create_booking

import (
	"time"

	"github.com/m04kA/barber-booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ShopID          int64            // ID барбершопа
	BarberID        int64            // ID мастера
	ServiceID       int64            // ID услуги
	ClientName      string           // Имя клиента
	ClientPhone     *string          // Телефон клиента (опционально)
	Date            string           // Дата бронирования "YYYY-MM-DD"
	StartTime       types.TimeString // Время начала (например, "10:45")
	DurationMinutes int              // Длительность, если каталог не подключен. 0 - по умолчанию
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ShopID          int64            // ID барбершопа
	BarberID        int64            // ID мастера
	ServiceID       int64            // ID услуги
	ClientName      string           // Имя клиента
	ClientPhone     *string          // Телефон клиента
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
