package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOffered возвращается, когда мастер не выполняет выбранную услугу
	ErrServiceNotOffered = errors.New("create_booking: service is not offered by this barber")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("create_booking: service catalog is unavailable")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrShopClosed возвращается, когда барбершоп не работает в указанную дату
	ErrShopClosed = errors.New("create_booking: shop is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранное время недоступно
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
