package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге барбершопа
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotOffered возвращается, когда мастер не выполняет выбранную услугу
	ErrServiceNotOffered = errors.New("service is not offered by this barber")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
