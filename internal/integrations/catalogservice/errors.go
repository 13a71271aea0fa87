package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в барбершопе
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Каталог недоступен, вызывающий код использует длительность по умолчанию
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
