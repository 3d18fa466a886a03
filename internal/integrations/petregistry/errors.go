package petregistry

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден в реестре
	ErrPetNotFound = errors.New("pet not found in registry")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("petregistry client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("petregistry client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что реестр питомцев недоступен и запись создается без снапшота породы
	ErrServiceDegraded = errors.New("petregistry unavailable: graceful degradation applied")
)
