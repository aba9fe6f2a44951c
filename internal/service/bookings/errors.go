package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyConfirmed возвращается при попытке отменить подтвержденную
	// бронь по ID. Подтвержденная бронь отменяется только по manage токену.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
