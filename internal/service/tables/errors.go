package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrTableCodeTaken возвращается, когда код стола уже используется
	ErrTableCodeTaken = errors.New("table code already taken")

	// ErrTableInUse возвращается при попытке деактивировать или удалить
	// стол с будущими бронированиями
	ErrTableInUse = errors.New("table has future bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
