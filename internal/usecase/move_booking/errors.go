package move_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrTableNotFound возвращается, когда целевой стол не найден
	// или деактивирован
	ErrTableNotFound = errors.New("move_booking: table not found")

	// ErrAlreadyProcessed возвращается при попытке перенести отмененное
	// или истекшее бронирование
	ErrAlreadyProcessed = errors.New("move_booking: booking already processed")

	// ErrCapacityExceeded возвращается, когда партия не помещается
	// за целевой стол
	ErrCapacityExceeded = errors.New("move_booking: party does not fit the target table")

	// ErrConflict возвращается, когда целевой стол занят в новом окне
	ErrConflict = errors.New("move_booking: target table is occupied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)
