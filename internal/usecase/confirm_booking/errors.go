package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrAlreadyProcessed возвращается, когда бронирование уже
	// подтверждено или отменено
	ErrAlreadyProcessed = errors.New("confirm_booking: booking already processed")

	// ErrHoldExpired возвращается, когда холд истек до подтверждения
	ErrHoldExpired = errors.New("confirm_booking: hold has expired")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
