package create_hold

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrNoAvailability возвращается, когда партию нечем посадить:
	// ни один набор столов не подходит
	ErrNoAvailability = errors.New("create_hold: no tables available")

	// ErrConflict возвращается при проигрыше конкурентной гонки за столы
	ErrConflict = errors.New("create_hold: concurrent booking conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)
