package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrAllocationConflict возвращается, когда окно занятости стола
	// пересекается с существующей аллокацией (проигрыш гонки)
	ErrAllocationConflict = errors.New("booking.repository: allocation conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок PostgreSQL, означающие проигрыш конкурентной гонки
// за стол/окно времени
const (
	pqSerializationFailure = "40001" // serialization_failure
	pqUniqueViolation      = "23505" // unique_violation
	pqExclusionViolation   = "23P01" // exclusion_violation (booking_tables_no_overlap)
	pqLockNotAvailable     = "55P03" // lock_not_available (FOR UPDATE NOWAIT)
)

// IsConflict возвращает true, если ошибка вызвана конкурентной транзакцией,
// успевшей занять стол раньше: нарушение exclusion constraint, сбой
// сериализации или невозможность взять блокировку
func IsConflict(err error) bool {
	if errors.Is(err, ErrAllocationConflict) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case pqSerializationFailure, pqUniqueViolation, pqExclusionViolation, pqLockNotAvailable:
		return true
	}
	return false
}
