package table

import "errors"

var (
	// ErrTableNotFound стол не найден
	ErrTableNotFound = errors.New("table not found")
	// ErrTableCodeTaken код стола уже используется
	ErrTableCodeTaken = errors.New("table code already taken")
	// ErrTableHasBookings на стол ссылаются строки аллокаций
	ErrTableHasBookings = errors.New("table is referenced by bookings")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build SQL query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute SQL query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("failed to scan row")
)
