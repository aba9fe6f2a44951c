package waitlist

import "errors"

var (
	// ErrEntryNotFound запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("failed to build SQL query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("failed to execute SQL query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("failed to scan row")
)
