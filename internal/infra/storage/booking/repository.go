package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/dbmetrics"
	"github.com/akimovs/TRS-TableService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"appointment_at",
	"party_size",
	"area",
	"status",
	"hold_expires_at",
	"customer_id",
	"notes",
	"manage_token",
	"reminder_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и аллокациями столов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование (холд или подтвержденную бронь).
// Строки аллокаций вставляются отдельно через InsertAllocations -
// обе операции должны выполняться в одной транзакции.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"appointment_at",
			"party_size",
			"area",
			"status",
			"hold_expires_at",
			"customer_id",
			"notes",
			"manage_token",
		).
		Values(
			b.AppointmentAt,
			b.PartySize,
			b.Area,
			b.Status,
			b.HoldExpiresAt,
			b.CustomerID,
			b.Notes,
			b.ManageToken,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// InsertAllocations вставляет строки занятости столов для бронирования.
// Нарушение exclusion constraint booking_tables_no_overlap (конкурентная
// транзакция успела занять стол) возвращается как ErrAllocationConflict.
func (r *Repository) InsertAllocations(ctx context.Context, bookingID int64, allocs []domain.TableAllocation) error {
	if len(allocs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_tables").
		Columns("booking_id", "table_id", "start_at", "end_at")

	for _, a := range allocs {
		insertBuilder = insertBuilder.Values(bookingID, a.TableID, a.StartAt, a.EndAt)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertAllocations - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if IsConflict(err) {
			return fmt.Errorf("%w: booking=%d: %v", ErrAllocationConflict, bookingID, err)
		}
		return fmt.Errorf("%w: InsertAllocations - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование c аллокациями по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByManageToken получает бронирование по self-service токену
func (r *Repository) GetByManageToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"manage_token": token})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadAllocations(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}

	return b, nil
}

// ListOccupyingInWindow возвращает бронирования, чьи аллокации пересекают
// окно [from, to) и которые занимают столы на момент now: подтвержденные
// и живые (непросроченные) холды. Просроченный, но еще не подчищенный холд
// сюда не попадает - ленивое истечение действует на любое чтение.
// В Allocations каждой брони входят только пересекающие окно строки.
func (r *Repository) ListOccupyingInWindow(ctx context.Context, from, to, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.appointment_at",
		"b.party_size",
		"b.area",
		"b.status",
		"b.hold_expires_at",
		"b.customer_id",
		"b.notes",
		"b.manage_token",
		"b.reminder_sent_at",
		"b.created_at",
		"b.updated_at",
		"bt.id",
		"bt.table_id",
		"bt.start_at",
		"bt.end_at",
	).
		From("booking_tables bt").
		Join("bookings b ON b.id = bt.booking_id").
		Where(squirrel.Lt{"bt.start_at": to}).
		Where(squirrel.Gt{"bt.end_at": from}).
		Where(squirrel.Or{
			squirrel.Eq{"b.status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"b.status": domain.StatusPending},
				squirrel.GtOrEq{"b.hold_expires_at": now},
			},
		}).
		OrderBy("bt.start_at ASC, bt.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupyingInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupyingInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Booking)
	result := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			b     domain.Booking
			alloc domain.TableAllocation
		)
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.AppointmentAt,
			&b.PartySize,
			&b.Area,
			&b.Status,
			&b.HoldExpiresAt,
			&b.CustomerID,
			&b.Notes,
			&b.ManageToken,
			&b.ReminderSentAt,
			&createdAt,
			&updatedAt,
			&alloc.ID,
			&alloc.TableID,
			&alloc.StartAt,
			&alloc.EndAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOccupyingInWindow - scan row: %v", ErrScanRow, err)
		}

		alloc.BookingID = b.ID

		existing, ok := byID[b.ID]
		if !ok {
			b.CreatedAt = createdAt.Time
			b.UpdatedAt = updatedAt.Time
			existing = &b
			byID[b.ID] = existing
			result = append(result, existing)
		}
		existing.Allocations = append(existing.Allocations, alloc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupyingInWindow - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// LockConflictingAllocations берет блокировку (FOR UPDATE NOWAIT) на
// аллокации указанного стола, пересекающие окно [from, to), и возвращает
// их количество. Используется операцией переноса: check-then-act закрывается
// явной блокировкой, а занятая конкурентом блокировка (55P03) всплывает
// как конфликт, а не как зависание.
func (r *Repository) LockConflictingAllocations(ctx context.Context, tableID int64, from, to time.Time, excludeBookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bt.id").
		From("booking_tables bt").
		Join("bookings b ON b.id = bt.booking_id").
		Where(squirrel.Eq{"bt.table_id": tableID}).
		Where(squirrel.Lt{"bt.start_at": to}).
		Where(squirrel.Gt{"bt.end_at": from}).
		Where(squirrel.NotEq{"bt.booking_id": excludeBookingID}).
		Where(squirrel.Eq{"b.status": domain.OccupyingStatuses}).
		Suffix("FOR UPDATE OF bt NOWAIT").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LockConflictingAllocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if IsConflict(err) {
			return 0, fmt.Errorf("%w: table=%d: %v", ErrAllocationConflict, tableID, err)
		}
		return 0, fmt.Errorf("%w: LockConflictingAllocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: LockConflictingAllocations - scan row: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: LockConflictingAllocations - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// SweepExpiredHolds отменяет просроченные холды и освобождает их столы.
// Ленивое истечение: нет фонового reaper-а, подчистку выполняет любая
// операция, которой мешают строки просроченных холдов.
func (r *Repository) SweepExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Сначала освобождаем столы
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("booking_tables").
		Where(squirrel.Expr(
			"booking_id IN (SELECT id FROM bookings WHERE status = ? AND hold_expires_at < ?)",
			domain.StatusPending, now,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpiredHolds - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("%w: SweepExpiredHolds - delete allocations: %v", ErrExecQuery, err)
	}

	// Затем помечаем сами холды отмененными
	updateQuery, updateArgs, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"hold_expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return swept, nil
}

// SetConfirmed переводит холд в подтвержденную бронь: статус, клиент,
// self-service токен; hold_expires_at сбрасывается, заметки гостя
// перезаписываются, если переданы.
// Обновляются только строки в статусе pending - повторное подтверждение
// не пройдет по rows affected.
func (r *Repository) SetConfirmed(ctx context.Context, id int64, customerID int64, manageToken string, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("customer_id", customerID).
		Set("manage_token", manageToken).
		Set("hold_expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	query, args, err := updateBuilder.ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetConfirmed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CancelAndFreeTables отменяет бронирование и удаляет его аллокации,
// немедленно освобождая столы для других запросов
func (r *Repository) CancelAndFreeTables(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := r.DeleteAllocations(ctx, id); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelAndFreeTables - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelAndFreeTables - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelAndFreeTables - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteAllocations удаляет все аллокации бронирования
func (r *Repository) DeleteAllocations(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_tables").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteAllocations - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteAllocations - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateAppointment переносит бронирование на новое время
func (r *Repository) UpdateAppointment(ctx context.Context, id int64, appointmentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("appointment_at", appointmentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAppointment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAppointment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAppointment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListByDate возвращает все бронирования на дату (включая отмененные) для
// админского календаря, отсортированные по времени
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"appointment_at": dayStart}).
		Where(squirrel.Lt{"appointment_at": dayEnd}).
		OrderBy("appointment_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAllocations(ctx, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListConfirmedForReminder возвращает подтвержденные бронирования в окне
// [from, to), которым еще не отправлялось напоминание
func (r *Repository) ListConfirmedForReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		Where(squirrel.GtOrEq{"appointment_at": from}).
		Where(squirrel.Lt{"appointment_at": to}).
		OrderBy("appointment_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedForReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkReminderSent отмечает, что напоминание по бронированию отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent_at", sentAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// loadAllocations загружает аллокации для переданных бронирований
func (r *Repository) loadAllocations(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select("id", "booking_id", "table_id", "start_at", "end_at").
		From("booking_tables").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadAllocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAllocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.TableAllocation
		if err := rows.Scan(&a.ID, &a.BookingID, &a.TableID, &a.StartAt, &a.EndAt); err != nil {
			return fmt.Errorf("%w: loadAllocations - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[a.BookingID]; ok {
			b.Allocations = append(b.Allocations, a)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAllocations - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.AppointmentAt,
		&b.PartySize,
		&b.Area,
		&b.Status,
		&b.HoldExpiresAt,
		&b.CustomerID,
		&b.Notes,
		&b.ManageToken,
		&b.ReminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
