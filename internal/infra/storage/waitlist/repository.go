package waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/dbmetrics"
	"github.com/akimovs/TRS-TableService/pkg/psqlbuilder"
)

var entryColumns = []string{
	"id",
	"date",
	"party_size",
	"area",
	"email",
	"name",
	"status",
	"created_at",
	"notified_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись листа ожидания
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("date", "party_size", "area", "email", "name", "status").
		Values(e.Date.Format(domain.DateFormat), e.PartySize, e.Area, e.Email, e.Name, domain.WaitlistOpen).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.Status = domain.WaitlistOpen

	return e, nil
}

// ListOpen возвращает открытые записи начиная с указанной даты,
// в порядке постановки в очередь (FIFO)
func (r *Repository) ListOpen(ctx context.Context, fromDate time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"status": domain.WaitlistOpen}).
		Where(squirrel.GtOrEq{"date": fromDate.Format(domain.DateFormat)}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var e domain.WaitlistEntry
		err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.PartySize,
			&e.Area,
			&e.Email,
			&e.Name,
			&e.Status,
			&e.CreatedAt,
			&e.NotifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpen - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpen - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// MarkNotified помечает запись уведомленной. Обновляются только открытые
// записи, поэтому конкурирующие воркеры не отправят два письма.
func (r *Repository) MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistNotified).
		Set("notified_at", notifiedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.WaitlistOpen}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// SetStatus переводит запись в произвольный статус (booked, cancelled)
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ExpireStale закрывает открытые записи с уже прошедшей датой
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistExpired).
		Where(squirrel.Eq{"status": domain.WaitlistOpen}).
		Where(squirrel.Lt{"date": now.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	expired, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - get rows affected: %v", ErrExecQuery, err)
	}

	return expired, nil
}
