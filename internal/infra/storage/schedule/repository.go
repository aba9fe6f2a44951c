package schedule

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

// Repository репозиторий расписания: недельные часы работы,
// переопределения на конкретные даты и блэкауты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklyHours возвращает недельное расписание работы
func (r *Repository) GetWeeklyHours(ctx context.Context) ([]*domain.OpeningHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "weekday", "open_time", "close_time").
		From("opening_hours").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.OpeningHour, 0)
	for rows.Next() {
		var oh domain.OpeningHour
		if err := rows.Scan(&oh.ID, &oh.Weekday, &oh.OpenTime, &oh.CloseTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklyHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, &oh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklyHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// ReplaceWeeklyHours полностью заменяет недельное расписание.
// Выполнять следует внутри транзакции.
func (r *Repository) ReplaceWeeklyHours(ctx context.Context, hours []*domain.OpeningHour) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("opening_hours").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - delete old rows: %v", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("opening_hours").
		Columns("weekday", "open_time", "close_time")
	for _, oh := range hours {
		insertBuilder = insertBuilder.Values(int(oh.Weekday), oh.OpenTime, oh.CloseTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSpecialForDate возвращает переопределение расписания на дату,
// nil если переопределения нет
func (r *Repository) GetSpecialForDate(ctx context.Context, date time.Time) (*domain.SpecialHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "closed", "open_time", "close_time").
		From("special_hours").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialForDate - build select query: %v", ErrBuildQuery, err)
	}

	var sh domain.SpecialHour
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sh.ID,
		&sh.Date,
		&sh.Closed,
		&sh.OpenTime,
		&sh.CloseTime,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialForDate - scan row: %v", ErrScanRow, err)
	}

	return &sh, nil
}

// UpsertSpecial сохраняет переопределение расписания на дату
func (r *Repository) UpsertSpecial(ctx context.Context, sh *domain.SpecialHour) (*domain.SpecialHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_hours").
		Columns("date", "closed", "open_time", "close_time").
		Values(sh.Date.Format(domain.DateFormat), sh.Closed, sh.OpenTime, sh.CloseTime).
		Suffix("ON CONFLICT (date) DO UPDATE SET closed = EXCLUDED.closed, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time").
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSpecial - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sh.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertSpecial - execute upsert: %v", ErrExecQuery, err)
	}

	return sh, nil
}

// ListBlackoutsInWindow возвращает блэкауты, пересекающие окно [from, to)
func (r *Repository) ListBlackoutsInWindow(ctx context.Context, from, to time.Time) ([]*domain.BlackoutSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_at", "end_at", "reason").
		From("blackout_slots").
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.BlackoutSlot, 0)
	for rows.Next() {
		var b domain.BlackoutSlot
		if err := rows.Scan(&b.ID, &b.StartAt, &b.EndAt, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListBlackoutsInWindow - scan row: %v", ErrScanRow, err)
		}
		blackouts = append(blackouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlackoutsInWindow - rows error: %v", ErrScanRow, err)
	}

	return blackouts, nil
}

// CreateBlackout создает блэкаут
func (r *Repository) CreateBlackout(ctx context.Context, b *domain.BlackoutSlot) (*domain.BlackoutSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_slots").
		Columns("start_at", "end_at", "reason").
		Values(b.StartAt, b.EndAt, b.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateBlackout - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// DeleteBlackout удаляет блэкаут
func (r *Repository) DeleteBlackout(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlackout - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBlackout - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
