package rule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/dbmetrics"
	"github.com/akimovs/TRS-TableService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"seat_duration_minutes",
	"slot_interval_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"max_covers_per_slot",
	"deposit_amount",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами рассадки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive возвращает активное правило рассадки.
// Частичный уникальный индекс гарантирует, что активная строка одна.
func (r *Repository) GetActive(ctx context.Context) (*domain.ReservationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("reservation_rules").
		Where(squirrel.Eq{"active": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.ReservationRule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.SeatDurationMinutes,
		&rule.SlotIntervalMinutes,
		&rule.BufferBeforeMinutes,
		&rule.BufferAfterMinutes,
		&rule.MaxCoversPerSlot,
		&rule.DepositAmount,
		&rule.Active,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan rule: %v", ErrScanRow, err)
	}

	return &rule, nil
}

// Upsert сохраняет новое правило и деактивирует предыдущее активное.
// Выполнять следует внутри транзакции, иначе между деактивацией и
// вставкой возможно окно без активного правила.
func (r *Repository) Upsert(ctx context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deactivateQuery, deactivateArgs, err := psqlbuilder.Update("reservation_rules").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - deactivate previous rule: %v", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("reservation_rules").
		Columns(
			"seat_duration_minutes",
			"slot_interval_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"max_covers_per_slot",
			"deposit_amount",
			"active",
		).
		Values(
			rule.SeatDurationMinutes,
			rule.SlotIntervalMinutes,
			rule.BufferBeforeMinutes,
			rule.BufferAfterMinutes,
			rule.MaxCoversPerSlot,
			rule.DepositAmount,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(
		&rule.ID,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.Active = true

	return rule, nil
}
