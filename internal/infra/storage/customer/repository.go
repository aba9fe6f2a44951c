package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/dbmetrics"
	"github.com/akimovs/TRS-TableService/pkg/psqlbuilder"
)

var customerColumns = []string{
	"id",
	"email",
	"name",
	"surname",
	"phone",
	"consent_marketing",
	"consent_profiling",
	"consent_privacy",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertByEmail создает клиента или обновляет существующего по email.
// Вызывается при подтверждении бронирования: повторный гость получает
// обновленные контактные данные и согласия, а не дубликат записи.
func (r *Repository) UpsertByEmail(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"email",
			"name",
			"surname",
			"phone",
			"consent_marketing",
			"consent_profiling",
			"consent_privacy",
		).
		Values(
			c.Email,
			c.Name,
			c.Surname,
			c.Phone,
			c.ConsentMarketing,
			c.ConsentProfiling,
			c.ConsentPrivacy,
		).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			surname = EXCLUDED.surname,
			phone = EXCLUDED.phone,
			consent_marketing = EXCLUDED.consent_marketing,
			consent_profiling = EXCLUDED.consent_profiling,
			consent_privacy = EXCLUDED.consent_privacy,
			updated_at = NOW()`).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByEmail - build upsert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByEmail - execute upsert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.Surname,
		&c.Phone,
		&c.ConsentMarketing,
		&c.ConsentProfiling,
		&c.ConsentPrivacy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return &c, nil
}
