package manage_tables

import (
	"context"

	"github.com/akimovs/TRS-TableService/internal/service/tables/models"
)

// TablesService интерфейс сервиса управления столами
type TablesService interface {
	Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error)
	List(ctx context.Context) (*models.TableListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
