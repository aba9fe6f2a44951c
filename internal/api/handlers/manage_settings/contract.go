package manage_settings

import (
	"context"

	"github.com/akimovs/TRS-TableService/internal/service/settings/models"
)

// SettingsService интерфейс сервиса настроек бронирования
type SettingsService interface {
	GetRule(ctx context.Context) (*models.RuleResponse, error)
	UpdateRule(ctx context.Context, req *models.RuleRequest) (*models.RuleResponse, error)
	GetHours(ctx context.Context) (*models.HoursResponse, error)
	ReplaceHours(ctx context.Context, req *models.HoursRequest) (*models.HoursResponse, error)
	UpsertSpecialHours(ctx context.Context, req *models.SpecialHoursRequest) error
	CreateBlackout(ctx context.Context, req *models.BlackoutRequest) (*models.BlackoutResponse, error)
	DeleteBlackout(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
