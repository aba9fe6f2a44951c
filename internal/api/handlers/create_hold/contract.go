package create_hold

import (
	"context"

	createHold "github.com/akimovs/TRS-TableService/internal/usecase/create_hold"
)

// CreateHoldUseCase интерфейс use case создания холда
type CreateHoldUseCase interface {
	Execute(ctx context.Context, req *createHold.Request) (*createHold.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
