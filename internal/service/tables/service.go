package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akimovs/TRS-TableService/internal/domain"
	tableRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/table"
	"github.com/akimovs/TRS-TableService/internal/service/tables/models"
)

// Service сервис управления столами для персонала
type Service struct {
	tableRepo    TableRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(
	tableRepo TableRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tableRepo:    tableRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новый стол
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Create: creating table code=%s, capacity=%d, area=%s", req.Code, req.Capacity, req.Area)

	table, err := toDomainTable(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.tableRepo.Create(ctx, table)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableCodeTaken) {
			s.logger.Warn("Create: table code=%s already taken", req.Code)
			return nil, ErrTableCodeTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTable(created), nil
}

// List возвращает все столы, включая деактивированные
func (s *Service) List(ctx context.Context) (*models.TableListResponse, error) {
	tables, err := s.tableRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTableList(tables), nil
}

// Update обновляет параметры стола. Заданы могут быть только
// изменяемые поля, остальные сохраняют текущие значения.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Update: updating table id=%d", id)

	var updated *domain.Table

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		table, err := s.tableRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := applyUpdate(table, req); err != nil {
			return err
		}

		if err := s.tableRepo.Update(txCtx, table); err != nil {
			if errors.Is(err, tableRepo.ErrTableCodeTaken) {
				return ErrTableCodeTaken
			}
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = table
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableCodeTaken), errors.Is(err, ErrInvalidInput):
			s.logger.Warn("Update: table id=%d: %v", id, err)
		default:
			s.logger.Error("Update: table id=%d: %v", id, err)
		}
		return nil, err
	}

	return models.FromDomainTable(updated), nil
}

// Deactivate выключает стол для новых бронирований.
// Стол с будущими аллокациями живых бронирований деактивировать нельзя:
// сперва нужно перенести или отменить его брони.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating table id=%d", id)

	now := s.timeProvider.Now()

	return s.guardedMutate(ctx, id,
		func(txCtx context.Context) (int, error) {
			return s.tableRepo.CountFutureAllocations(txCtx, id, now)
		},
		func(txCtx context.Context) error {
			return s.tableRepo.SetActive(txCtx, id, false)
		})
}

// Activate включает стол обратно
func (s *Service) Activate(ctx context.Context, id int64) error {
	s.logger.Info("Activate: activating table id=%d", id)

	err := s.tableRepo.SetActive(ctx, id, true)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Activate: table id=%d not found", id)
			return ErrTableNotFound
		}
		s.logger.Error("Activate: repository error for table id=%d: %v", id, err)
		return fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет стол. Стол, на который когда-либо ссылались аллокации,
// удалить нельзя, даже если все его брони в прошлом: вместо удаления
// такой стол деактивируется.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting table id=%d", id)

	return s.guardedMutate(ctx, id,
		func(txCtx context.Context) (int, error) {
			return s.tableRepo.CountAllocations(txCtx, id)
		},
		func(txCtx context.Context) error {
			return s.tableRepo.Delete(txCtx, id)
		})
}

// guardedMutate выполняет мутацию стола в транзакции, предварительно
// убедившись, что countRefs не находит мешающих аллокаций
func (s *Service) guardedMutate(
	ctx context.Context,
	id int64,
	countRefs func(ctx context.Context) (int, error),
	mutate func(ctx context.Context) error,
) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.tableRepo.GetByID(txCtx, id); err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			return fmt.Errorf("%w: guardedMutate - repository error: %v", ErrInternal, err)
		}

		count, err := countRefs(txCtx)
		if err != nil {
			return fmt.Errorf("%w: guardedMutate - failed to count allocations: %v", ErrInternal, err)
		}

		if count > 0 {
			return fmt.Errorf("%w: table id=%d is referenced by %d allocations", ErrTableInUse, id, count)
		}

		if err := mutate(txCtx); err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			if errors.Is(err, tableRepo.ErrTableHasBookings) {
				return fmt.Errorf("%w: table id=%d", ErrTableInUse, id)
			}
			return fmt.Errorf("%w: guardedMutate - mutation failed: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableInUse):
			s.logger.Warn("guardedMutate: table id=%d: %v", id, err)
		default:
			s.logger.Error("guardedMutate: table id=%d: %v", id, err)
		}
		return err
	}

	return nil
}

// toDomainTable валидирует запрос и строит domain модель
func toDomainTable(req *models.CreateTableRequest) (*domain.Table, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	area := domain.Area(req.Area)
	if !area.IsValid() {
		return nil, fmt.Errorf("%w: unknown area %q", ErrInvalidInput, req.Area)
	}

	return &domain.Table{
		Code:       code,
		Capacity:   req.Capacity,
		Area:       area,
		MergeGroup: req.MergeGroup,
		Active:     true,
	}, nil
}

// applyUpdate накладывает изменения запроса на domain модель
func applyUpdate(table *domain.Table, req *models.UpdateTableRequest) error {
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return fmt.Errorf("%w: code cannot be empty", ErrInvalidInput)
		}
		table.Code = code
	}

	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		table.Capacity = *req.Capacity
	}

	if req.Area != nil {
		area := domain.Area(*req.Area)
		if !area.IsValid() {
			return fmt.Errorf("%w: unknown area %q", ErrInvalidInput, *req.Area)
		}
		table.Area = area
	}

	if req.MergeGroup != nil {
		if *req.MergeGroup == "" {
			table.MergeGroup = nil
		} else {
			table.MergeGroup = req.MergeGroup
		}
	}

	return nil
}
