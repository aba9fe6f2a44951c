package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	"github.com/akimovs/TRS-TableService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	mailer       MailSender
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	mailer MailSender,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет холд по ID и освобождает его столы.
// ID бронирований последовательные и публичные, поэтому по ID отменяется
// только pending холд: подтвержденная бронь требует manage токена и
// возвращает ErrAlreadyConfirmed.
// Операция идемпотентна: повторная отмена уже отмененного бронирования
// не является ошибкой.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling hold id=%d", id)

	_, err := s.cancel(ctx, false, func(txCtx context.Context) (*domain.Booking, error) {
		return s.bookingRepo.GetByID(txCtx, id)
	})

	return err
}

// CancelByManageToken отменяет бронирование по self-service токену.
// Неизвестный токен - это 404, повторная отмена - нет.
func (s *Service) CancelByManageToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: manage token is required", ErrInvalidInput)
	}

	s.logger.Info("CancelByManageToken: cancelling booking by token")

	booking, err := s.cancel(ctx, true, func(txCtx context.Context) (*domain.Booking, error) {
		return s.bookingRepo.GetByManageToken(txCtx, token)
	})
	if err != nil {
		return err
	}

	s.notifyCancelled(ctx, booking)

	return nil
}

// cancel общий идемпотентный сценарий отмены. Возвращает бронирование,
// если оно было подтвержденным и реально отменено этой операцией -
// только в этом случае гостю уходит письмо.
// allowConfirmed=false ограничивает отмену pending холдами.
func (s *Service) cancel(ctx context.Context, allowConfirmed bool, fetch func(ctx context.Context) (*domain.Booking, error)) (*domain.Booking, error) {
	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := fetch(txCtx)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: cancel - repository error: %v", ErrInternal, err)
		}

		// Уже в терминальном статусе - отменять нечего
		if !booking.CanBeCancelled() {
			s.logger.Info("cancel: booking id=%d already in status %s", booking.ID, booking.Status)
			return nil
		}

		if booking.Status == domain.StatusConfirmed && !allowConfirmed {
			return fmt.Errorf("%w: booking id=%d", ErrAlreadyConfirmed, booking.ID)
		}

		if err := s.bookingRepo.CancelAndFreeTables(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: cancel - failed to cancel booking: %v", ErrInternal, err)
		}

		if booking.Status == domain.StatusConfirmed {
			cancelled = booking
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAlreadyConfirmed) {
			s.logger.Warn("cancel: %v", err)
		} else {
			s.logger.Error("cancel: %v", err)
		}
		return nil, err
	}

	return cancelled, nil
}

// notifyCancelled отправляет гостю уведомление об отмене, fire-and-forget
func (s *Service) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	if booking == nil || booking.CustomerID == nil {
		return
	}

	customer, err := s.customerRepo.GetByID(ctx, *booking.CustomerID)
	if err != nil {
		s.logger.Warn("notifyCancelled: failed to get customer id=%d: %v", *booking.CustomerID, err)
		return
	}

	go s.mailer.SendBookingCancelled(
		context.WithoutCancel(ctx),
		customer.Email,
		customer.Name,
		booking.AppointmentAt.Format(time.RFC3339),
	)
}

// ListByDate возвращает все бронирования на дату для админского календаря
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}
