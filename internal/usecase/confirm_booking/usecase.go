package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
)

// UseCase use case подтверждения холда: холд превращается в бронь,
// создается или обновляется клиент, выпускается self-service токен
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	mailer       MailSender
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	mailer MailSender,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		mailer:       mailer,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения холда.
// Письмо-подтверждение уходит после коммита и не влияет на результат:
// сбой доставки логируется, бронь остается подтвержденной.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, email=%s", req.BookingID, req.Email)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result   *Response
		customer *domain.Customer
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Проверяем состояние холда
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.Status != domain.StatusPending {
			return ErrAlreadyProcessed
		}

		if !booking.CanBeConfirmed(now) {
			return ErrHoldExpired
		}

		// 3. Создаем или обновляем клиента по email
		customer = &domain.Customer{
			Email:            strings.ToLower(strings.TrimSpace(req.Email)),
			Name:             strings.TrimSpace(req.Name),
			Surname:          strings.TrimSpace(req.Surname),
			Phone:            req.Phone,
			ConsentMarketing: req.ConsentMarketing,
			ConsentProfiling: req.ConsentProfiling,
			ConsentPrivacy:   req.ConsentPrivacy,
		}

		customer, err = uc.customerRepo.UpsertByEmail(txCtx, customer)
		if err != nil {
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 4. Подтверждаем бронь с новым self-service токеном
		manageToken := uuid.NewString()

		err = uc.bookingRepo.SetConfirmed(txCtx, booking.ID, customer.ID, manageToken, req.Notes)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				// Конкурентное подтверждение или отмена успели раньше
				return ErrAlreadyProcessed
			}
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		result = &Response{
			BookingID:     booking.ID,
			ManageToken:   manageToken,
			AppointmentAt: booking.AppointmentAt,
			CustomerID:    customer.ID,
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAlreadyProcessed),
			errors.Is(err, ErrHoldExpired):
			uc.logger.Warn("ConfirmBooking: booking=%d: %v", req.BookingID, err)
		default:
			uc.logger.Error("ConfirmBooking: booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking=%d confirmed for customer=%d", result.BookingID, result.CustomerID)

	// 5. Письмо-подтверждение после коммита, fire-and-forget
	go uc.mailer.SendBookingConfirmed(
		context.WithoutCancel(ctx),
		customer.Email,
		customer.Name,
		result.AppointmentAt.Format(time.RFC3339),
		result.ManageToken,
	)

	return result, nil
}
