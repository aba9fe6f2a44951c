package confirm_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	getErr       error
	confirmErr   error
	confirmedID  int64
	confirmToken string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) SetConfirmed(_ context.Context, id, _ int64, manageToken string, _ *string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedID = id
	f.confirmToken = manageToken
	return nil
}

type fakeCustomerRepo struct {
	upserted *domain.Customer
}

func (f *fakeCustomerRepo) UpsertByEmail(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	saved := *customer
	saved.ID = 7
	f.upserted = &saved
	return &saved, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  int
	email string
}

func (f *fakeMailer) SendBookingConfirmed(_ context.Context, email, _, _, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	f.email = email
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var confirmNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func pendingBooking(expiresAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            42,
		AppointmentAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC),
		PartySize:     2,
		Status:        domain.StatusPending,
		HoldExpiresAt: &expiresAt,
	}
}

func validRequest() *Request {
	return &Request{
		BookingID:      42,
		Name:           "Anna",
		Surname:        "Rossi",
		Email:          " Anna.Rossi@Example.com ",
		ConsentPrivacy: true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, customers *fakeCustomerRepo, mail *fakeMailer) *UseCase {
	uc := NewUseCase(bookings, customers, mail, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: confirmNow}
	return uc
}

func TestConfirmBooking_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking(confirmNow.Add(5 * time.Minute))}
	customers := &fakeCustomerRepo{}
	mail := &fakeMailer{}

	uc := newTestUseCase(bookings, customers, mail)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, int64(7), resp.CustomerID)
	assert.NotEmpty(t, resp.ManageToken)
	assert.Equal(t, resp.ManageToken, bookings.confirmToken)

	// Email нормализуется перед upsert
	require.NotNil(t, customers.upserted)
	assert.Equal(t, "anna.rossi@example.com", customers.upserted.Email)

	assert.Eventually(t, func() bool { return mail.sentCount() == 1 },
		time.Second, 10*time.Millisecond, "confirmation mail is sent after commit")
}

func TestConfirmBooking_NotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(bookings, &fakeCustomerRepo{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmBooking_AlreadyProcessed(t *testing.T) {
	booking := pendingBooking(confirmNow.Add(5 * time.Minute))
	booking.Status = domain.StatusConfirmed

	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeCustomerRepo{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestConfirmBooking_HoldExpired(t *testing.T) {
	mail := &fakeMailer{}
	uc := newTestUseCase(
		&fakeBookingRepo{booking: pendingBooking(confirmNow.Add(-time.Minute))},
		&fakeCustomerRepo{},
		mail,
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Zero(t, mail.sentCount())
}

func TestConfirmBooking_ConcurrentConfirmMapsToAlreadyProcessed(t *testing.T) {
	// GetByID видит pending, но SetConfirmed уже не находит pending строку
	bookings := &fakeBookingRepo{
		booking:    pendingBooking(confirmNow.Add(5 * time.Minute)),
		confirmErr: bookingRepo.ErrBookingNotFound,
	}
	uc := newTestUseCase(bookings, &fakeCustomerRepo{}, &fakeMailer{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestConfirmBooking_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCustomerRepo{}, &fakeMailer{})

	noEmail := validRequest()
	noEmail.Email = "not-an-email"
	_, err := uc.Execute(context.Background(), noEmail)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noConsent := validRequest()
	noConsent.ConsentPrivacy = false
	_, err = uc.Execute(context.Background(), noConsent)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noName := validRequest()
	noName.Name = "  "
	_, err = uc.Execute(context.Background(), noName)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
