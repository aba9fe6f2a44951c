package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	"github.com/akimovs/TRS-TableService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	byToken   map[string]*domain.Booking
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByManageToken(_ context.Context, token string) (*domain.Booking, error) {
	b, ok := f.byToken[token]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) CancelAndFreeTables(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBookingRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.byID))
	for _, b := range f.byID {
		result = append(result, b)
	}
	return result, nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return f.customer, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent int
}

func (f *fakeMailer) SendBookingCancelled(_ context.Context, _, _, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(bookings *fakeBookingRepo, customers *fakeCustomerRepo, mail *fakeMailer) *Service {
	return NewService(bookings, customers, mail, fakeTxManager{}, nopLogger{})
}

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		AppointmentAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC),
		PartySize:     2,
		Status:        domain.StatusConfirmed,
		CustomerID:    ptr.Ptr(int64(7)),
		ManageToken:   ptr.Ptr("token-1"),
	}
}

func TestCancel_ConfirmedBookingIsRejected(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{42: confirmedBooking(42)}}
	mail := &fakeMailer{}
	svc := newTestService(bookings, &fakeCustomerRepo{customer: &domain.Customer{ID: 7, Email: "a@b.c", Name: "Anna"}}, mail)

	err := svc.Cancel(context.Background(), 42)

	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Empty(t, bookings.cancelled, "confirmed booking stays untouched without its manage token")
	assert.Zero(t, mail.sentCount())
}

func TestCancel_PendingHoldIsSilent(t *testing.T) {
	hold := confirmedBooking(42)
	hold.Status = domain.StatusPending
	hold.CustomerID = nil

	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{42: hold}}
	mail := &fakeMailer{}
	svc := newTestService(bookings, &fakeCustomerRepo{}, mail)

	require.NoError(t, svc.Cancel(context.Background(), 42))

	assert.Equal(t, []int64{42}, bookings.cancelled)
	assert.Zero(t, mail.sentCount(), "no mail for an unconfirmed hold")
}

func TestCancel_AlreadyCancelledIsIdempotent(t *testing.T) {
	done := confirmedBooking(42)
	done.Status = domain.StatusCancelled

	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{42: done}}
	mail := &fakeMailer{}
	svc := newTestService(bookings, &fakeCustomerRepo{}, mail)

	require.NoError(t, svc.Cancel(context.Background(), 42))

	assert.Empty(t, bookings.cancelled, "terminal booking is left untouched")
	assert.Zero(t, mail.sentCount())
}

func TestCancel_UnknownBooking(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}}, &fakeCustomerRepo{}, &fakeMailer{})

	err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelByManageToken(t *testing.T) {
	booking := confirmedBooking(42)
	bookings := &fakeBookingRepo{
		byID:    map[int64]*domain.Booking{42: booking},
		byToken: map[string]*domain.Booking{"token-1": booking},
	}
	mail := &fakeMailer{}
	svc := newTestService(bookings, &fakeCustomerRepo{customer: &domain.Customer{ID: 7, Email: "a@b.c"}}, mail)

	require.NoError(t, svc.CancelByManageToken(context.Background(), "token-1"))
	assert.Equal(t, []int64{42}, bookings.cancelled)
	assert.Eventually(t, func() bool { return mail.sentCount() == 1 },
		time.Second, 10*time.Millisecond, "cancellation mail goes to the guest")

	err := svc.CancelByManageToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	err = svc.CancelByManageToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID(t *testing.T) {
	bookings := &fakeBookingRepo{byID: map[int64]*domain.Booking{42: confirmedBooking(42)}}
	svc := newTestService(bookings, &fakeCustomerRepo{}, &fakeMailer{})

	resp, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
