package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	listFrom time.Time
	listTo   time.Time
	marked   []int64
}

func (f *fakeBookingRepo) ListConfirmedForReminder(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	f.listFrom = from
	f.listTo = to
	return f.bookings, nil
}

func (f *fakeBookingRepo) MarkReminderSent(_ context.Context, id int64, _ time.Time) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakeCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

type fakeMailer struct {
	sentTo  []string
	sendErr error
}

func (f *fakeMailer) SendBookingReminder(_ context.Context, email, _, _ string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTo = append(f.sentTo, email)
	return nil
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

var reminderNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func tomorrowBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		AppointmentAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC),
		PartySize:     2,
		Status:        domain.StatusConfirmed,
		CustomerID:    ptr.Ptr(int64(7)),
	}
}

func newTestWorker(bookings *fakeBookingRepo, customers *fakeCustomerRepo, mail *fakeMailer) *Worker {
	w := NewWorker(bookings, customers, mail, time.Hour, nopLogger{})
	w.timeProvider = &fixedTime{now: reminderNow}
	return w
}

func TestTick_RemindsTomorrowsBookings(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{tomorrowBooking(1), tomorrowBooking(2)}}
	mail := &fakeMailer{}

	newTestWorker(bookings, &fakeCustomerRepo{customer: &domain.Customer{ID: 7, Email: "a@b.c", Name: "Anna"}}, mail).
		Tick(context.Background())

	// Окно выборки - весь завтрашний день
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), bookings.listFrom)
	assert.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), bookings.listTo)

	assert.Len(t, mail.sentTo, 2)
	assert.Equal(t, []int64{1, 2}, bookings.marked)
}

func TestTick_MailFailureLeavesBookingUnmarked(t *testing.T) {
	// Неотправленное письмо уйдет на следующем проходе
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{tomorrowBooking(1)}}
	mail := &fakeMailer{sendErr: errors.New("smtp down")}

	newTestWorker(bookings, &fakeCustomerRepo{customer: &domain.Customer{ID: 7, Email: "a@b.c"}}, mail).
		Tick(context.Background())

	assert.Empty(t, bookings.marked)
}

func TestTick_SkipsBookingWithoutCustomer(t *testing.T) {
	orphan := tomorrowBooking(1)
	orphan.CustomerID = nil

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{orphan}}
	mail := &fakeMailer{}

	newTestWorker(bookings, &fakeCustomerRepo{}, mail).Tick(context.Background())

	assert.Empty(t, mail.sentTo)
	assert.Empty(t, bookings.marked)
}
