package move_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	tableRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/table"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	conflicts int
	lockErr   error

	sweepCalls         int
	deletedAllocations bool
	updatedAt          *time.Time
	insertedAllocs     []domain.TableAllocation
}

func (f *fakeBookingRepo) SweepExpiredHolds(_ context.Context, _ time.Time) (int64, error) {
	f.sweepCalls++
	return 0, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) LockConflictingAllocations(_ context.Context, _ int64, _, _ time.Time, _ int64) (int, error) {
	if f.lockErr != nil {
		return 0, f.lockErr
	}
	return f.conflicts, nil
}

func (f *fakeBookingRepo) DeleteAllocations(_ context.Context, _ int64) error {
	f.deletedAllocations = true
	return nil
}

func (f *fakeBookingRepo) InsertAllocations(_ context.Context, _ int64, allocs []domain.TableAllocation) error {
	f.insertedAllocs = allocs
	return nil
}

func (f *fakeBookingRepo) UpdateAppointment(_ context.Context, _ int64, appointmentAt time.Time) error {
	f.updatedAt = &appointmentAt
	return nil
}

type fakeTableRepo struct {
	table *domain.Table
	err   error
}

func (f *fakeTableRepo) GetByID(_ context.Context, _ int64) (*domain.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

type fakeRuleRepo struct {
	rule *domain.ReservationRule
}

func (f *fakeRuleRepo) GetActive(_ context.Context) (*domain.ReservationRule, error) {
	return f.rule, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

var (
	moveNow    = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	moveTarget = time.Date(2025, 6, 16, 20, 0, 0, 0, time.UTC)
)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		AppointmentAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC),
		PartySize:     4,
		Status:        domain.StatusConfirmed,
		Allocations: []domain.TableAllocation{
			{TableID: 1, StartAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC), EndAt: time.Date(2025, 6, 16, 20, 30, 0, 0, time.UTC)},
		},
	}
}

func newTestUseCase(bookings *fakeBookingRepo, tables *fakeTableRepo, rules *fakeRuleRepo) *UseCase {
	uc := NewUseCase(bookings, tables, rules, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: moveNow}
	return uc
}

func moveRule() *domain.ReservationRule {
	return &domain.ReservationRule{
		SeatDurationMinutes: 90,
		SlotIntervalMinutes: 15,
		BufferBeforeMinutes: 15,
		BufferAfterMinutes:  15,
		Active:              true,
	}
}

func TestMoveBooking_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(
		bookings,
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 6, Area: domain.AreaIndoor, Active: true}},
		&fakeRuleRepo{rule: moveRule()},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, int64(5), resp.TableID)
	assert.Equal(t, moveTarget.Add(-15*time.Minute), resp.WindowStart)
	assert.Equal(t, moveTarget.Add(105*time.Minute), resp.WindowEnd)

	assert.True(t, bookings.deletedAllocations, "old allocations are replaced")
	require.NotNil(t, bookings.updatedAt)
	assert.Equal(t, moveTarget, *bookings.updatedAt)
	require.Len(t, bookings.insertedAllocs, 1)
	assert.Equal(t, int64(5), bookings.insertedAllocs[0].TableID)
}

func TestMoveBooking_CapacityGuard(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	uc := newTestUseCase(
		bookings,
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 2, Area: domain.AreaIndoor, Active: true}},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Zero(t, bookings.sweepCalls, "capacity check fails before the transaction opens")
}

func TestMoveBooking_InactiveTableLooksMissing(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{booking: confirmedBooking()},
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 6, Area: domain.AreaIndoor, Active: false}},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestMoveBooking_TargetTableOccupied(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{booking: confirmedBooking(), conflicts: 1},
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 6, Area: domain.AreaIndoor, Active: true}},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMoveBooking_LockedRowMapsToConflict(t *testing.T) {
	// FOR UPDATE NOWAIT на занятой конкурентом строке
	uc := newTestUseCase(
		&fakeBookingRepo{booking: confirmedBooking(), lockErr: bookingRepo.ErrAllocationConflict},
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 6, Area: domain.AreaIndoor, Active: true}},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMoveBooking_TerminalBooking(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled

	uc := newTestUseCase(
		&fakeBookingRepo{booking: booking},
		&fakeTableRepo{table: &domain.Table{ID: 5, Capacity: 6, Area: domain.AreaIndoor, Active: true}},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestMoveBooking_NotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound},
		&fakeTableRepo{err: tableRepo.ErrTableNotFound},
		&fakeRuleRepo{rule: moveRule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveTarget,
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMoveBooking_RejectsPastTime(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTableRepo{}, &fakeRuleRepo{rule: moveRule()})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		AppointmentAt: moveNow.Add(-time.Hour),
		TableID:       5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
