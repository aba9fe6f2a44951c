package create_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
)

type fakeBookingRepo struct {
	sweepCalls     int
	occupying      []*domain.Booking
	created        *domain.Booking
	insertedAllocs []domain.TableAllocation
	insertErr      error
}

func (f *fakeBookingRepo) SweepExpiredHolds(_ context.Context, _ time.Time) (int64, error) {
	f.sweepCalls++
	return 0, nil
}

func (f *fakeBookingRepo) ListOccupyingInWindow(_ context.Context, _, _, _ time.Time) ([]*domain.Booking, error) {
	return f.occupying, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 42
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) InsertAllocations(_ context.Context, _ int64, allocs []domain.TableAllocation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedAllocs = allocs
	return nil
}

type fakeRuleRepo struct {
	rule *domain.ReservationRule
	err  error
}

func (f *fakeRuleRepo) GetActive(_ context.Context) (*domain.ReservationRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rule, nil
}

type fakeTableRepo struct {
	tables []*domain.Table
}

func (f *fakeTableRepo) ListActive(_ context.Context) ([]*domain.Table, error) {
	return f.tables, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
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
	holdNow         = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	holdAppointment = time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC)
)

func newTestUseCase(bookings *fakeBookingRepo, rules *fakeRuleRepo, tables *fakeTableRepo) *UseCase {
	uc := NewUseCase(bookings, rules, tables, fakeTxManager{}, 10*time.Minute, nopLogger{})
	uc.timeProvider = &fixedTime{now: holdNow}
	return uc
}

func testRule() *domain.ReservationRule {
	return &domain.ReservationRule{
		SeatDurationMinutes: 90,
		SlotIntervalMinutes: 15,
		Active:              true,
	}
}

func TestCreateHold_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(
		bookings,
		&fakeRuleRepo{rule: testRule()},
		&fakeTableRepo{tables: []*domain.Table{
			{ID: 1, Capacity: 2, Area: domain.AreaIndoor, Active: true},
			{ID: 2, Capacity: 4, Area: domain.AreaIndoor, Active: true},
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdAppointment,
		PartySize:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, holdNow.Add(10*time.Minute), resp.ExpiresAt)
	assert.Equal(t, []int64{2}, resp.TableIDs, "smallest sufficient table")

	assert.Equal(t, 1, bookings.sweepCalls, "expired holds are swept before picking")
	require.NotNil(t, bookings.created)
	assert.Equal(t, domain.StatusPending, bookings.created.Status)
	require.NotNil(t, bookings.created.HoldExpiresAt)

	// Окно аллокации буферизовано по правилу: [19:00, 20:30) без буферов
	require.Len(t, bookings.insertedAllocs, 1)
	assert.Equal(t, holdAppointment, bookings.insertedAllocs[0].StartAt)
	assert.Equal(t, holdAppointment.Add(90*time.Minute), bookings.insertedAllocs[0].EndAt)
}

func TestCreateHold_AreaFallback(t *testing.T) {
	area := domain.AreaOutdoor
	bookings := &fakeBookingRepo{}

	uc := newTestUseCase(
		bookings,
		&fakeRuleRepo{rule: testRule()},
		&fakeTableRepo{tables: []*domain.Table{
			{ID: 1, Capacity: 4, Area: domain.AreaIndoor, Active: true},
		}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdAppointment,
		PartySize:     2,
		Area:          &area,
	})
	require.NoError(t, err)

	// Терраса пуста, но повторный подбор по всем зонам находит стол
	assert.Equal(t, []int64{1}, resp.TableIDs)
}

func TestCreateHold_NoAvailability(t *testing.T) {
	occupiedWindow := domain.TableAllocation{
		TableID: 1,
		StartAt: holdAppointment.Add(-30 * time.Minute),
		EndAt:   holdAppointment.Add(60 * time.Minute),
	}

	uc := newTestUseCase(
		&fakeBookingRepo{occupying: []*domain.Booking{
			{ID: 7, PartySize: 2, Status: domain.StatusConfirmed, Allocations: []domain.TableAllocation{occupiedWindow}},
		}},
		&fakeRuleRepo{rule: testRule()},
		&fakeTableRepo{tables: []*domain.Table{
			{ID: 1, Capacity: 4, Area: domain.AreaIndoor, Active: true},
		}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdAppointment,
		PartySize:     2,
	})
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestCreateHold_AllocationConflictMapsToConflict(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{insertErr: bookingRepo.ErrAllocationConflict},
		&fakeRuleRepo{rule: testRule()},
		&fakeTableRepo{tables: []*domain.Table{
			{ID: 1, Capacity: 4, Area: domain.AreaIndoor, Active: true},
		}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdAppointment,
		PartySize:     2,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateHold_DefaultRuleWhenNoneConfigured(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(
		bookings,
		&fakeRuleRepo{err: ruleRepo.ErrRuleNotFound},
		&fakeTableRepo{tables: []*domain.Table{
			{ID: 1, Capacity: 4, Area: domain.AreaIndoor, Active: true},
		}},
	)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdAppointment,
		PartySize:     2,
	})
	require.NoError(t, err)

	require.Len(t, bookings.insertedAllocs, 1)
	assert.Equal(t, holdAppointment.Add(time.Duration(domain.DefaultSeatDurationMinutes)*time.Minute),
		bookings.insertedAllocs[0].EndAt)
}

func TestCreateHold_RejectsPastAppointment(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeRuleRepo{rule: testRule()}, &fakeTableRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentAt: holdNow.Add(-time.Hour),
		PartySize:     2,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
