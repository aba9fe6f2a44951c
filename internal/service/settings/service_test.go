package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
	"github.com/akimovs/TRS-TableService/internal/service/settings/models"
	"github.com/akimovs/TRS-TableService/pkg/ptr"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

type fakeRuleRepo struct {
	rule     *domain.ReservationRule
	getErr   error
	upserted *domain.ReservationRule
}

func (f *fakeRuleRepo) GetActive(_ context.Context) (*domain.ReservationRule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rule, nil
}

func (f *fakeRuleRepo) Upsert(_ context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error) {
	f.upserted = rule
	return rule, nil
}

type fakeScheduleRepo struct {
	weekly   []*domain.OpeningHour
	replaced []*domain.OpeningHour
	special  *domain.SpecialHour
	blackout *domain.BlackoutSlot
	deleted  []int64
}

func (f *fakeScheduleRepo) GetWeeklyHours(_ context.Context) ([]*domain.OpeningHour, error) {
	return f.weekly, nil
}

func (f *fakeScheduleRepo) ReplaceWeeklyHours(_ context.Context, hours []*domain.OpeningHour) error {
	f.replaced = hours
	return nil
}

func (f *fakeScheduleRepo) UpsertSpecial(_ context.Context, special *domain.SpecialHour) (*domain.SpecialHour, error) {
	f.special = special
	return special, nil
}

func (f *fakeScheduleRepo) ListBlackoutsInWindow(_ context.Context, _, _ time.Time) ([]*domain.BlackoutSlot, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) CreateBlackout(_ context.Context, blackout *domain.BlackoutSlot) (*domain.BlackoutSlot, error) {
	created := *blackout
	created.ID = 3
	f.blackout = &created
	return &created, nil
}

func (f *fakeScheduleRepo) DeleteBlackout(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(rules *fakeRuleRepo, schedule *fakeScheduleRepo) *Service {
	return NewService(rules, schedule, fakeTxManager{}, nopLogger{})
}

func TestGetRule_FallsBackToDefaults(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{getErr: ruleRepo.ErrRuleNotFound}, &fakeScheduleRepo{})

	resp, err := svc.GetRule(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSeatDurationMinutes, resp.SeatDurationMinutes)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotIntervalMinutes)
	assert.Nil(t, resp.MaxCoversPerSlot)
}

func TestUpdateRule(t *testing.T) {
	rules := &fakeRuleRepo{}
	svc := newTestService(rules, &fakeScheduleRepo{})

	resp, err := svc.UpdateRule(context.Background(), &models.RuleRequest{
		SeatDurationMinutes: 120,
		SlotIntervalMinutes: 30,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  10,
		MaxCoversPerSlot:    ptr.Ptr(40),
	})
	require.NoError(t, err)

	assert.Equal(t, 120, resp.SeatDurationMinutes)
	require.NotNil(t, rules.upserted)
	assert.Equal(t, 30, rules.upserted.SlotIntervalMinutes)
}

func TestUpdateRule_Validation(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{}, &fakeScheduleRepo{})

	_, err := svc.UpdateRule(context.Background(), &models.RuleRequest{
		SeatDurationMinutes: 0,
		SlotIntervalMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateRule(context.Background(), &models.RuleRequest{
		SeatDurationMinutes: 90,
		SlotIntervalMinutes: 15,
		BufferBeforeMinutes: -5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceHours(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	svc := newTestService(&fakeRuleRepo{}, schedule)

	resp, err := svc.ReplaceHours(context.Background(), &models.HoursRequest{
		Hours: []models.WeekdayHours{
			{Weekday: 1, OpenTime: "18:00", CloseTime: "23:00"},
			{Weekday: 2, OpenTime: "18:00", CloseTime: "23:00"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Hours, 2)
	require.Len(t, schedule.replaced, 2)
	assert.Equal(t, time.Monday, schedule.replaced[0].Weekday)
}

func TestReplaceHours_Validation(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{}, &fakeScheduleRepo{})

	_, err := svc.ReplaceHours(context.Background(), &models.HoursRequest{
		Hours: []models.WeekdayHours{{Weekday: 7, OpenTime: "18:00", CloseTime: "23:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ReplaceHours(context.Background(), &models.HoursRequest{
		Hours: []models.WeekdayHours{
			{Weekday: 1, OpenTime: "18:00", CloseTime: "23:00"},
			{Weekday: 1, OpenTime: "10:00", CloseTime: "14:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "duplicate weekday")

	_, err = svc.ReplaceHours(context.Background(), &models.HoursRequest{
		Hours: []models.WeekdayHours{{Weekday: 1, OpenTime: "23:00", CloseTime: "18:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "open must precede close")
}

func TestUpsertSpecialHours(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	svc := newTestService(&fakeRuleRepo{}, schedule)

	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.UpsertSpecialHours(context.Background(), &models.SpecialHoursRequest{
		Date:   date,
		Closed: true,
	}))
	require.NotNil(t, schedule.special)
	assert.True(t, schedule.special.Closed)

	require.NoError(t, svc.UpsertSpecialHours(context.Background(), &models.SpecialHoursRequest{
		Date:      date,
		OpenTime:  ptr.Ptr("12:00"),
		CloseTime: ptr.Ptr("16:00"),
	}))
	require.NotNil(t, schedule.special.OpenTime)
	assert.Equal(t, types.TimeString("12:00"), *schedule.special.OpenTime)

	// Открытый день без часов недопустим
	err := svc.UpsertSpecialHours(context.Background(), &models.SpecialHoursRequest{Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlackouts(t *testing.T) {
	schedule := &fakeScheduleRepo{}
	svc := newTestService(&fakeRuleRepo{}, schedule)

	start := time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC)

	resp, err := svc.CreateBlackout(context.Background(), &models.BlackoutRequest{
		StartAt: start,
		EndAt:   start.Add(2 * time.Hour),
		Reason:  ptr.Ptr("private event"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)

	_, err = svc.CreateBlackout(context.Background(), &models.BlackoutRequest{
		StartAt: start,
		EndAt:   start,
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "empty interval")

	require.NoError(t, svc.DeleteBlackout(context.Background(), 3))
	assert.Equal(t, []int64{3}, schedule.deleted)
}
