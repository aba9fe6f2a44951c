package waitlistnotifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/internal/usecase/get_availability"
)

type fakeWaitlistRepo struct {
	entries  []*domain.WaitlistEntry
	expired  int64
	notified []int64
	markErr  error
}

func (f *fakeWaitlistRepo) ExpireStale(_ context.Context, _ time.Time) (int64, error) {
	return f.expired, nil
}

func (f *fakeWaitlistRepo) ListOpen(_ context.Context, _ time.Time) ([]*domain.WaitlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWaitlistRepo) MarkNotified(_ context.Context, id int64, _ time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.notified = append(f.notified, id)
	return nil
}

type fakeAvailability struct {
	available bool
}

func (f *fakeAvailability) Execute(_ context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	return &get_availability.Response{
		Date:  req.Date,
		Slots: []get_availability.Slot{{Time: "19:00", Available: f.available}},
	}, nil
}

type fakeMailer struct {
	sentTo  []string
	sendErr error
}

func (f *fakeMailer) SendWaitlistSlotOpen(_ context.Context, email, _, _ string) error {
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

func openEntry(id int64) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:        id,
		Date:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		PartySize: 2,
		Email:     "guest@example.com",
		Name:      "Anna",
		Status:    domain.WaitlistOpen,
	}
}

func newTestWorker(repo *fakeWaitlistRepo, availability *fakeAvailability, mail *fakeMailer) *Worker {
	w := NewWorker(repo, availability, mail, time.Minute, nopLogger{})
	w.timeProvider = &fixedTime{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	return w
}

func TestTick_NotifiesWhenSlotFreed(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{openEntry(1), openEntry(2)}}
	mail := &fakeMailer{}

	newTestWorker(repo, &fakeAvailability{available: true}, mail).Tick(context.Background())

	assert.Equal(t, []int64{1, 2}, repo.notified)
	assert.Len(t, mail.sentTo, 2)
}

func TestTick_NoSlotNoMail(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{openEntry(1)}}
	mail := &fakeMailer{}

	newTestWorker(repo, &fakeAvailability{available: false}, mail).Tick(context.Background())

	assert.Empty(t, repo.notified)
	assert.Empty(t, mail.sentTo)
}

func TestTick_MarkBeforeMail(t *testing.T) {
	// Если запись не удалось пометить, письмо не отправляется:
	// двойное уведомление хуже пропущенного
	repo := &fakeWaitlistRepo{
		entries: []*domain.WaitlistEntry{openEntry(1)},
		markErr: errors.New("lost race"),
	}
	mail := &fakeMailer{}

	newTestWorker(repo, &fakeAvailability{available: true}, mail).Tick(context.Background())

	assert.Empty(t, mail.sentTo)
}

func TestTick_MailFailureKeepsEntryNotified(t *testing.T) {
	repo := &fakeWaitlistRepo{entries: []*domain.WaitlistEntry{openEntry(1)}}
	mail := &fakeMailer{sendErr: errors.New("smtp down")}

	newTestWorker(repo, &fakeAvailability{available: true}, mail).Tick(context.Background())

	assert.Equal(t, []int64{1}, repo.notified, "entry stays notified even if the mail failed")
}
