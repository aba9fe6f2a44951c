package tables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/internal/domain"
	tableRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/table"
	"github.com/akimovs/TRS-TableService/internal/service/tables/models"
	"github.com/akimovs/TRS-TableService/pkg/ptr"
)

type fakeTableRepo struct {
	table       *domain.Table
	createErr   error
	futureCount int
	totalCount  int
	deleteErr   error

	updated     *domain.Table
	setActiveTo *bool
	deleted     bool
}

func (f *fakeTableRepo) Create(_ context.Context, table *domain.Table) (*domain.Table, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *table
	created.ID = 5
	return &created, nil
}

func (f *fakeTableRepo) GetByID(_ context.Context, _ int64) (*domain.Table, error) {
	if f.table == nil {
		return nil, tableRepo.ErrTableNotFound
	}
	copied := *f.table
	return &copied, nil
}

func (f *fakeTableRepo) ListAll(_ context.Context) ([]*domain.Table, error) {
	if f.table == nil {
		return nil, nil
	}
	return []*domain.Table{f.table}, nil
}

func (f *fakeTableRepo) Update(_ context.Context, table *domain.Table) error {
	f.updated = table
	return nil
}

func (f *fakeTableRepo) SetActive(_ context.Context, _ int64, active bool) error {
	f.setActiveTo = &active
	return nil
}

func (f *fakeTableRepo) CountFutureAllocations(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.futureCount, nil
}

func (f *fakeTableRepo) CountAllocations(_ context.Context, _ int64) (int, error) {
	return f.totalCount, nil
}

func (f *fakeTableRepo) Delete(_ context.Context, _ int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
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

func activeTable() *domain.Table {
	return &domain.Table{
		ID:       5,
		Code:     "T12",
		Capacity: 4,
		Area:     domain.AreaIndoor,
		Active:   true,
	}
}

func newTestService(repo *fakeTableRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func TestCreate(t *testing.T) {
	svc := newTestService(&fakeTableRepo{})

	resp, err := svc.Create(context.Background(), &models.CreateTableRequest{
		Code:     " T12 ",
		Capacity: 4,
		Area:     "indoor",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "T12", resp.Code, "code is trimmed")
	assert.True(t, resp.Active, "new tables start active")
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&fakeTableRepo{})

	_, err := svc.Create(context.Background(), &models.CreateTableRequest{Code: "", Capacity: 4, Area: "indoor"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTableRequest{Code: "T1", Capacity: 0, Area: "indoor"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTableRequest{Code: "T1", Capacity: 4, Area: "rooftop"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_CodeTaken(t *testing.T) {
	svc := newTestService(&fakeTableRepo{createErr: tableRepo.ErrTableCodeTaken})

	_, err := svc.Create(context.Background(), &models.CreateTableRequest{Code: "T1", Capacity: 4, Area: "indoor"})
	assert.ErrorIs(t, err, ErrTableCodeTaken)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := &fakeTableRepo{table: activeTable()}
	svc := newTestService(repo)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateTableRequest{
		Capacity:   ptr.Ptr(6),
		MergeGroup: ptr.Ptr("G1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "T12", resp.Code, "untouched fields keep their values")
	assert.Equal(t, 6, resp.Capacity)
	require.NotNil(t, resp.MergeGroup)
	assert.Equal(t, "G1", *resp.MergeGroup)
}

func TestUpdate_EmptyMergeGroupClearsIt(t *testing.T) {
	table := activeTable()
	table.MergeGroup = ptr.Ptr("G1")

	svc := newTestService(&fakeTableRepo{table: table})

	resp, err := svc.Update(context.Background(), 5, &models.UpdateTableRequest{
		MergeGroup: ptr.Ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.MergeGroup)
}

func TestDeactivate_BlockedByFutureBookings(t *testing.T) {
	repo := &fakeTableRepo{table: activeTable(), futureCount: 2}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), 5)
	assert.ErrorIs(t, err, ErrTableInUse)
	assert.Nil(t, repo.setActiveTo)
}

func TestDeactivateAndDelete(t *testing.T) {
	repo := &fakeTableRepo{table: activeTable()}
	svc := newTestService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), 5))
	require.NotNil(t, repo.setActiveTo)
	assert.False(t, *repo.setActiveTo)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.True(t, repo.deleted)
}

func TestDelete_BlockedByPastAllocations(t *testing.T) {
	// Будущих аллокаций нет, но история посадок за столом есть:
	// деактивация разрешена, удаление - нет
	repo := &fakeTableRepo{table: activeTable(), futureCount: 0, totalCount: 3}
	svc := newTestService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), 5))

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrTableInUse)
	assert.False(t, repo.deleted)
}

func TestDelete_ForeignKeyRaceMapsToInUse(t *testing.T) {
	repo := &fakeTableRepo{table: activeTable(), deleteErr: tableRepo.ErrTableHasBookings}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrTableInUse)
}

func TestDeactivate_NotFound(t *testing.T) {
	svc := newTestService(&fakeTableRepo{})

	err := svc.Deactivate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTableNotFound)
}
