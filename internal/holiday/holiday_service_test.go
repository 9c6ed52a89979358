package holiday_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/holiday"
	holidayerrors "go-hrm/internal/holiday/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeHolidayRepository struct {
	createFn    func(ctx context.Context, h *holiday.Holiday) error
	findAllFn   func(ctx context.Context) ([]holiday.Holiday, error)
	findByIDFn  func(ctx context.Context, id int) (*holiday.Holiday, error)
	updateFn    func(ctx context.Context, h *holiday.Holiday) error
	deleteFn    func(ctx context.Context, id int) error
	listDatesFn func(ctx context.Context) ([]time.Time, error)
}

func (f *fakeHolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	if f.createFn != nil {
		return f.createFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) FindAll(ctx context.Context) ([]holiday.Holiday, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeHolidayRepository) FindByID(ctx context.Context, id int) (*holiday.Holiday, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHolidayRepository) Update(ctx context.Context, h *holiday.Holiday) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) Delete(ctx context.Context, id int) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeHolidayRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	if f.listDatesFn != nil {
		return f.listDatesFn(ctx)
	}
	return nil, nil
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates date cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, rdb)

		created := false
		repo.createFn = func(ctx context.Context, h *holiday.Holiday) error {
			assert.Equal(t, "Republic Day", h.Title)
			assert.Equal(t, "2026-01-26", h.Date.Format("2006-01-02"))
			created = true
			return nil
		}
		redisMock.ExpectDel("holidays:dates").SetVal(1)

		resp, err := svc.Create(ctx, holiday.CreateHolidayRequest{
			Title: "Republic Day",
			Date:  "2026-01-26",
		})

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "2026-01-26", resp.Date)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative malformed date", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, nil)

		_, err := svc.Create(ctx, holiday.CreateHolidayRequest{
			Title: "Oops",
			Date:  "26-01-2026",
		})

		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})
}

func TestHolidayService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, nil)

		_, err := svc.GetByID(ctx, 99)

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})
}

func TestHolidayService_DateSet(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss loads from repo and caches", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, rdb)

		repo.listDatesFn = func(ctx context.Context) ([]time.Time, error) {
			return []time.Time{
				time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		payload, _ := json.Marshal([]string{"2026-01-26", "2026-03-04"})
		redisMock.ExpectGet("holidays:dates").RedisNil()
		redisMock.ExpectSet("holidays:dates", payload, 10*time.Minute).SetVal("OK")

		set, err := svc.DateSet(ctx)

		assert.NoError(t, err)
		assert.Contains(t, set, "2026-01-26")
		assert.Contains(t, set, "2026-03-04")
		assert.Len(t, set, 2)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repo", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, rdb)

		repo.listDatesFn = func(ctx context.Context) ([]time.Time, error) {
			t.Fatal("repo must not be hit on cache hit")
			return nil, nil
		}

		payload, _ := json.Marshal([]string{"2026-01-26"})
		redisMock.ExpectGet("holidays:dates").SetVal(string(payload))

		set, err := svc.DateSet(ctx)

		assert.NoError(t, err)
		assert.Contains(t, set, "2026-01-26")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, nil)

		repo.listDatesFn = func(ctx context.Context) ([]time.Time, error) {
			return []time.Time{time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)}, nil
		}

		set, err := svc.DateSet(ctx)

		assert.NoError(t, err)
		assert.Contains(t, set, "2026-12-25")
	})
}

func TestHolidayService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, rdb)

		repo.findByIDFn = func(ctx context.Context, id int) (*holiday.Holiday, error) {
			return &holiday.Holiday{HolidayID: id, Title: "Old"}, nil
		}
		deleted := false
		repo.deleteFn = func(ctx context.Context, id int) error {
			assert.Equal(t, 3, id)
			deleted = true
			return nil
		}
		redisMock.ExpectDel("holidays:dates").SetVal(1)

		err := svc.Delete(ctx, 3)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, nil)

		err := svc.Delete(ctx, 99)

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})
}
