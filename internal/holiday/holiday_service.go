package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	holidayerrors "go-hrm/internal/holiday/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	dateSetCacheKey = "holidays:dates"
	dateSetCacheTTL = 10 * time.Minute
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id int) (HolidayResponse, error)
	Update(ctx context.Context, id int, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id int) error

	// DateSet returns the holiday dates keyed by YYYY-MM-DD. Used by the
	// leave admission check to exclude non-working days.
	DateSet(ctx context.Context) (map[string]struct{}, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	h := &Holiday{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidateDateSet(ctx)
	s.logger.Info("holiday created",
		zap.Int("holiday_id", h.HolidayID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	if req.Title != nil {
		h.Title = *req.Title
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
		}
		h.Date = date
	}

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("update holiday persist failed",
			zap.Int("holiday_id", id),
			zap.Error(err),
		)
		return HolidayResponse{}, err
	}

	s.invalidateDateSet(ctx)
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateDateSet(ctx)
	return nil
}

func (s *service) DateSet(ctx context.Context) (map[string]struct{}, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dateSetCacheKey).Result(); err == nil {
			var keys []string
			if err := json.Unmarshal([]byte(cached), &keys); err == nil {
				set := make(map[string]struct{}, len(keys))
				for _, k := range keys {
					set[k] = struct{}{}
				}
				return set, nil
			}
		}
	}

	// Collapse concurrent cache misses into one query.
	v, err, _ := s.sf.Do(dateSetCacheKey, func() (any, error) {
		dates, err := s.repo.ListDates(ctx)
		if err != nil {
			return nil, err
		}

		keys := make([]string, len(dates))
		set := make(map[string]struct{}, len(dates))
		for i, d := range dates {
			key := d.Format(dateLayout)
			keys[i] = key
			set[key] = struct{}{}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(keys); err == nil {
				if err := s.rdb.Set(ctx, dateSetCacheKey, payload, dateSetCacheTTL).Err(); err != nil {
					s.logger.Warn("cache holiday dates failed", zap.Error(err))
				}
			}
		}

		return set, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[string]struct{}), nil
}

func (s *service) invalidateDateSet(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, dateSetCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate holiday date cache failed", zap.Error(err))
	}
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		HolidayID:   h.HolidayID,
		Title:       h.Title,
		Description: h.Description,
		Date:        h.Date.Format(dateLayout),
	}
}
