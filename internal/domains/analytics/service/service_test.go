package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hallbook/config"
	"hallbook/infras/otel/mocks"
	analyticsMocks "hallbook/internal/domains/analytics/mocks"
	"hallbook/internal/domains/analytics/model"
	"hallbook/internal/domains/analytics/service"
	"hallbook/shared/cache"
	cacheMocks "hallbook/shared/cache/mocks"
)

type serviceMocks struct {
	repo  *analyticsMocks.MockAnalytics
	cache *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Analytics, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:  analyticsMocks.NewMockAnalytics(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func TestAnalyticsService_Summary(t *testing.T) {
	t.Run("returns summary on cache miss", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			Summary(gomock.Any()).
			Return(model.Summary{
				TotalRevenue:      1250.50,
				TotalDeposits:     150,
				ConfirmedBookings: 4,
				PendingBookings:   2,
				CancelledBookings: 1,
			}, nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Summary(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1250.50, res.TotalRevenue)
		assert.Equal(t, 4, res.ConfirmedBookings)
		assert.Equal(t, 2, res.PendingBookings)
		assert.Equal(t, 1, res.CancelledBookings)
	})

	t.Run("fails when repository errors", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			Summary(gomock.Any()).
			Return(model.Summary{}, errors.New("database error"))

		_, err := svc.Summary(context.Background())

		assert.Error(t, err)
	})
}

func TestAnalyticsService_MonthlyRevenue(t *testing.T) {
	t.Run("returns revenue per month for the year", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			MonthlyRevenue(gomock.Any(), 2026).
			Return([]model.MonthlyRevenue{
				{Month: 1, Revenue: 500, Bookings: 2},
				{Month: 3, Revenue: 750.50, Bookings: 3},
			}, nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.MonthlyRevenue(context.Background(), 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2026, res.Year)
		assert.Len(t, res.Months, 2)
		assert.Equal(t, 3, res.Months[1].Month)
		assert.Equal(t, 750.50, res.Months[1].Revenue)
	})

	t.Run("fails when repository errors", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			MonthlyRevenue(gomock.Any(), 2026).
			Return(nil, errors.New("database error"))

		_, err := svc.MonthlyRevenue(context.Background(), 2026)

		assert.Error(t, err)
	})
}

func TestAnalyticsService_HallPerformance(t *testing.T) {
	t.Run("returns top halls by revenue", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			HallPerformance(gomock.Any(), 5).
			Return([]model.HallPerformance{
				{HallID: "hall-1", HallName: "Grand Ballroom", Bookings: 10, Revenue: 5000},
				{HallID: "hall-2", HallName: "Garden Pavilion", Bookings: 4, Revenue: 1200},
			}, nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.HallPerformance(context.Background(), 5)

		assert.NoError(t, err)
		assert.Len(t, res.Halls, 2)
		assert.Equal(t, "Grand Ballroom", res.Halls[0].HallName)
		assert.Equal(t, float64(5000), res.Halls[0].Revenue)
	})

	t.Run("defaults the limit when not positive", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			HallPerformance(gomock.Any(), 10).
			Return([]model.HallPerformance{}, nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.HallPerformance(context.Background(), 0)

		assert.NoError(t, err)
		assert.Empty(t, res.Halls)
	})
}
