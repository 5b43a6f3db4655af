package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"hallbook/config"
	"hallbook/infras/otel"
	"hallbook/internal/domains/analytics/model/dto"
	"hallbook/internal/domains/analytics/repository"
	"hallbook/shared"
	"hallbook/shared/cache"
	"hallbook/shared/constant"
)

const (
	cacheSummary         = "analytics:summary"
	cacheMonthlyRevenue  = "analytics:monthly"
	cacheHallPerformance = "analytics:halls"

	defaultHallPerformanceLimit = 10
)

type Analytics interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	MonthlyRevenue(ctx context.Context, year int) (dto.MonthlyRevenueResponse, error)
	HallPerformance(ctx context.Context, limit int) (dto.HallPerformanceResponse, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheSummary, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheSummary).Msg("cache hit for booking summary")

		return res, nil
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking summary")

		return res, fmt.Errorf("failed to get booking summary: %w", err)
	}

	res.FromModel(summary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheSummary, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) MonthlyRevenue(ctx context.Context, year int) (res dto.MonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlyRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheMonthlyRevenue, year)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for monthly revenue")

		return res, nil
	}

	months, err := s.repo.MonthlyRevenue(ctx, year)
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly revenue")

		return res, fmt.Errorf("failed to get monthly revenue: %w", err)
	}

	res.FromModels(year, months)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save monthly revenue to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) HallPerformance(ctx context.Context, limit int) (res dto.HallPerformanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HallPerformance")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		limit = defaultHallPerformanceLimit
	}

	cacheKey := shared.BuildCacheKey(cacheHallPerformance, limit)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hall performance")

		return res, nil
	}

	halls, err := s.repo.HallPerformance(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hall performance")

		return res, fmt.Errorf("failed to get hall performance: %w", err)
	}

	res.FromModels(halls)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hall performance to cache")
		}
	}()

	return res, nil
}
