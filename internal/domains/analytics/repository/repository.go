package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hallbook/infras/otel"
	"hallbook/infras/postgres"
	"hallbook/internal/domains/analytics/model"
	"hallbook/shared/constant"
	"hallbook/shared/logger"
)

type Analytics interface {
	Summary(ctx context.Context) (model.Summary, error)
	MonthlyRevenue(ctx context.Context, year int) ([]model.MonthlyRevenue, error)
	HallPerformance(ctx context.Context, limit int) ([]model.HallPerformance, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const summaryQuery = `
SELECT
  COALESCE(SUM(total_price) FILTER (WHERE status = 'confirmed'), 0)      AS total_revenue,
  COALESCE(SUM(security_deposit) FILTER (WHERE status = 'confirmed'), 0) AS total_deposits,
  COUNT(*) FILTER (WHERE status = 'confirmed')                           AS confirmed_bookings,
  COUNT(*) FILTER (WHERE status = 'pending')                             AS pending_bookings,
  COUNT(*) FILTER (WHERE status = 'cancelled')                           AS cancelled_bookings
FROM bookings`

func (repo *repositoryImpl) Summary(ctx context.Context) (res model.Summary, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, summaryQuery)

	err = repo.db.Read.GetContext(ctx, &res, summaryQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get booking summary: %w", err)
	}

	return res, nil
}

const monthlyRevenueQuery = `
SELECT
  EXTRACT(MONTH FROM start_at)::int AS month,
  COALESCE(SUM(total_price), 0)     AS revenue,
  COUNT(*)                          AS bookings
FROM bookings
WHERE status = 'confirmed'
  AND EXTRACT(YEAR FROM start_at) = $1
GROUP BY month
ORDER BY month`

func (repo *repositoryImpl) MonthlyRevenue(ctx context.Context, year int) (res []model.MonthlyRevenue, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.MonthlyRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, monthlyRevenueQuery)

	err = repo.db.Read.SelectContext(ctx, &res, monthlyRevenueQuery, year)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}

	return res, nil
}

const hallPerformanceQuery = `
SELECT
  h.id                                                                 AS hall_id,
  h.name                                                               AS hall_name,
  COUNT(b.id) FILTER (WHERE b.status IN ('pending', 'confirmed'))      AS bookings,
  COALESCE(SUM(b.total_price) FILTER (WHERE b.status = 'confirmed'), 0) AS revenue
FROM halls h
LEFT JOIN bookings b ON b.hall_id = h.id
GROUP BY h.id, h.name
ORDER BY revenue DESC, bookings DESC
LIMIT $1`

func (repo *repositoryImpl) HallPerformance(ctx context.Context, limit int) (res []model.HallPerformance, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.HallPerformance")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, hallPerformanceQuery)

	err = repo.db.Read.SelectContext(ctx, &res, hallPerformanceQuery, limit)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get hall performance: %w", err)
	}

	return res, nil
}
