package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"hallbook/infras/otel"
	"hallbook/internal/domains/analytics/service"
	"hallbook/shared"
	"hallbook/shared/constant"
	"hallbook/shared/timezone"
	"hallbook/transport/http/response"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/revenue/monthly", handler.GetMonthlyRevenue)
		routerGroup.Get("/halls/performance", handler.GetHallPerformance)
	})
}

// GetSummary retrieves the booking and revenue summary.
// @Summary Get booking summary
// @Description Retrieve total revenue, deposits held and booking counts per status.
// @Tags Analytics
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse] "Booking summary"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetMonthlyRevenue retrieves confirmed revenue per month for a year.
// @Summary Get monthly revenue
// @Description Retrieve confirmed booking revenue grouped by month for the given year. Defaults to the current year.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param year query integer false "Year (defaults to current year)"
// @Success 200 {object} response.Data[dto.MonthlyRevenueResponse] "Monthly revenue"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/revenue/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyRevenue")
	defer scope.End()

	year := timezone.Now().Year()

	if yearStr := r.URL.Query().Get("year"); yearStr != constant.Empty {
		if parsed, err := shared.ConvertStringToInt(yearStr); err == nil {
			year = parsed
		}
	}

	revenue, err := handler.service.MonthlyRevenue(ctx, year)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Monthly revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetHallPerformance retrieves booking counts and revenue per hall.
// @Summary Get hall performance
// @Description Retrieve active booking counts and confirmed revenue per hall, ordered by revenue.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param limit query integer false "Maximum number of halls to return"
// @Success 200 {object} response.Data[dto.HallPerformanceResponse] "Hall performance"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/halls/performance [get]
// @Security BearerAuth
func (handler *Handler) GetHallPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHallPerformance")
	defer scope.End()

	limit := 0

	if limitStr := r.URL.Query().Get(constant.RequestParamLimit); limitStr != constant.Empty {
		if parsed, err := shared.ConvertStringToInt(limitStr); err == nil {
			limit = parsed
		}
	}

	performance, err := handler.service.HallPerformance(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hall performance")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hall performance retrieved successfully")

	response.WithJSON(w, http.StatusOK, performance)
}
