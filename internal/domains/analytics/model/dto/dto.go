package dto

import "hallbook/internal/domains/analytics/model"

type SummaryResponse struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalDeposits     float64 `json:"total_deposits"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
}

func (r *SummaryResponse) FromModel(model model.Summary) {
	r.TotalRevenue = model.TotalRevenue
	r.TotalDeposits = model.TotalDeposits
	r.ConfirmedBookings = model.ConfirmedBookings
	r.PendingBookings = model.PendingBookings
	r.CancelledBookings = model.CancelledBookings
}

type MonthlyRevenueItem struct {
	Month    int     `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

type MonthlyRevenueResponse struct {
	Year   int                  `json:"year"`
	Months []MonthlyRevenueItem `json:"months"`
}

func (r *MonthlyRevenueResponse) FromModels(year int, models []model.MonthlyRevenue) {
	r.Year = year

	r.Months = make([]MonthlyRevenueItem, len(models))
	for i, mod := range models {
		r.Months[i] = MonthlyRevenueItem{
			Month:    mod.Month,
			Revenue:  mod.Revenue,
			Bookings: mod.Bookings,
		}
	}
}

type HallPerformanceItem struct {
	HallID   string  `json:"hall_id"`
	HallName string  `json:"hall_name"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type HallPerformanceResponse struct {
	Halls []HallPerformanceItem `json:"halls"`
}

func (r *HallPerformanceResponse) FromModels(models []model.HallPerformance) {
	r.Halls = make([]HallPerformanceItem, len(models))
	for i, mod := range models {
		r.Halls[i] = HallPerformanceItem{
			HallID:   mod.HallID,
			HallName: mod.HallName,
			Bookings: mod.Bookings,
			Revenue:  mod.Revenue,
		}
	}
}
