package model

const EntityName = "analytics"

// Summary aggregates the whole booking book. Revenue only counts confirmed
// bookings; pending and cancelled ones carry no money.
type Summary struct {
	TotalRevenue      float64 `db:"total_revenue"`
	TotalDeposits     float64 `db:"total_deposits"`
	ConfirmedBookings int     `db:"confirmed_bookings"`
	PendingBookings   int     `db:"pending_bookings"`
	CancelledBookings int     `db:"cancelled_bookings"`
}

type MonthlyRevenue struct {
	Month    int     `db:"month"`
	Revenue  float64 `db:"revenue"`
	Bookings int     `db:"bookings"`
}

type HallPerformance struct {
	HallID   string  `db:"hall_id"`
	HallName string  `db:"hall_name"`
	Bookings int     `db:"bookings"`
	Revenue  float64 `db:"revenue"`
}
