// Package pricing computes the charge for renting a hall over a half-open
// [start, end) interval. Same-day rentals bill by the hour, longer rentals by
// the day, and days falling on configured weekend weekdays are multiplied by
// the hall's weekend multiplier. The calculator is pure: identical inputs
// always produce identical quotes.
package pricing

import (
	"errors"
	"math"
	"time"

	"hallbook/config"
)

var (
	ErrInvalidInterval      = errors.New("interval start must be before its end")
	ErrInvalidConfiguration = errors.New("hall pricing configuration is invalid")
)

const (
	hoursPerDay        = 24
	defaultGranularity = time.Hour
)

// Rates is a hall's pricing configuration.
type Rates struct {
	PricePerHour      float64
	PricePerDay       float64
	WeekendMultiplier float64
	SecurityDeposit   float64
}

func (r Rates) validate() error {
	if r.PricePerHour < 0 || r.PricePerDay < 0 || r.SecurityDeposit < 0 {
		return ErrInvalidConfiguration
	}

	if r.WeekendMultiplier < 1 {
		return ErrInvalidConfiguration
	}

	return nil
}

// Quote is the price breakdown for a rental interval. Total equals
// BasePrice + WeekendSurcharge + Deposit, rounded to two decimals once.
type Quote struct {
	BasePrice        float64 `json:"base_price"`
	WeekendSurcharge float64 `json:"weekend_surcharge"`
	Deposit          float64 `json:"deposit"`
	Total            float64 `json:"total"`
}

type Calculator struct {
	weekendDays map[time.Weekday]bool
	granularity time.Duration
}

// NewCalculator builds a calculator with explicit weekend days and hourly
// billing granularity. A zero granularity falls back to whole hours.
func NewCalculator(weekendDays []time.Weekday, granularity time.Duration) *Calculator {
	if granularity <= 0 {
		granularity = defaultGranularity
	}

	days := make(map[time.Weekday]bool, len(weekendDays))
	for _, day := range weekendDays {
		days[day] = true
	}

	return &Calculator{
		weekendDays: days,
		granularity: granularity,
	}
}

// FromConfig builds a calculator from application configuration.
func FromConfig(cfg *config.Config) *Calculator {
	days := make([]time.Weekday, 0, len(cfg.Booking.WeekendDays))
	for _, day := range cfg.Booking.WeekendDays {
		days = append(days, time.Weekday(day))
	}

	if len(days) == 0 {
		days = []time.Weekday{time.Saturday, time.Sunday}
	}

	granularity := time.Duration(cfg.Booking.HourGranularityMinutes) * time.Minute

	return NewCalculator(days, granularity)
}

// ValidateInterval enforces the half-open interval rule: start must be
// strictly before end, so zero-length intervals are rejected.
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}

	return nil
}

// ComputePrice prices the [start, end) interval against the given rates.
//
// Classification, in precedence order:
//  1. start and end on the same calendar day: hourly rate times the billed
//     hours (rounded up to the granularity, minimum one hour).
//  2. multi-day with identical time-of-day: daily rate times the day count.
//  3. any other multi-day span: full days at the daily rate plus the
//     remainder hours billed hourly.
//
// Hourly charges never exceed the daily rate: a partial day costs at most one
// full day, which keeps the price non-decreasing as the interval grows.
//
// The weekend multiplier applies per billed day, so a span straddling a
// weekday and a weekend day prices each portion independently. The deposit is
// flat, and rounding to two decimals happens once at the end.
func (c *Calculator) ComputePrice(rates Rates, start, end time.Time) (Quote, error) {
	if err := rates.validate(); err != nil {
		return Quote{}, err
	}

	if err := ValidateInterval(start, end); err != nil {
		return Quote{}, err
	}

	var base, surcharge float64

	billDay := func(day time.Time, amount float64) {
		base += amount

		if c.weekendDays[day.Weekday()] {
			surcharge += amount * (rates.WeekendMultiplier - 1)
		}
	}

	end = end.In(start.Location())

	switch {
	case sameCalendarDay(start, end):
		billDay(start, c.partialDayCharge(rates, end.Sub(start)))

	case sameTimeOfDay(start, end):
		days := int(math.Round(end.Sub(start).Hours() / hoursPerDay))
		for i := range days {
			billDay(start.AddDate(0, 0, i), rates.PricePerDay)
		}

	default:
		duration := end.Sub(start)
		fullDays := int(duration / (hoursPerDay * time.Hour))
		remainder := duration - time.Duration(fullDays)*hoursPerDay*time.Hour

		for i := range fullDays {
			billDay(start.AddDate(0, 0, i), rates.PricePerDay)
		}

		if remainder > 0 {
			remainderStart := start.AddDate(0, 0, fullDays)
			billDay(remainderStart, c.partialDayCharge(rates, remainder))
		}
	}

	return Quote{
		BasePrice:        round2(base),
		WeekendSurcharge: round2(surcharge),
		Deposit:          round2(rates.SecurityDeposit),
		Total:            round2(base + surcharge + rates.SecurityDeposit),
	}, nil
}

// partialDayCharge bills a sub-day duration at the hourly rate, capped at the
// daily rate so a partial day never costs more than a full one.
func (c *Calculator) partialDayCharge(rates Rates, d time.Duration) float64 {
	charge := rates.PricePerHour * c.billedHours(d)
	if rates.PricePerDay > 0 && charge > rates.PricePerDay {
		return rates.PricePerDay
	}

	return charge
}

// billedHours rounds the duration up to the billing granularity and converts
// it to hours, charging at least one hour.
func (c *Calculator) billedHours(d time.Duration) float64 {
	units := d / c.granularity
	if d%c.granularity != 0 {
		units++
	}

	billed := units * c.granularity
	if billed < time.Hour {
		billed = time.Hour
	}

	return billed.Hours()
}

func sameCalendarDay(start, end time.Time) bool {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}

func sameTimeOfDay(start, end time.Time) bool {
	h1, min1, s1 := start.Clock()
	h2, min2, s2 := end.Clock()

	return h1 == h2 && min1 == min2 && s1 == s2 && start.Nanosecond() == end.Nanosecond()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
