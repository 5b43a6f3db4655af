package model

import (
	"time"

	"hallbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldHallID           = "hall_id"
	FieldUserID           = "user_id"
	FieldStartAt          = "start_at"
	FieldEndAt            = "end_at"
	FieldStatus           = "status"
	FieldBasePrice        = "base_price"
	FieldWeekendSurcharge = "weekend_surcharge"
	FieldSecurityDeposit  = "security_deposit"
	FieldTotalPrice       = "total_price"
	FieldCancelReason     = "cancel_reason"
)

// Status is the booking lifecycle state. Transitions are validated through
// CanTransitionTo so every mutation site goes through the same state machine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses are the statuses that occupy the hall's time slot.
// Cancelled bookings never block availability.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// CanTransitionTo reports whether the status change is legal:
// pending moves to confirmed or cancelled, confirmed may still be cancelled,
// cancelled is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	case StatusCancelled:
		return false
	default:
		return false
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID               string    `db:"id"`
	HallID           string    `db:"hall_id"`
	UserID           string    `db:"user_id"`
	StartAt          time.Time `db:"start_at"`
	EndAt            time.Time `db:"end_at"`
	Status           Status    `db:"status"`
	BasePrice        float64   `db:"base_price"`
	WeekendSurcharge float64   `db:"weekend_surcharge"`
	SecurityDeposit  float64   `db:"security_deposit"`
	TotalPrice       float64   `db:"total_price"`
	CancelReason     string    `db:"cancel_reason"`
	model.Metadata
}
