package dto

import (
	"time"

	"github.com/google/uuid"
	"hallbook/internal/domains/booking/model"
	"hallbook/internal/domains/booking/pricing"
	"hallbook/shared"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	gModel "hallbook/shared/model"
	"hallbook/shared/timezone"
)

type CreateBookingRequest struct {
	HallID  string    `json:"hall_id"  validate:"required,uuid"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required"`
}

func (c *CreateBookingRequest) ToModel(userID string, quote pricing.Quote) model.Booking {
	return model.Booking{
		ID:               uuid.NewString(),
		HallID:           c.HallID,
		UserID:           userID,
		StartAt:          c.StartAt,
		EndAt:            c.EndAt,
		Status:           model.StatusPending,
		BasePrice:        quote.BasePrice,
		WeekendSurcharge: quote.WeekendSurcharge,
		SecurityDeposit:  quote.Deposit,
		TotalPrice:       quote.Total,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type AvailabilityRequest struct {
	HallID           string    `json:"hall_id"            validate:"required,uuid"`
	StartAt          time.Time `json:"start_at"           validate:"required"`
	EndAt            time.Time `json:"end_at"             validate:"required"`
	ExcludeBookingID string    `json:"exclude_booking_id" validate:"omitempty,uuid"`
}

type AvailabilityResponse struct {
	Available          bool     `json:"available"`
	ConflictBookingIDs []string `json:"conflict_booking_ids,omitempty"`
}

type BusySlot struct {
	BookingID string `json:"booking_id"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	Status    string `json:"status"`
}

type BusySlotsResponse struct {
	HallID string     `json:"hall_id"`
	Slots  []BusySlot `json:"slots"`
}

func (r *BusySlotsResponse) FromModels(hallID string, models []model.Booking) {
	r.HallID = hallID

	r.Slots = make([]BusySlot, len(models))
	for i, mod := range models {
		r.Slots[i] = BusySlot{
			BookingID: mod.ID,
			StartAt:   timezone.Format(mod.StartAt, constant.DateFormat),
			EndAt:     timezone.Format(mod.EndAt, constant.DateFormat),
			Status:    string(mod.Status),
		}
	}
}

type QuoteRequest struct {
	HallID  string    `json:"hall_id"  validate:"required,uuid"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required"`
}

type QuoteResponse struct {
	HallID           string  `json:"hall_id"`
	BasePrice        float64 `json:"base_price"`
	WeekendSurcharge float64 `json:"weekend_surcharge"`
	Deposit          float64 `json:"deposit"`
	Total            float64 `json:"total"`
}

func (q *QuoteResponse) FromQuote(hallID string, quote pricing.Quote) {
	q.HallID = hallID
	q.BasePrice = quote.BasePrice
	q.WeekendSurcharge = quote.WeekendSurcharge
	q.Deposit = quote.Deposit
	q.Total = quote.Total
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	HallID           string  `json:"hall_id"`
	UserID           string  `json:"user_id"`
	StartAt          string  `json:"start_at"`
	EndAt            string  `json:"end_at"`
	Status           string  `json:"status"`
	BasePrice        float64 `json:"base_price"`
	WeekendSurcharge float64 `json:"weekend_surcharge"`
	SecurityDeposit  float64 `json:"security_deposit"`
	TotalPrice       float64 `json:"total_price"`
	CancelReason     string  `json:"cancel_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HallID = model.HallID
	r.UserID = model.UserID
	r.StartAt = timezone.Format(model.StartAt, constant.DateFormat)
	r.EndAt = timezone.Format(model.EndAt, constant.DateFormat)
	r.Status = string(model.Status)
	r.BasePrice = model.BasePrice
	r.WeekendSurcharge = model.WeekendSurcharge
	r.SecurityDeposit = model.SecurityDeposit
	r.TotalPrice = model.TotalPrice
	r.CancelReason = model.CancelReason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Booking lifecycle event names published to Kafka.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

type BookingEvent struct {
	Event      string  `json:"event"`
	BookingID  string  `json:"booking_id"`
	HallID     string  `json:"hall_id"`
	UserID     string  `json:"user_id"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	OccurredAt string  `json:"occurred_at"`
}

func NewBookingEvent(event string, booking model.Booking) BookingEvent {
	return BookingEvent{
		Event:      event,
		BookingID:  booking.ID,
		HallID:     booking.HallID,
		UserID:     booking.UserID,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
