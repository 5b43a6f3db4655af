package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hallbook/internal/domains/booking/model"
	"hallbook/internal/domains/booking/model/dto"
	"hallbook/internal/domains/booking/pricing"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

	req := dto.CreateBookingRequest{
		HallID:  "hall-id-123",
		StartAt: start,
		EndAt:   end,
	}

	quote := pricing.Quote{
		BasePrice:        300,
		WeekendSurcharge: 0,
		Deposit:          50,
		Total:            350,
	}

	booking := req.ToModel("user-id-123", quote)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "hall-id-123", booking.HallID)
	assert.Equal(t, "user-id-123", booking.UserID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, float64(300), booking.BasePrice)
	assert.Equal(t, float64(50), booking.SecurityDeposit)
	assert.Equal(t, float64(350), booking.TotalPrice)
	assert.Equal(t, "user-id-123", booking.CreatedBy)
}

func TestQuoteResponse_FromQuote(t *testing.T) {
	quote := pricing.Quote{
		BasePrice:        300,
		WeekendSurcharge: 150,
		Deposit:          50,
		Total:            500,
	}

	var res dto.QuoteResponse
	res.FromQuote("hall-id-123", quote)

	assert.Equal(t, "hall-id-123", res.HallID)
	assert.Equal(t, float64(300), res.BasePrice)
	assert.Equal(t, float64(150), res.WeekendSurcharge)
	assert.Equal(t, float64(50), res.Deposit)
	assert.Equal(t, float64(500), res.Total)
}

func TestNewBookingEvent(t *testing.T) {
	booking := model.Booking{
		ID:         "booking-id-123",
		HallID:     "hall-id-123",
		UserID:     "user-id-123",
		Status:     model.StatusConfirmed,
		TotalPrice: 500,
	}

	event := dto.NewBookingEvent(dto.EventBookingConfirmed, booking)

	assert.Equal(t, dto.EventBookingConfirmed, event.Event)
	assert.Equal(t, "booking-id-123", event.BookingID)
	assert.Equal(t, string(model.StatusConfirmed), event.Status)
	assert.Equal(t, float64(500), event.TotalPrice)
	assert.NotEmpty(t, event.OccurredAt)
}
