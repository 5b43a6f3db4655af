package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"hallbook/internal/domains/booking/model"
)

// Overlap checks compare with strict inequalities on both ends, so touching
// intervals like [10:00, 12:00) and [12:00, 14:00) never collide.
func TestConflictCheckQuery_HalfOpenBoundaries(t *testing.T) {
	assert.Contains(t, conflictCheckQuery, "start_at < $3")
	assert.Contains(t, conflictCheckQuery, "end_at > $2")
	assert.NotContains(t, conflictCheckQuery, "start_at <=")
	assert.NotContains(t, conflictCheckQuery, "end_at >=")
}

func TestBusySlotsQuery_HalfOpenBoundaries(t *testing.T) {
	assert.Contains(t, busySlotsQuery, "start_at < $3")
	assert.Contains(t, busySlotsQuery, "end_at > $2")
	assert.NotContains(t, busySlotsQuery, "start_at <=")
	assert.NotContains(t, busySlotsQuery, "end_at >=")
}

// Both queries derive their status list from the model, so cancelled bookings
// never occupy a slot.
func TestQueries_FilterOnActiveStatuses(t *testing.T) {
	for _, status := range model.ActiveStatuses() {
		assert.Contains(t, activeStatusList, status)
	}

	assert.NotContains(t, activeStatusList, string(model.StatusCancelled))
	assert.Contains(t, conflictCheckQuery, activeStatusList)
	assert.Contains(t, busySlotsQuery, activeStatusList)
}

func TestMapInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "exclusion violation becomes a booking conflict",
			err:  &pq.Error{Code: "23P01"},
			want: ErrBookingConflict,
		},
		{
			name: "unique violation becomes a booking conflict",
			err:  &pq.Error{Code: "23505"},
			want: ErrBookingConflict,
		},
		{
			name: "serialization failure becomes a booking conflict",
			err:  &pq.Error{Code: "40001"},
			want: ErrBookingConflict,
		},
		{
			name: "other database errors pass through",
			err:  &pq.Error{Code: "23503"},
			want: nil,
		},
		{
			name: "plain errors pass through",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapInsertError(tt.err)

			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)

				return
			}

			assert.Equal(t, tt.err, got)
		})
	}
}
