package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessHours(t *testing.T) {
	hours, err := ParseBusinessHours("09:00", "21:00")
	require.NoError(t, err)
	assert.Equal(t, BusinessHours{OpenMinute: 9 * 60, CloseMinute: 21 * 60}, hours)

	_, err = ParseBusinessHours("9am", "21:00")
	assert.Error(t, err)

	_, err = ParseBusinessHours("09:00", "25:00")
	assert.Error(t, err)

	_, err = ParseBusinessHours("21:00", "09:00")
	assert.Error(t, err)
}

func TestBusinessHours_Contains(t *testing.T) {
	hours := BusinessHours{OpenMinute: 9 * 60, CloseMinute: 21 * 60}
	at := func(h, m, s int) time.Time {
		return time.Date(2026, 3, 10, h, m, s, 0, time.UTC)
	}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{name: "before opening", t: at(8, 59, 59), want: false},
		{name: "opening minute", t: at(9, 0, 0), want: true},
		{name: "midday", t: at(14, 30, 0), want: true},
		{name: "closing minute", t: at(21, 0, 0), want: true},
		{name: "seconds are ignored", t: at(21, 0, 59), want: true},
		{name: "after closing", t: at(21, 1, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.Contains(tt.t))
		})
	}
}

func TestBoardLayout(t *testing.T) {
	layout := BoardLayout{Buildings: []string{"A", "B"}, SlotsPerBuilding: 4}

	assert.True(t, layout.HasBuilding("A"))
	assert.False(t, layout.HasBuilding("C"))

	assert.True(t, layout.Contains(SlotRef{Building: "B", Index: 4}))
	assert.False(t, layout.Contains(SlotRef{Building: "B", Index: 5}))
	assert.False(t, layout.Contains(SlotRef{Building: "B", Index: 0}))
	assert.False(t, layout.Contains(SlotRef{Building: "C", Index: 1}))
}

func TestBooking_States(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	b := Booking{Status: StatusPendingPayment, PaymentDueAt: now}

	assert.True(t, b.IsPending())
	assert.True(t, b.CanExpire())
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.IsPaymentOverdue(now))
	assert.False(t, b.IsPaymentOverdue(now.Add(-time.Millisecond)))

	b.Status, b.Paid = StatusActive, true
	assert.True(t, b.IsActive())
	assert.False(t, b.CanExpire())
	assert.True(t, b.CanBeCancelled())

	b.Status = StatusCancelled
	assert.True(t, b.IsCancelled())
	assert.False(t, b.CanBeCancelled())

	assert.True(t, IsValidStatus(StatusActive))
	assert.False(t, IsValidStatus("archived"))
}
