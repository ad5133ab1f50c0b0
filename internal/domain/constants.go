package domain

import "time"

// Default configuration values
const (
	DefaultSlotsPerBuilding = 4
	DefaultPaymentWindow    = 30 * time.Second
	DefaultClockSkew        = time.Second
	DefaultBusinessOpen     = "09:00"
	DefaultBusinessClose    = "21:00"
)

// DefaultBuildings building tags of the current deployment
var DefaultBuildings = []string{"A", "B"}

// Time format constants
const (
	TimeFormat = "15:04" // HH:MM
)

// LocalBookingTimeLayouts форматы bookingTime без смещения, трактуются в часовом поясе парковки
var LocalBookingTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}
