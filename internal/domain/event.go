package domain

// EventType push event kind delivered to observers
type EventType string

const (
	EventOccupancySnapshot EventType = "occupancy_snapshot"
	EventOccupancyUpdate   EventType = "occupancy_update"
	EventBookingCreated    EventType = "booking_created"
	EventBookingPaid       EventType = "booking_paid"
	EventBookingCancelled  EventType = "booking_cancelled"
	EventBookingDeleted    EventType = "booking_deleted"
)

// Event a single state change as seen by observers
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}
