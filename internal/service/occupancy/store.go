// Package occupancy holds the two per-building boolean vectors that decide
// slot availability: sensor-reported occupancy and the reservation hold
// derived from active bookings.
//
// Store is not safe for concurrent use. It is owned by the reservation
// state machine, which serializes every access.
package occupancy

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// board vectors of one building
type board struct {
	sensorOccupied  []bool
	reservationHeld []bool
}

// Store occupancy state for a fixed board layout
type Store struct {
	layout      domain.BoardLayout
	boards      map[string]*board
	lastUpdated time.Time
}

// BuildingState snapshot of one building
type BuildingState struct {
	SensorOccupied  []bool
	ReservationHeld []bool
	Bookable        []bool
}

// Snapshot deep copy of the whole store
type Snapshot struct {
	Buildings   map[string]BuildingState
	Order       []string // building tags in layout order
	LastUpdated time.Time
}

// NewStore creates an all-free store for the layout
func NewStore(layout domain.BoardLayout, now time.Time) *Store {
	s := &Store{
		layout:      layout,
		boards:      make(map[string]*board, len(layout.Buildings)),
		lastUpdated: now,
	}
	for _, b := range layout.Buildings {
		s.boards[b] = &board{
			sensorOccupied:  make([]bool, layout.SlotsPerBuilding),
			reservationHeld: make([]bool, layout.SlotsPerBuilding),
		}
	}
	return s
}

// Layout returns the configured board layout
func (s *Store) Layout() domain.BoardLayout {
	return s.layout
}

// SetSensorOccupancy replaces the sensor vector of a building wholesale.
// A vector of the wrong length (including nil) is coerced to all-false.
// Returns false if the building is unknown or the vector was coerced.
func (s *Store) SetSensorOccupancy(building string, vector []bool, now time.Time) bool {
	b, ok := s.boards[building]
	if !ok {
		return false
	}

	next := make([]bool, s.layout.SlotsPerBuilding)
	accepted := len(vector) == s.layout.SlotsPerBuilding
	if accepted {
		copy(next, vector)
	}

	b.sensorOccupied = next
	s.lastUpdated = now
	return accepted
}

// Touch stamps lastUpdated without changing any vector
func (s *Store) Touch(now time.Time) {
	s.lastUpdated = now
}

// RecomputeReservationHeld rebuilds every reservation vector from scratch:
// a slot is held iff an active booking references it
func (s *Store) RecomputeReservationHeld(bookings []domain.Booking) {
	for _, b := range s.boards {
		for i := range b.reservationHeld {
			b.reservationHeld[i] = false
		}
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		ref, err := domain.ParseSlot(booking.Building, booking.Slot)
		if err != nil || !s.layout.Contains(ref) {
			continue
		}
		s.boards[ref.Building].reservationHeld[ref.Index-1] = true
	}
}

// IsSensorOccupied reports the hardware state of a slot. Unknown slots count as occupied.
func (s *Store) IsSensorOccupied(ref domain.SlotRef) bool {
	b, ok := s.lookup(ref)
	if !ok {
		return true
	}
	return b.sensorOccupied[ref.Index-1]
}

// IsReservationHeld reports whether an active booking holds the slot
func (s *Store) IsReservationHeld(ref domain.SlotRef) bool {
	b, ok := s.lookup(ref)
	if !ok {
		return false
	}
	return b.reservationHeld[ref.Index-1]
}

// IsBookable = !sensorOccupied && !reservationHeld. Unknown slots are never bookable.
func (s *Store) IsBookable(ref domain.SlotRef) bool {
	b, ok := s.lookup(ref)
	if !ok {
		return false
	}
	i := ref.Index - 1
	return !b.sensorOccupied[i] && !b.reservationHeld[i]
}

// Snapshot returns a copy that is safe to hand outside the owning turn
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Buildings:   make(map[string]BuildingState, len(s.boards)),
		Order:       append([]string(nil), s.layout.Buildings...),
		LastUpdated: s.lastUpdated,
	}
	for name, b := range s.boards {
		state := BuildingState{
			SensorOccupied:  append([]bool(nil), b.sensorOccupied...),
			ReservationHeld: append([]bool(nil), b.reservationHeld...),
			Bookable:        make([]bool, len(b.sensorOccupied)),
		}
		for i := range state.Bookable {
			state.Bookable[i] = !b.sensorOccupied[i] && !b.reservationHeld[i]
		}
		snap.Buildings[name] = state
	}
	return snap
}

func (s *Store) lookup(ref domain.SlotRef) (*board, bool) {
	if !s.layout.Contains(ref) {
		return nil, false
	}
	b, ok := s.boards[ref.Building]
	return b, ok
}
