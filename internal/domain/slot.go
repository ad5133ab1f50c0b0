package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSlotKey возвращается, когда ключ слота не разбирается
	ErrInvalidSlotKey = errors.New("domain: invalid slot key")
)

// SlotRef identifies one physical parking space
type SlotRef struct {
	Building string
	Index    int // 1-based
}

// Key returns the canonical slot key (building ++ index)
func (s SlotRef) Key() string {
	return s.Building + strconv.Itoa(s.Index)
}

func (s SlotRef) String() string {
	return s.Key()
}

// ParseSlot builds a SlotRef from a building tag and a slot string.
// The slot may be a canonical key ("A1") or a bare index ("1").
// When the key carries a building prefix it must match building.
func ParseSlot(building, slot string) (SlotRef, error) {
	building = strings.ToUpper(strings.TrimSpace(building))
	slot = strings.ToUpper(strings.TrimSpace(slot))

	if building == "" || slot == "" {
		return SlotRef{}, ErrInvalidSlotKey
	}

	digits := strings.TrimLeftFunc(slot, func(r rune) bool { return r < '0' || r > '9' })
	prefix := slot[:len(slot)-len(digits)]
	if prefix != "" && prefix != building {
		return SlotRef{}, fmt.Errorf("%w: slot %q does not belong to building %q", ErrInvalidSlotKey, slot, building)
	}

	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return SlotRef{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, slot)
	}

	return SlotRef{Building: building, Index: index}, nil
}

// ParseSlotKey parses a canonical key such as "B3"
func ParseSlotKey(key string) (SlotRef, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	digits := strings.TrimLeftFunc(key, func(r rune) bool { return r < '0' || r > '9' })
	building := key[:len(key)-len(digits)]
	if building == "" {
		return SlotRef{}, fmt.Errorf("%w: %q has no building", ErrInvalidSlotKey, key)
	}
	return ParseSlot(building, digits)
}
