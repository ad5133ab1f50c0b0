package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusActive         BookingStatus = "active"
	StatusCancelled      BookingStatus = "cancelled"
)

// CancellationReason explains why a booking reached StatusCancelled
type CancellationReason string

const (
	ReasonCustomer       CancellationReason = "customer"
	ReasonPaymentExpired CancellationReason = "payment_expired"
	ReasonSlotTaken      CancellationReason = "slot_taken"
)

// Booking represents a parking slot reservation
type Booking struct {
	ID            int64
	Building      string
	Slot          string // canonical key, e.g. "A1"
	CustomerName  string
	CustomerPhone string
	BookingTime   time.Time
	Status        BookingStatus
	Paid          bool
	PaymentDueAt  time.Time
	CreatedAt     time.Time

	PaidAt             *time.Time
	CancelledAt        *time.Time
	CancellationReason CancellationReason
}

// IsPending returns true while the booking awaits payment
func (b *Booking) IsPending() bool {
	return b.Status == StatusPendingPayment
}

// IsActive returns true if the booking currently holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true for the terminal state
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if cancel() is a real transition for this booking
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusActive
}

// CanExpire returns true if the payment timer may still cancel the booking
func (b *Booking) CanExpire() bool {
	return b.Status == StatusPendingPayment && !b.Paid
}

// IsPaymentOverdue reports whether the payment window closed at or before now
func (b *Booking) IsPaymentOverdue(now time.Time) bool {
	return !b.PaymentDueAt.After(now)
}

// IsValidStatus checks that s is one of the known statuses
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPendingPayment, StatusActive, StatusCancelled:
		return true
	}
	return false
}
