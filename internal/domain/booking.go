package domain

import (
	"time"

	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Customer contact details captured with a booking
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Booking represents an appointment in the studio.
// Service name, price and duration are snapshotted at creation time so later
// edits to the service do not rewrite history.
type Booking struct {
	ID              int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       timeslot.TimeOfDay
	DurationMinutes int
	Customer        Customer
	Notes           *string
	Status          BookingStatus

	// Denormalized service snapshot
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the half-open time span occupied by the booking
func (b *Booking) Interval() timeslot.Interval {
	return timeslot.Interval{
		Start: b.StartTime,
		End:   b.StartTime.Add(b.DurationMinutes),
	}
}

// IsActive returns true if the booking occupies its interval for conflict purposes.
// Completed bookings still occupy their slot; only cancelled ones free it.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed.
// The only legal transitions are confirmed -> completed and confirmed -> cancelled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// ValidStatus reports whether s is a known booking status
func ValidStatus(s BookingStatus) bool {
	return s == StatusConfirmed || s == StatusCompleted || s == StatusCancelled
}

// BookingsFilter параметры выборки бронирований для админки
type BookingsFilter struct {
	Date             *time.Time     // Конкретная дата (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
