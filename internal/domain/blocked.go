package domain

import (
	"time"

	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// BlockedTime is an ad hoc closure declared by the admin on top of the weekly
// schedule: a vacation day, a personal appointment, a walk-in surge.
// AllDay blocks close the whole date regardless of the day rule; partial blocks
// carry an interval that is subtracted from availability like a booking.
type BlockedTime struct {
	ID        int64
	Date      time.Time
	StartTime *timeslot.TimeOfDay
	EndTime   *timeslot.TimeOfDay
	AllDay    bool
	Reason    *string
	CreatedAt time.Time
}

// Interval returns the blocked span, false for all-day blocks
func (b *BlockedTime) Interval() (timeslot.Interval, bool) {
	if b.AllDay || b.StartTime == nil || b.EndTime == nil {
		return timeslot.Interval{}, false
	}
	return timeslot.Interval{Start: *b.StartTime, End: *b.EndTime}, true
}
