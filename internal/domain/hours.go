package domain

import (
	"time"

	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

// DayRule is the recurring open/closed policy for one weekday (0=Sunday..6=Saturday).
// Break times are optional: when both are set, the span is carved out of the
// operating window during slot generation.
type DayRule struct {
	ID         int64
	Weekday    time.Weekday
	IsOpen     bool
	OpenTime   *timeslot.TimeOfDay
	CloseTime  *timeslot.TimeOfDay
	BreakStart *timeslot.TimeOfDay
	BreakEnd   *timeslot.TimeOfDay
	UpdatedAt  time.Time
}

// Window returns the operating interval for the day, false if closed or misconfigured
func (r *DayRule) Window() (timeslot.Interval, bool) {
	if !r.IsOpen || r.OpenTime == nil || r.CloseTime == nil {
		return timeslot.Interval{}, false
	}
	if !r.OpenTime.Before(*r.CloseTime) {
		return timeslot.Interval{}, false
	}
	return timeslot.Interval{Start: *r.OpenTime, End: *r.CloseTime}, true
}

// Break returns the break interval, false if the day has none configured
func (r *DayRule) Break() (timeslot.Interval, bool) {
	if r.BreakStart == nil || r.BreakEnd == nil {
		return timeslot.Interval{}, false
	}
	if !r.BreakStart.Before(*r.BreakEnd) {
		return timeslot.Interval{}, false
	}
	return timeslot.Interval{Start: *r.BreakStart, End: *r.BreakEnd}, true
}

// DayRuleUpdate incoming rule for one weekday (admin settings form)
type DayRuleUpdate struct {
	Weekday    time.Weekday
	IsOpen     bool
	OpenTime   *timeslot.TimeOfDay
	CloseTime  *timeslot.TimeOfDay
	BreakStart *timeslot.TimeOfDay
	BreakEnd   *timeslot.TimeOfDay
}
