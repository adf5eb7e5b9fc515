package shift

import (
	"fmt"
	"time"
)

// TimeInStatus classifies a morning clock-in against the shift schedule.
type TimeInStatus string

const (
	TimeInPresent   TimeInStatus = "Present"
	TimeInLate      TimeInStatus = "Late"
	TimeInUndertime TimeInStatus = "Undertime"
	TimeInAbsent    TimeInStatus = "Absent"
)

// TimeOutStatus classifies an afternoon clock-out against the shift schedule.
type TimeOutStatus string

const (
	TimeOutUndertime TimeOutStatus = "Undertime"
	TimeOutOut       TimeOutStatus = "Out"
	TimeOutOvertime  TimeOutStatus = "Overtime"
)

// Schedule holds the shift boundaries used to classify raw clock times.
// All fields are offsets from midnight on the business date, so the same
// schedule works on any date and in any timezone.
type Schedule struct {
	PresentEnd    time.Duration // clock-in at or before this is Present
	LateEnd       time.Duration // clock-in at or before this is Late
	UndertimeEnd  time.Duration // clock-in at or before this is Undertime, later is Absent
	OutStart      time.Duration // clock-out before this is Undertime
	OutEnd        time.Duration // clock-out between OutStart and this is Out
	OvertimeStart time.Duration // clock-out at or after this is Overtime
	AbsentCutoff  time.Duration // after this, a day with no time-in may be marked Absent
	RestDays      []time.Weekday
}

// DefaultSchedule returns the standard 08:00-17:00 shift with a
// Saturday/Sunday rest window.
func DefaultSchedule() Schedule {
	return Schedule{
		PresentEnd:    8 * time.Hour,
		LateEnd:       12 * time.Hour,
		UndertimeEnd:  17 * time.Hour,
		OutStart:      17 * time.Hour,
		OutEnd:        17*time.Hour + 5*time.Minute,
		OvertimeStart: 18 * time.Hour,
		AbsentCutoff:  17 * time.Hour,
		RestDays:      []time.Weekday{time.Saturday, time.Sunday},
	}
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		sec = 0
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// sinceMidnight returns t's offset from midnight of its own calendar day.
func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

// ClassifyTimeIn maps a clock-in instant to its status. A nil clock-in is
// Absent. Boundary ties resolve to the earlier bucket (<=), so an 08:00:00
// sharp arrival is still Present.
func (s Schedule) ClassifyTimeIn(timeIn *time.Time) TimeInStatus {
	if timeIn == nil {
		return TimeInAbsent
	}
	at := sinceMidnight(*timeIn)
	switch {
	case at <= s.PresentEnd:
		return TimeInPresent
	case at <= s.LateEnd:
		return TimeInLate
	case at <= s.UndertimeEnd:
		return TimeInUndertime
	default:
		return TimeInAbsent
	}
}

// ClassifyTimeOut maps a clock-out instant to its status. Callers must not
// invoke it for a missing clock-out; that status stays unset. Clock-outs
// after OutEnd but before OvertimeStart fall through to Out.
func (s Schedule) ClassifyTimeOut(timeOut time.Time) TimeOutStatus {
	at := sinceMidnight(timeOut)
	switch {
	case at < s.OutStart:
		return TimeOutUndertime
	case at <= s.OutEnd:
		return TimeOutOut
	case at >= s.OvertimeStart:
		return TimeOutOvertime
	default:
		return TimeOutOut
	}
}

// IsRestDay reports whether the given date falls on a configured
// non-working day.
func (s Schedule) IsRestDay(date time.Time) bool {
	for _, d := range s.RestDays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

// IsPastCutoff reports whether now (in the same location as the business
// date) has reached the absence cutoff for that date.
func (s Schedule) IsPastCutoff(date, now time.Time) bool {
	cutoff := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(s.AbsentCutoff)
	return !now.Before(cutoff)
}
