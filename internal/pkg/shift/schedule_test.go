package shift

import (
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2025, 3, 3, h, m, s, 0, time.UTC)
}

func atPtr(h, m, s int) *time.Time {
	t := at(h, m, s)
	return &t
}

func TestClassifyTimeIn(t *testing.T) {
	sched := DefaultSchedule()

	cases := []struct {
		name   string
		timeIn *time.Time
		want   TimeInStatus
	}{
		{"early morning", atPtr(6, 0, 0), TimeInPresent},
		{"on the present boundary", atPtr(8, 0, 0), TimeInPresent},
		{"just past present", atPtr(8, 0, 1), TimeInLate},
		{"mid morning", atPtr(10, 30, 0), TimeInLate},
		{"on the late boundary", atPtr(12, 0, 0), TimeInLate},
		{"afternoon", atPtr(12, 0, 1), TimeInUndertime},
		{"on the undertime boundary", atPtr(17, 0, 0), TimeInUndertime},
		{"after shift", atPtr(17, 0, 1), TimeInAbsent},
		{"late evening", atPtr(22, 15, 0), TimeInAbsent},
		{"no time in", nil, TimeInAbsent},
	}

	for _, c := range cases {
		if got := sched.ClassifyTimeIn(c.timeIn); got != c.want {
			t.Errorf("%s: ClassifyTimeIn = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestClassifyTimeOut(t *testing.T) {
	sched := DefaultSchedule()

	cases := []struct {
		name    string
		timeOut time.Time
		want    TimeOutStatus
	}{
		{"noon leave", at(12, 0, 0), TimeOutUndertime},
		{"last undertime second", at(16, 59, 59), TimeOutUndertime},
		{"shift end sharp", at(17, 0, 0), TimeOutOut},
		{"inside grace window", at(17, 3, 0), TimeOutOut},
		{"end of grace window", at(17, 5, 0), TimeOutOut},
		{"just past grace window", at(17, 5, 1), TimeOutOut},
		{"tail before overtime", at(17, 59, 59), TimeOutOut},
		{"overtime start", at(18, 0, 0), TimeOutOvertime},
		{"late overtime", at(21, 30, 0), TimeOutOvertime},
	}

	for _, c := range cases {
		if got := sched.ClassifyTimeOut(c.timeOut); got != c.want {
			t.Errorf("%s: ClassifyTimeOut = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestIsRestDay(t *testing.T) {
	sched := DefaultSchedule()

	saturday := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	if !sched.IsRestDay(saturday) {
		t.Error("Saturday should be a rest day")
	}
	if !sched.IsRestDay(sunday) {
		t.Error("Sunday should be a rest day")
	}
	if sched.IsRestDay(monday) {
		t.Error("Monday should not be a rest day")
	}
}

func TestIsPastCutoff(t *testing.T) {
	sched := DefaultSchedule()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	if sched.IsPastCutoff(date, at(16, 59, 59)) {
		t.Error("16:59:59 should be before the cutoff")
	}
	if !sched.IsPastCutoff(date, at(17, 0, 0)) {
		t.Error("17:00:00 should be past the cutoff")
	}
	// A later wall-clock on a different date is its own cutoff check.
	nextday := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	if !sched.IsPastCutoff(date, nextday) {
		t.Error("any instant on a later day is past the cutoff")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"08:00", 8 * time.Hour, true},
		{"17:05:00", 17*time.Hour + 5*time.Minute, true},
		{"16:59:59", 16*time.Hour + 59*time.Minute + 59*time.Second, true},
		{"24:00", 0, false},
		{"zzz", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseClock(%q) = %v, %v; want %v", c.input, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseClock(%q) should fail", c.input)
		}
	}
}
