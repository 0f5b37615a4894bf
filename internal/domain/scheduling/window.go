package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultTimezone = "America/New_York"

var (
	ErrOverlappingWindow = errors.New("overlaps an existing availability window")
	ErrInvalidWindow     = errors.New("invalid availability window")
)

// Window is a guide's recurring weekly open slot. DayOfWeek uses 0 = Sunday,
// StartTime/EndTime are 24-hour "HH:MM" local to Timezone.
type Window struct {
	ID        uuid.UUID
	GuideID   uuid.UUID
	DayOfWeek int
	StartTime string
	EndTime   string
	Timezone  string
}

type BlockedDate struct {
	ID      uuid.UUID
	GuideID uuid.UUID
	Date    time.Time
}

// ValidateNewWindow rejects a malformed candidate or one whose [start,end)
// overlaps an existing window on the same day of week.
func ValidateNewWindow(existing []Window, candidate Window) error {
	if candidate.DayOfWeek < 0 || candidate.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be 0-6", ErrInvalidWindow)
	}

	start, err := parseClock(candidate.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	end, err := parseClock(candidate.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidWindow)
	}

	if _, err := time.LoadLocation(timezoneOrDefault(candidate.Timezone)); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidWindow, candidate.Timezone)
	}

	for _, w := range existing {
		if w.DayOfWeek != candidate.DayOfWeek {
			continue
		}
		ws, err := parseClock(w.StartTime)
		if err != nil {
			continue
		}
		we, err := parseClock(w.EndTime)
		if err != nil {
			continue
		}
		if start < we && ws < end {
			return ErrOverlappingWindow
		}
	}

	return nil
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed clock time %q", s)
	}
	return h*60 + m, nil
}

func timezoneOrDefault(tz string) string {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return DefaultTimezone
	}
	return tz
}

// localSlot projects an instant into zone tz and reports its weekday
// (0 = Sunday) plus the minute-of-day where the slot starts and ends.
// The end is not wrapped at midnight so a slot crossing midnight can
// never fit inside a single same-day window.
func localSlot(t time.Time, tz string, durationMinutes int) (weekday int, startMin int, endMin int, err error) {
	loc, err := time.LoadLocation(timezoneOrDefault(tz))
	if err != nil {
		return 0, 0, 0, err
	}
	local := t.In(loc)
	weekday = int(local.Weekday())
	startMin = local.Hour()*60 + local.Minute()
	endMin = startMin + durationMinutes
	return weekday, startMin, endMin, nil
}

// localDate reports the calendar date of an instant in zone tz.
func localDate(t time.Time, tz string) (year int, month time.Month, day int, err error) {
	loc, err := time.LoadLocation(timezoneOrDefault(tz))
	if err != nil {
		return 0, 0, 0, err
	}
	y, m, d := t.In(loc).Date()
	return y, m, d, nil
}
