package scheduling

import (
	"errors"
	"time"
)

var (
	ErrInvalidDuration     = errors.New("duration must be 30 or 60 minutes")
	ErrPastDate            = errors.New("cannot book in the past")
	ErrNotQuantized        = errors.New("must be on 15-minute intervals")
	ErrOutsideAvailability = errors.New("outside guide's available hours")
	ErrBlockedDate         = errors.New("guide unavailable on this date")
	ErrBookingConflict     = errors.New("time slot already booked")
)

// ValidateBooking decides whether a proposed call is bookable. Checks run
// in a fixed order and the first failure wins:
//
//  1. duration is 30 or 60
//  2. start is in the future
//  3. start sits on a 15-minute boundary
//  4. the call fits entirely inside one availability window, evaluated in
//     that window's timezone (a guide with no windows has no restriction)
//  5. the guide-local calendar date is not blocked
//  6. no active call overlaps the proposed interval
func ValidateBooking(now, start time.Time, durationMinutes int, windows []Window, blocked []BlockedDate, existing []Call) error {
	if durationMinutes != 30 && durationMinutes != 60 {
		return ErrInvalidDuration
	}

	if !start.After(now) {
		return ErrPastDate
	}

	if start.UTC().Minute()%15 != 0 {
		return ErrNotQuantized
	}

	if len(windows) > 0 {
		fits := false
		for _, w := range windows {
			weekday, slotStart, slotEnd, err := localSlot(start, w.Timezone, durationMinutes)
			if err != nil {
				continue
			}
			if weekday != w.DayOfWeek {
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
			if ws <= slotStart && slotEnd <= we {
				fits = true
				break
			}
		}
		if !fits {
			return ErrOutsideAvailability
		}
	}

	if len(blocked) > 0 {
		y, m, d, err := localDate(start, guideZone(windows))
		if err == nil {
			for _, b := range blocked {
				by, bm, bd := b.Date.Date()
				if by == y && bm == m && bd == d {
					return ErrBlockedDate
				}
			}
		}
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for _, c := range existing {
		if !c.Status.Active() {
			continue
		}
		if IntervalsOverlap(start, end, c.ScheduledAt, c.EndsAt()) {
			return ErrBookingConflict
		}
	}

	return nil
}

// guideZone picks the zone blocked dates are interpreted in: the guide's
// first configured window zone, else the platform default.
func guideZone(windows []Window) string {
	for _, w := range windows {
		if w.Timezone != "" {
			return w.Timezone
		}
	}
	return DefaultTimezone
}
