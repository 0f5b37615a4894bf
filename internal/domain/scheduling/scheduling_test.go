package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func nyTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func mondayWindow(start, end string) Window {
	return Window{
		ID:        uuid.New(),
		GuideID:   uuid.New(),
		DayOfWeek: 1,
		StartTime: start,
		EndTime:   end,
		Timezone:  "America/New_York",
	}
}

func TestValidateNewWindowOverlap(t *testing.T) {
	existing := []Window{mondayWindow("09:00", "12:00")}

	if err := ValidateNewWindow(existing, mondayWindow("11:00", "13:00")); !errors.Is(err, ErrOverlappingWindow) {
		t.Fatalf("expected ErrOverlappingWindow, got %v", err)
	}

	// Half-open intervals: back-to-back windows do not overlap.
	if err := ValidateNewWindow(existing, mondayWindow("12:00", "13:00")); err != nil {
		t.Fatalf("adjacent window should be accepted, got %v", err)
	}

	other := mondayWindow("11:00", "13:00")
	other.DayOfWeek = 2
	if err := ValidateNewWindow(existing, other); err != nil {
		t.Fatalf("different day should be accepted, got %v", err)
	}
}

func TestValidateNewWindowShape(t *testing.T) {
	cases := []struct {
		name      string
		candidate Window
	}{
		{name: "bad day", candidate: Window{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}},
		{name: "malformed start", candidate: Window{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}},
		{name: "start after end", candidate: Window{DayOfWeek: 1, StartTime: "11:00", EndTime: "10:00"}},
		{name: "start equals end", candidate: Window{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}},
		{name: "unknown timezone", candidate: Window{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00", Timezone: "Mars/Olympus"}},
	}

	for _, tc := range cases {
		if err := ValidateNewWindow(nil, tc.candidate); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("%s: expected ErrInvalidWindow, got %v", tc.name, err)
		}
	}
}

func TestValidateBookingDuration(t *testing.T) {
	start := testNow.Add(24 * time.Hour)
	if err := ValidateBooking(testNow, start, 45, nil, nil, nil); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestValidateBookingPast(t *testing.T) {
	start := testNow.Add(-time.Hour)
	if err := ValidateBooking(testNow, start, 30, nil, nil, nil); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	// Exactly now is still in the past.
	if err := ValidateBooking(testNow, testNow, 30, nil, nil, nil); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate for start == now, got %v", err)
	}
}

func TestValidateBookingQuantization(t *testing.T) {
	odd := time.Date(2025, 6, 9, 9, 7, 0, 0, time.UTC)
	if err := ValidateBooking(testNow, odd, 30, nil, nil, nil); !errors.Is(err, ErrNotQuantized) {
		t.Fatalf("expected ErrNotQuantized, got %v", err)
	}

	quarter := time.Date(2025, 6, 9, 9, 15, 0, 0, time.UTC)
	if err := ValidateBooking(testNow, quarter, 30, nil, nil, nil); err != nil {
		t.Fatalf("expected 09:15 to be accepted, got %v", err)
	}
}

func TestValidateBookingFitsInsideWindow(t *testing.T) {
	windows := []Window{mondayWindow("09:00", "17:00")}

	// 2025-06-09 is a Monday.
	late := nyTime(t, 2025, time.June, 9, 16, 30)
	if err := ValidateBooking(testNow, late, 60, windows, nil, nil); !errors.Is(err, ErrOutsideAvailability) {
		t.Fatalf("expected ErrOutsideAvailability for call ending past window, got %v", err)
	}

	ok := nyTime(t, 2025, time.June, 9, 16, 0)
	if err := ValidateBooking(testNow, ok, 60, windows, nil, nil); err != nil {
		t.Fatalf("expected 16:00 Monday to be accepted, got %v", err)
	}

	tuesday := nyTime(t, 2025, time.June, 10, 10, 0)
	if err := ValidateBooking(testNow, tuesday, 60, windows, nil, nil); !errors.Is(err, ErrOutsideAvailability) {
		t.Fatalf("expected ErrOutsideAvailability on a day without windows, got %v", err)
	}
}

func TestValidateBookingCannotSpanAdjacentWindows(t *testing.T) {
	windows := []Window{
		mondayWindow("09:00", "10:00"),
		mondayWindow("10:00", "11:00"),
	}

	spanning := nyTime(t, 2025, time.June, 9, 9, 30)
	if err := ValidateBooking(testNow, spanning, 60, windows, nil, nil); !errors.Is(err, ErrOutsideAvailability) {
		t.Fatalf("expected call spanning two windows to be rejected, got %v", err)
	}
}

func TestValidateBookingNoWindowsMeansNoRestriction(t *testing.T) {
	start := nyTime(t, 2025, time.June, 9, 3, 0)
	if err := ValidateBooking(testNow, start, 30, nil, nil, nil); err != nil {
		t.Fatalf("guide without windows should accept any future slot, got %v", err)
	}
}

func TestValidateBookingBlockedDate(t *testing.T) {
	blocked := []BlockedDate{{
		ID:      uuid.New(),
		GuideID: uuid.New(),
		Date:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}}

	morning := nyTime(t, 2025, time.June, 10, 9, 0)
	if err := ValidateBooking(testNow, morning, 30, nil, blocked, nil); !errors.Is(err, ErrBlockedDate) {
		t.Fatalf("expected ErrBlockedDate, got %v", err)
	}

	evening := nyTime(t, 2025, time.June, 10, 21, 0)
	if err := ValidateBooking(testNow, evening, 30, nil, blocked, nil); !errors.Is(err, ErrBlockedDate) {
		t.Fatalf("expected ErrBlockedDate regardless of time of day, got %v", err)
	}

	nextDay := nyTime(t, 2025, time.June, 11, 9, 0)
	if err := ValidateBooking(testNow, nextDay, 30, nil, blocked, nil); err != nil {
		t.Fatalf("expected adjacent date to be accepted, got %v", err)
	}
}

func TestValidateBookingConflict(t *testing.T) {
	day := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	existing := []Call{{
		ID:              uuid.New(),
		ScheduledAt:     day,
		DurationMinutes: 30,
		Status:          StatusConfirmed,
	}}

	overlapping := day.Add(15 * time.Minute)
	if err := ValidateBooking(testNow, overlapping, 30, nil, nil, existing); !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}

	adjacent := day.Add(30 * time.Minute)
	if err := ValidateBooking(testNow, adjacent, 30, nil, nil, existing); err != nil {
		t.Fatalf("expected adjacent slot to be accepted, got %v", err)
	}
}

func TestValidateBookingIgnoresInactiveCalls(t *testing.T) {
	day := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	existing := []Call{
		{ScheduledAt: day, DurationMinutes: 60, Status: StatusCancelled},
		{ScheduledAt: day, DurationMinutes: 60, Status: StatusCompleted},
	}

	if err := ValidateBooking(testNow, day, 30, nil, nil, existing); err != nil {
		t.Fatalf("terminal calls should not block new bookings, got %v", err)
	}
}

func TestValidateBookingShortCircuits(t *testing.T) {
	// A past, unquantized slot reports the past-date failure first.
	start := time.Date(2025, 5, 1, 9, 7, 0, 0, time.UTC)
	if err := ValidateBooking(testNow, start, 30, nil, nil, nil); !errors.Is(err, ErrPastDate) {
		t.Fatalf("expected ErrPastDate to win, got %v", err)
	}
}

func TestPriceCall(t *testing.T) {
	half := PriceCall(60, 30, 25)
	if half.Price != 30 || half.PlatformFee != 7.5 || half.Payout != 22.5 {
		t.Fatalf("30-minute pricing = %+v", half)
	}

	full := PriceCall(60, 60, 25)
	if full.Price != 60 || full.PlatformFee != 15 || full.Payout != 45 {
		t.Fatalf("60-minute pricing = %+v", full)
	}
}

func TestTransition(t *testing.T) {
	allowed := []struct{ from, to CallStatus }{
		{StatusRequested, StatusConfirmed},
		{StatusRequested, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tc := range allowed {
		if err := Transition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %s -> %s to be allowed, got %v", tc.from, tc.to, err)
		}
	}

	denied := []struct{ from, to CallStatus }{
		{StatusRequested, StatusCompleted},
		{StatusConfirmed, StatusRequested},
		{StatusCancelled, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusCancelled},
	}
	for _, tc := range denied {
		if err := Transition(tc.from, tc.to); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected %s -> %s to be denied, got %v", tc.from, tc.to, err)
		}
	}
}

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
	e1 := base.Add(30 * time.Minute)

	if !IntervalsOverlap(base, e1, base.Add(15*time.Minute), base.Add(45*time.Minute)) {
		t.Fatalf("expected overlapping intervals to be detected")
	}
	if IntervalsOverlap(base, e1, e1, e1.Add(30*time.Minute)) {
		t.Fatalf("half-open intervals sharing an endpoint must not overlap")
	}
}
