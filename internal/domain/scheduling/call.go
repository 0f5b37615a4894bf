package scheduling

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CallStatus string

const (
	StatusRequested CallStatus = "REQUESTED"
	StatusConfirmed CallStatus = "CONFIRMED"
	StatusCancelled CallStatus = "CANCELLED"
	StatusCompleted CallStatus = "COMPLETED"
)

var ErrInvalidTransition = errors.New("invalid call status transition")

type Call struct {
	ID              uuid.UUID
	GuideID         uuid.UUID
	SeekerID        uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Status          CallStatus
	Price           float64
	PlatformFee     float64
	Payout          float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c Call) EndsAt() time.Time {
	return c.ScheduledAt.Add(time.Duration(c.DurationMinutes) * time.Minute)
}

func (s CallStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s CallStatus) Active() bool {
	return s == StatusRequested || s == StatusConfirmed
}

// Transition enforces the call lifecycle: REQUESTED may be confirmed or
// declined, CONFIRMED may be completed or cancelled, terminal states are
// final.
func Transition(from, to CallStatus) error {
	switch from {
	case StatusRequested:
		if to == StatusConfirmed || to == StatusCancelled {
			return nil
		}
	case StatusConfirmed:
		if to == StatusCompleted || to == StatusCancelled {
			return nil
		}
	}
	return ErrInvalidTransition
}

// IntervalsOverlap reports whether [s1,e1) and [s2,e2) intersect.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

type Pricing struct {
	Price       float64
	PlatformFee float64
	Payout      float64
}

// PriceCall derives the price from the guide's hourly rate: a 60-minute
// call bills the full rate, a 30-minute call half. The platform retains
// feePercent of the price; the guide is paid out the remainder.
func PriceCall(hourlyRate float64, durationMinutes int, feePercent float64) Pricing {
	price := hourlyRate
	if durationMinutes == 30 {
		price = hourlyRate / 2
	}
	fee := price * feePercent / 100
	return Pricing{
		Price:       price,
		PlatformFee: fee,
		Payout:      price - fee,
	}
}
