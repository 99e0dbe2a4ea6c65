// Package schedule owns the fixed daily slot catalog and the calendar
// rules that decide which days and time slots can still be booked.
package schedule

import (
	"time"
)

// Slots is the daily catalog of bookable start times. There is no 12:00
// slot (lunch break) and the last slot doubles as the same-day cutoff.
var Slots = []string{
	"08:00", "09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// CutoffHour closes same-day booking: once the local clock reaches it,
// today renders as unavailable regardless of load.
const CutoffHour = 17

// DateLayout is the ISO date used throughout the booking flow.
const DateLayout = "2006-01-02"

// AvailabilityMap maps an ISO date to the set of already-taken "HH:MM"
// slots for that day, across all customers.
type AvailabilityMap map[string]map[string]bool

// Take marks a slot as booked.
func (m AvailabilityMap) Take(date, slot string) {
	day, ok := m[date]
	if !ok {
		day = make(map[string]bool, len(Slots))
		m[date] = day
	}
	day[slot] = true
}

// Taken reports whether the slot is already booked on the date.
func (m AvailabilityMap) Taken(date, slot string) bool {
	return m[date][slot]
}

// BusinessLocation returns the shop's wall clock. Falls back to a fixed
// offset when the tz database is unavailable.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		return time.FixedZone("CLT", -4*60*60)
	}
	return loc
}

// MonthRange returns the first and last day of the month containing t,
// as ISO dates, for scoping the availability fetch.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

// DayDisabled reports whether a calendar day cannot be booked: it is in
// the past, it is today at/after the cutoff hour, or every slot of the
// day is already taken.
func DayDisabled(date string, now time.Time, taken AvailabilityMap) bool {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return true
	}
	if day.Equal(today) && now.Hour() >= CutoffHour {
		return true
	}
	return fullyBooked(date, taken)
}

// SlotDisabled reports whether a time slot can be picked. Without a
// selected date every slot is disabled.
func SlotDisabled(date, slot string, taken AvailabilityMap) bool {
	if date == "" {
		return true
	}
	return taken.Taken(date, slot)
}

// OpenSlots lists the still-bookable slots for a date, in catalog order.
func OpenSlots(date string, taken AvailabilityMap) []string {
	var open []string
	for _, slot := range Slots {
		if !SlotDisabled(date, slot, taken) {
			open = append(open, slot)
		}
	}
	return open
}

func fullyBooked(date string, taken AvailabilityMap) bool {
	day, ok := taken[date]
	if !ok {
		return false
	}
	for _, slot := range Slots {
		if !day[slot] {
			return false
		}
	}
	return true
}

// ValidSlot reports whether the string is one of the catalog slots.
func ValidSlot(slot string) bool {
	for _, s := range Slots {
		if s == slot {
			return true
		}
	}
	return false
}
