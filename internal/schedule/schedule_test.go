package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlotsHaveLunchGap(t *testing.T) {
	require.Len(t, Slots, 9)
	require.NotContains(t, Slots, "12:00")
	require.Equal(t, "08:00", Slots[0])
	require.Equal(t, "17:00", Slots[len(Slots)-1])
}

func TestMonthRange(t *testing.T) {
	anchor := time.Date(2026, time.February, 14, 10, 0, 0, 0, time.UTC)
	from, to := MonthRange(anchor)
	require.Equal(t, "2026-02-01", from)
	require.Equal(t, "2026-02-28", to)

	anchor = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	from, to = MonthRange(anchor)
	require.Equal(t, "2024-02-01", from)
	require.Equal(t, "2024-02-29", to, "leap year")

	anchor = time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC)
	from, to = MonthRange(anchor)
	require.Equal(t, "2026-12-01", from)
	require.Equal(t, "2026-12-31", to)
}

func TestDayDisabledPastDates(t *testing.T) {
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	taken := make(AvailabilityMap)

	require.True(t, DayDisabled("2026-10-14", now, taken))
	require.True(t, DayDisabled("2025-01-01", now, taken))
	require.False(t, DayDisabled("2026-10-15", now, taken))
	require.False(t, DayDisabled("2026-10-16", now, taken))
}

func TestDayDisabledTodayAfterCutoff(t *testing.T) {
	taken := make(AvailabilityMap)

	beforeCutoff := time.Date(2026, time.October, 15, 16, 59, 0, 0, time.UTC)
	require.False(t, DayDisabled("2026-10-15", beforeCutoff, taken))

	atCutoff := time.Date(2026, time.October, 15, 17, 0, 0, 0, time.UTC)
	require.True(t, DayDisabled("2026-10-15", atCutoff, taken))
	// Tomorrow is unaffected by today's cutoff.
	require.False(t, DayDisabled("2026-10-16", atCutoff, taken))
}

func TestDayDisabledFullyBooked(t *testing.T) {
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	taken := make(AvailabilityMap)
	for _, slot := range Slots {
		taken.Take("2026-10-20", slot)
	}
	require.True(t, DayDisabled("2026-10-20", now, taken))

	// One free slot keeps the day open.
	delete(taken["2026-10-20"], "13:00")
	require.False(t, DayDisabled("2026-10-20", now, taken))
}

func TestDayDisabledMalformedDate(t *testing.T) {
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	require.True(t, DayDisabled("20/10/2026", now, make(AvailabilityMap)))
}

func TestSlotDisabled(t *testing.T) {
	taken := make(AvailabilityMap)
	taken.Take("2026-10-20", "08:00")

	require.True(t, SlotDisabled("", "08:00", taken), "no date selected disables every slot")
	require.True(t, SlotDisabled("2026-10-20", "08:00", taken))
	require.False(t, SlotDisabled("2026-10-20", "09:00", taken))
	require.False(t, SlotDisabled("2026-10-21", "08:00", taken))
}

func TestOpenSlots(t *testing.T) {
	taken := make(AvailabilityMap)
	taken.Take("2026-10-20", "08:00")
	taken.Take("2026-10-20", "13:00")

	open := OpenSlots("2026-10-20", taken)
	require.Len(t, open, len(Slots)-2)
	require.NotContains(t, open, "08:00")
	require.NotContains(t, open, "13:00")
	require.Contains(t, open, "09:00")

	require.Empty(t, OpenSlots("", taken))
}

func TestValidSlot(t *testing.T) {
	require.True(t, ValidSlot("08:00"))
	require.True(t, ValidSlot("17:00"))
	require.False(t, ValidSlot("12:00"))
	require.False(t, ValidSlot("8:00"))
	require.False(t, ValidSlot(""))
}

func TestAvailabilityMapTake(t *testing.T) {
	m := make(AvailabilityMap)
	require.False(t, m.Taken("2026-10-20", "08:00"))
	m.Take("2026-10-20", "08:00")
	require.True(t, m.Taken("2026-10-20", "08:00"))
	require.False(t, m.Taken("2026-10-20", "09:00"))
}
