package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestSlotGridMorningWindow(t *testing.T) {
	// 08:00-12:00 with 30 minute slots: 12:00 itself is excluded because a
	// slot needs 30 minutes of room.
	day := date(2026, time.March, 2, 0, 0) // a Monday
	grid := slotGrid(day, 8*time.Hour, 12*time.Hour, 30*time.Minute)

	want := []time.Time{
		date(2026, time.March, 2, 8, 0),
		date(2026, time.March, 2, 8, 30),
		date(2026, time.March, 2, 9, 0),
		date(2026, time.March, 2, 9, 30),
		date(2026, time.March, 2, 10, 0),
		date(2026, time.March, 2, 10, 30),
		date(2026, time.March, 2, 11, 0),
		date(2026, time.March, 2, 11, 30),
	}
	assert.Equal(t, want, grid)
}

func TestSlotGridWindowSmallerThanSlot(t *testing.T) {
	day := date(2026, time.March, 2, 0, 0)
	assert.Empty(t, slotGrid(day, 8*time.Hour, 8*time.Hour+15*time.Minute, 30*time.Minute))
	assert.Empty(t, slotGrid(day, 8*time.Hour, 8*time.Hour, 30*time.Minute))
}

func TestSlotGridExactSingleSlot(t *testing.T) {
	day := date(2026, time.March, 2, 0, 0)
	grid := slotGrid(day, 8*time.Hour, 8*time.Hour+30*time.Minute, 30*time.Minute)
	require.Len(t, grid, 1)
	assert.Equal(t, date(2026, time.March, 2, 8, 0), grid[0])
}

func TestSubtractBooked(t *testing.T) {
	day := date(2026, time.March, 2, 0, 0)
	grid := slotGrid(day, 8*time.Hour, 12*time.Hour, 30*time.Minute)

	free := subtractBooked(grid, []time.Time{date(2026, time.March, 2, 9, 0)})

	require.Len(t, free, 7)
	for _, s := range free {
		assert.False(t, s.Equal(date(2026, time.March, 2, 9, 0)))
	}
	// Order is preserved.
	assert.Equal(t, date(2026, time.March, 2, 8, 0), free[0])
	assert.Equal(t, date(2026, time.March, 2, 11, 30), free[6])
}

func TestSubtractBookedNothingBooked(t *testing.T) {
	day := date(2026, time.March, 2, 0, 0)
	grid := slotGrid(day, 8*time.Hour, 12*time.Hour, 30*time.Minute)
	assert.Equal(t, grid, subtractBooked(grid, nil))
}

func TestFirstCandidateWeekday(t *testing.T) {
	h := DefaultHours()
	// Tuesday afternoon -> Wednesday at opening.
	now := date(2026, time.March, 3, 14, 22)
	assert.Equal(t, date(2026, time.March, 4, 8, 0), h.firstCandidate(now))
}

func TestFirstCandidateSkipsWeekend(t *testing.T) {
	h := DefaultHours()
	// Friday -> Saturday and Sunday are skipped -> Monday at opening.
	now := date(2026, time.March, 6, 10, 0)
	assert.Equal(t, date(2026, time.March, 9, 8, 0), h.firstCandidate(now))

	// Saturday -> Monday as well.
	now = date(2026, time.March, 7, 9, 0)
	assert.Equal(t, date(2026, time.March, 9, 8, 0), h.firstCandidate(now))
}

func TestAdvanceWithinDay(t *testing.T) {
	h := DefaultHours()
	assert.Equal(t, date(2026, time.March, 4, 10, 0), h.advance(date(2026, time.March, 4, 9, 0)))
	// 16:30 + 1h = 17:30, still inside the window.
	assert.Equal(t, date(2026, time.March, 4, 17, 30), h.advance(date(2026, time.March, 4, 16, 30)))
}

func TestAdvanceRollsOverPastClose(t *testing.T) {
	h := DefaultHours()
	// 17:00 + 1h = 18:00 is past 17:30 -> next day at opening.
	assert.Equal(t, date(2026, time.March, 5, 8, 0), h.advance(date(2026, time.March, 4, 17, 0)))
}

func TestAdvanceRollsOverWeekend(t *testing.T) {
	h := DefaultHours()
	// Friday late afternoon rolls over to Monday.
	assert.Equal(t, date(2026, time.March, 9, 8, 0), h.advance(date(2026, time.March, 6, 17, 0)))
}

func TestBusinessDay(t *testing.T) {
	assert.True(t, businessDay(date(2026, time.March, 2, 0, 0)))  // Monday
	assert.True(t, businessDay(date(2026, time.March, 6, 0, 0)))  // Friday
	assert.False(t, businessDay(date(2026, time.March, 7, 0, 0))) // Saturday
	assert.False(t, businessDay(date(2026, time.March, 8, 0, 0))) // Sunday
}
