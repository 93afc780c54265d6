package appointment

import "time"

// Hours describes the clinic's bookable window and the parameters of the
// slot search. DayStart and DayEnd are offsets from midnight in the
// clinic's local day; DayEnd is the last minute an appointment may occupy,
// not the last slot start.
type Hours struct {
	DayStart     time.Duration
	DayEnd       time.Duration
	SlotInterval time.Duration
	Step         time.Duration
	HorizonDays  int
}

func DefaultHours() Hours {
	return Hours{
		DayStart:     8 * time.Hour,
		DayEnd:       17*time.Hour + 30*time.Minute,
		SlotInterval: 30 * time.Minute,
		Step:         time.Hour,
		HorizonDays:  90,
	}
}

// businessDay treats Monday through Friday as bookable. The clinic runs a
// five-day week; Saturday and Sunday are skipped everywhere.
func businessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// slotGrid generates every slot start from `from` up to `to` minus one
// slot, inclusive, anchored to the given date. A window smaller than one
// slot yields nothing.
func slotGrid(date time.Time, from, to, interval time.Duration) []time.Time {
	if interval <= 0 || to-from < interval {
		return nil
	}
	day := midnight(date)
	var slots []time.Time
	for at := from; at <= to-interval; at += interval {
		slots = append(slots, day.Add(at))
	}
	return slots
}

// subtractBooked removes booked starts from the candidate grid, preserving
// order. Booked timestamps are matched at second precision.
func subtractBooked(grid, booked []time.Time) []time.Time {
	if len(booked) == 0 {
		return grid
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Unix()] = struct{}{}
	}
	free := make([]time.Time, 0, len(grid))
	for _, s := range grid {
		if _, ok := taken[s.Unix()]; !ok {
			free = append(free, s)
		}
	}
	return free
}

// firstCandidate is where the open-slot walk starts: the day after `now`
// at opening time, moved forward past any weekend.
func (h Hours) firstCandidate(now time.Time) time.Time {
	c := midnight(now).AddDate(0, 0, 1).Add(h.DayStart)
	for !businessDay(c) {
		c = c.AddDate(0, 0, 1)
	}
	return c
}

// advance moves one step forward, rolling over to the next business day's
// opening when the step lands past the end of the bookable window.
func (h Hours) advance(t time.Time) time.Time {
	c := t.Add(h.Step)
	if c.Sub(midnight(c)) > h.DayEnd {
		c = midnight(c).AddDate(0, 0, 1).Add(h.DayStart)
	}
	for !businessDay(c) {
		c = c.AddDate(0, 0, 1)
	}
	return c
}

// horizon is the timestamp past which the open-slot walk gives up.
func (h Hours) horizon(now time.Time) time.Time {
	days := h.HorizonDays
	if days <= 0 {
		days = 90
	}
	return now.AddDate(0, 0, days)
}
