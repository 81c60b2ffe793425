package alarm

import "time"

// Countdown is the minutes:seconds pair shown on the flip clock
type Countdown struct {
	Minutes int
	Seconds int
}

// NextBoundary returns the first wall-clock boundary strictly after the
// minute of now. minutes must be sorted and within 0-59. A boundary past the
// last entry rolls into the next hour.
func NextBoundary(now time.Time, minutes []int) time.Time {
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	for _, m := range minutes {
		if m > now.Minute() {
			return hour.Add(time.Duration(m) * time.Minute)
		}
	}
	return hour.Add(time.Duration(60+minutes[0]) * time.Minute)
}

// RemainingUntil splits the whole seconds between now and boundary into a
// Countdown. Partial seconds of now are dropped, so 10:15:30 to 10:30
// yields 14:30.
func RemainingUntil(now, boundary time.Time) Countdown {
	return countdownOf(boundary.Sub(now.Truncate(time.Second)))
}

// countdownOf converts d to a Countdown. Minutes stay within 0-59: a full
// hour or more shows as 59:59.
func countdownOf(d time.Duration) Countdown {
	if d < 0 {
		return Countdown{}
	}
	if d >= time.Hour {
		return Countdown{Minutes: 59, Seconds: 59}
	}
	return Countdown{
		Minutes: int(d / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// IsBoundary reports whether now falls in the first second of a boundary minute
func IsBoundary(now time.Time, minutes []int) bool {
	if now.Second() != 0 {
		return false
	}
	for _, m := range minutes {
		if now.Minute() == m {
			return true
		}
	}
	return false
}

// crossedBoundary returns the latest boundary in (from, to], if any.
// Polls can land on either side of second zero, so the watcher checks the
// whole span since its previous poll.
func crossedBoundary(from, to time.Time, minutes []int) (time.Time, bool) {
	if IsBoundary(to, minutes) {
		return to.Truncate(time.Second), true
	}
	if !to.After(from) {
		return time.Time{}, false
	}
	b := NextBoundary(from, minutes)
	if b.After(to) {
		return time.Time{}, false
	}
	for {
		next := NextBoundary(b, minutes)
		if next.After(to) {
			return b, true
		}
		b = next
	}
}
