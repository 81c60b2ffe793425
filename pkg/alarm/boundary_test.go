package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m, s int) time.Time {
	return time.Date(2025, 3, 14, h, m, s, 0, time.Local)
}

func TestNextBoundaryAndRemaining(t *testing.T) {
	halfHours := []int{0, 30}

	tests := []struct {
		name      string
		now       time.Time
		next      time.Time
		countdown Countdown
	}{
		{"mid quarter", at(10, 15, 30), at(10, 30, 0), Countdown{14, 30}},
		{"last second of hour", at(10, 59, 59), at(11, 0, 0), Countdown{0, 1}},
		{"exactly on half hour", at(10, 30, 0), at(11, 0, 0), Countdown{30, 0}},
		{"whole minute", at(10, 29, 0), at(10, 30, 0), Countdown{1, 0}},
		{"just after half hour", at(10, 30, 30), at(11, 0, 0), Countdown{29, 30}},
		{"rolls over midnight", at(23, 45, 10), at(23, 45, 10).Add(14*time.Minute + 50*time.Second), Countdown{14, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := NextBoundary(tt.now, halfHours)
			assert.True(t, tt.next.Equal(next), "next = %s, want %s", next, tt.next)
			assert.Equal(t, tt.countdown, RemainingUntil(tt.now, next))
		})
	}
}

func TestNextBoundaryDisplaysClockTime(t *testing.T) {
	assert.Equal(t, "10:30", NextBoundary(at(10, 15, 30), []int{0, 30}).Format("15:04"))
	assert.Equal(t, "11:00", NextBoundary(at(10, 59, 59), []int{0, 30}).Format("15:04"))
	assert.Equal(t, "00:00", NextBoundary(at(23, 59, 0), []int{0, 30}).Format("15:04"))
}

func TestNextBoundaryCustomMinutes(t *testing.T) {
	minutes := []int{15, 45}

	assert.True(t, at(10, 15, 0).Equal(NextBoundary(at(10, 0, 0), minutes)))
	assert.True(t, at(10, 45, 0).Equal(NextBoundary(at(10, 15, 0), minutes)))
	assert.True(t, at(11, 15, 0).Equal(NextBoundary(at(10, 50, 0), minutes)))
}

func TestRemainingUntilDropsSubSeconds(t *testing.T) {
	now := at(10, 15, 30).Add(700 * time.Millisecond)
	assert.Equal(t, Countdown{14, 30}, RemainingUntil(now, at(10, 30, 0)))
	assert.Equal(t, Countdown{}, RemainingUntil(at(10, 31, 0), at(10, 30, 0)))
}

func TestCountdownNeverShowsSixtyMinutes(t *testing.T) {
	hourly := []int{0}

	next := NextBoundary(at(10, 0, 0), hourly)
	assert.True(t, at(11, 0, 0).Equal(next))
	assert.Equal(t, Countdown{59, 59}, RemainingUntil(at(10, 0, 0), next))
	assert.Equal(t, Countdown{59, 59}, RemainingUntil(at(10, 0, 1), next))
	assert.Equal(t, Countdown{59, 58}, RemainingUntil(at(10, 0, 2), next))

	assert.Equal(t, Countdown{45, 0}, countdownOf(45*time.Minute))
	assert.Equal(t, Countdown{59, 59}, countdownOf(2*time.Hour))
}

func TestIsBoundary(t *testing.T) {
	minutes := []int{0, 30}

	assert.True(t, IsBoundary(at(10, 0, 0), minutes))
	assert.True(t, IsBoundary(at(10, 30, 0), minutes))
	assert.False(t, IsBoundary(at(10, 30, 1), minutes))
	assert.False(t, IsBoundary(at(10, 15, 0), minutes))
}

func TestCrossedBoundary(t *testing.T) {
	minutes := []int{0, 30}

	b, ok := crossedBoundary(at(10, 29, 59), at(10, 30, 1), minutes)
	assert.True(t, ok)
	assert.True(t, at(10, 30, 0).Equal(b))

	_, ok = crossedBoundary(at(10, 30, 1), at(10, 30, 2), minutes)
	assert.False(t, ok)

	b, ok = crossedBoundary(at(10, 30, 0), at(10, 30, 0), minutes)
	assert.True(t, ok, "poll landing exactly on the boundary")
	assert.True(t, at(10, 30, 0).Equal(b))

	b, ok = crossedBoundary(at(9, 50, 0), at(11, 10, 0), minutes)
	assert.True(t, ok)
	assert.True(t, at(11, 0, 0).Equal(b), "only the latest boundary is reported")
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.BoundaryMinutes = []int{30, 0, 30}
	assert.NoError(t, opts.Validate())
	assert.Equal(t, []int{0, 30}, opts.BoundaryMinutes)

	opts.BoundaryMinutes = []int{60}
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Mode = ModeInterval
	opts.Interval = 0
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Mode = "sometimes"
	assert.Error(t, opts.Validate())
}
