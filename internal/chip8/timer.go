package chip8

import "time"

// TimerInterval is the real-time period after which a running timer is
// decremented by one tick, approximating 60Hz.
const TimerInterval = time.Second / 60

// Clock returns the current time. It is sampled by the timers, tests inject a
// clock that is advanced manually.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timer is an 8-bit counter that decays in real time, independent of the rate
// at which instructions are executed.
type Timer struct {
	ticks       uint8
	lastUpdated time.Time
}

// Set loads the tick count and restarts the decay period at now.
func (t *Timer) Set(ticks uint8, now time.Time) {
	t.ticks = ticks
	t.lastUpdated = now
}

// Ticks returns the tick count as of the last update.
func (t *Timer) Ticks() uint8 {
	return t.ticks
}

// Update decrements the timer by the number of whole intervals that elapsed
// since the last decrement, clamped at zero, and returns the number of ticks
// removed. The timestamp only advances when a decrement happened, and only by
// the consumed intervals, so a partial interval carries over to the next
// update.
func (t *Timer) Update(now time.Time) int {
	if t.ticks == 0 {
		return 0
	}

	elapsed := now.Sub(t.lastUpdated)
	intervals := int64(elapsed / TimerInterval)
	if intervals <= 0 {
		return 0
	}

	decrement := int(min(intervals, int64(t.ticks)))
	t.ticks -= uint8(decrement)
	t.lastUpdated = t.lastUpdated.Add(time.Duration(intervals) * TimerInterval)
	return decrement
}
