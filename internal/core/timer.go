package core

import "time"

// Period bounds for the generation ticker.
const (
	MinPeriod  = 5 * time.Millisecond
	PeriodStep = 50 * time.Millisecond
)

// Ticker decides when the next generation is due. Unlike a fixed TPS loop it
// fires at most once per call, so a slow frame never runs a burst of catch-up
// generations.
type Ticker struct {
	period time.Duration
	last   time.Time
}

// NewTicker constructs a Ticker firing every period.
func NewTicker(period time.Duration) *Ticker {
	t := &Ticker{}
	t.SetPeriod(period)
	return t
}

// Period returns the current interval between generations.
func (t *Ticker) Period() time.Duration { return t.period }

// SetPeriod changes the interval, clamped to MinPeriod. It is safe to call
// from the main loop.
func (t *Ticker) SetPeriod(period time.Duration) {
	if period < MinPeriod {
		period = MinPeriod
	}
	t.period = period
}

// Adjust shifts the period by notches*PeriodStep and returns the new period.
func (t *Ticker) Adjust(notches int) time.Duration {
	t.SetPeriod(t.period + time.Duration(notches)*PeriodStep)
	return t.period
}

// Due reports whether a generation should run at now. The first call always
// starts the clock without firing.
func (t *Ticker) Due(now time.Time) bool {
	if t.last.IsZero() {
		t.last = now
		return false
	}
	if now.Sub(t.last) < t.period {
		return false
	}
	t.last = now
	return true
}
