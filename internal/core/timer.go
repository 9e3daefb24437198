package core

import "time"

// maxCatchUp bounds how many ticks a single Due call may report after a stall.
const maxCatchUp = 8

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick length.
func (f *FixedStep) Step() time.Duration { return f.step }

// Seconds returns the tick length in seconds, the dt handed to Advance.
func (f *FixedStep) Seconds() float64 { return f.step.Seconds() }

// Due drains the accumulator and reports how many whole ticks elapsed since the
// previous call. After a long stall the count is capped and the remainder is
// dropped so the caller never spirals.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == maxCatchUp {
		f.accumulator = 0
	}
	return n
}
