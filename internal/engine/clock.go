package engine

import "time"

// MaxFrameDelta caps a single tick's elapsed time. A larger gap (terminal
// suspended, laptop lid closed) would otherwise teleport the challenge past the line.
const MaxFrameDelta = 100 * time.Millisecond

// Timer is a cancellable one-shot timer.
type Timer interface {
	// Stop prevents the timer from firing.
	// Returns false if the timer already fired or was already stopped.
	Stop() bool
}

// Clock supplies time and one-shot timers to the engine.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall-clock implementation backed by runtime timers.
// Timer callbacks run on their own goroutines.
type SystemClock struct{}

// NewSystemClock creates a wall-clock time source.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current time with a monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc calls f on its own goroutine after d elapses.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClampDelta guards a frame delta against clock anomalies.
// Negative deltas become zero; deltas above limit are capped at limit.
// A non-positive limit disables the upper cap.
func ClampDelta(delta, limit time.Duration) time.Duration {
	if delta < 0 {
		return 0
	}
	if limit > 0 && delta > limit {
		return limit
	}
	return delta
}

// Advance moves a challenge's progress forward by delta at the given speed.
// Speed is in distance units per second. crossed reports that the challenge
// reached the deadline; the returned progress is then pinned at 1.
func Advance(progress float64, delta time.Duration, speed, distance float64) (next float64, crossed bool) {
	if distance <= 0 {
		return 1, true
	}
	if delta < 0 {
		delta = 0
	}

	next = progress + speed*delta.Seconds()/distance
	if next < progress {
		next = progress
	}
	if next >= 1 {
		return 1, true
	}
	return next, false
}
