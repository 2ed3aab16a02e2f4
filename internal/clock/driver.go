// Package clock turns display-refresh timestamps into bounded simulation steps.
package clock

import "time"

// fpsSmoothing is the weight of the newest sample in the FPS moving average.
const fpsSmoothing = 0.1

// Driver converts successive frame timestamps into delta-time values.
// Deltas are clamped to maxDelta so a stalled or backgrounded terminal
// never produces one huge physics step when it resumes.
type Driver struct {
	maxDelta time.Duration
	last     time.Time
	started  bool
	frames   uint64
	fps      float64
}

// NewDriver creates a driver that never reports a delta above maxDelta.
// A non-positive maxDelta disables the bound.
func NewDriver(maxDelta time.Duration) *Driver {
	return &Driver{maxDelta: maxDelta}
}

// Start sets the reference timestamp without producing a step.
func (d *Driver) Start(now time.Time) {
	d.last = now
	d.started = true
}

// Advance records a frame timestamp and returns the step to simulate.
// The first frame after construction only establishes the reference and
// yields zero. Timestamps that go backwards also yield zero.
func (d *Driver) Advance(now time.Time) time.Duration {
	if !d.started {
		d.Start(now)
		return 0
	}

	raw := now.Sub(d.last)
	if raw <= 0 {
		return 0
	}
	d.last = now
	d.frames++

	sample := float64(time.Second) / float64(raw)
	if d.fps == 0 {
		d.fps = sample
	} else {
		d.fps += fpsSmoothing * (sample - d.fps)
	}

	if d.maxDelta > 0 && raw > d.maxDelta {
		return d.maxDelta
	}
	return raw
}

// Frames returns the number of frames that produced a step.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// FPS returns a smoothed frames-per-second estimate based on unclamped deltas.
func (d *Driver) FPS() float64 {
	return d.fps
}
