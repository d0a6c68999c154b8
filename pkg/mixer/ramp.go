// ABOUTME: Ramp controller for click-free volume transitions
// ABOUTME: Clamps targets, replaces in-flight ramps and degrades on scheduler failure
package mixer

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/quietpath/ambience-go/pkg/audio"
)

const (
	// DefaultRampDuration is used when callers pass a non-positive
	// duration.
	DefaultRampDuration = 1500 * time.Millisecond

	// MinRampDuration guards against zero-length ramps the underlying
	// scheduler would reject.
	MinRampDuration = 10 * time.Millisecond
)

// Controller schedules gain ramps on channels. The zero value is not
// usable; construct with NewController.
type Controller struct {
	clock Clock

	fallbacks atomic.Int64

	// OnFallback, if set, observes scheduling failures that degraded
	// to an immediate set. Never called with a nil error.
	OnFallback func(err error)
}

// NewController creates a ramp controller on the real clock.
func NewController() *Controller {
	return NewControllerWithClock(realClock{})
}

// NewControllerWithClock creates a controller over an injected clock.
func NewControllerWithClock(clock Clock) *Controller {
	if clock == nil {
		clock = realClock{}
	}
	return &Controller{clock: clock}
}

// Ramp transitions param's gain linearly from its current (possibly
// mid-ramp) value to target over duration, replacing any in-flight
// trajectory. A nil param is a silent no-op. Targets are clamped into
// [0, 1]; durations are floored at MinRampDuration, and non-positive
// durations select DefaultRampDuration.
//
// Scheduling failures are swallowed: the gain is set immediately to
// the clamped target instead, the fallback counter increments and the
// OnFallback hook (if any) observes the error. Nothing propagates.
func (c *Controller) Ramp(param GainParam, target float64, duration time.Duration) {
	if param == nil {
		return
	}

	target = audio.Clamp01(target)

	if duration <= 0 {
		duration = DefaultRampDuration
	}
	if duration < MinRampDuration {
		duration = MinRampDuration
	}

	param.CancelRamp()
	if err := param.RampTo(target, c.clock.Now().Add(duration)); err != nil {
		c.fallbacks.Add(1)
		log.Printf("Gain ramp unavailable, setting immediately: %v", err)
		param.SetGain(target)
		if c.OnFallback != nil {
			c.OnFallback(err)
		}
	}
}

// Fallbacks reports how many ramps degraded to an immediate set.
func (c *Controller) Fallbacks() int64 {
	return c.fallbacks.Load()
}
