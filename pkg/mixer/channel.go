// ABOUTME: Software gain channel implementation
// ABOUTME: Long-lived mixer node with linear time-anchored gain trajectories
package mixer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. Injectable so trajectory math is
// testable without sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// GainParam is the schedulable loudness parameter of a playback
// channel. Implementations must anchor ramps against wall time and
// report mid-ramp values from Gain.
type GainParam interface {
	// Gain returns the current value, interpolated if a ramp is active.
	Gain() float64

	// SetGain cancels any pending trajectory and sets the value now.
	SetGain(v float64)

	// CancelRamp cancels the pending trajectory, freezing the value
	// where it currently stands.
	CancelRamp()

	// RampTo schedules a linear transition from the current value to
	// target, completing at the given time.
	RampTo(target float64, at time.Time) error
}

// rampSeg is one linear gain trajectory.
type rampSeg struct {
	from, to   float64
	start, end time.Time
}

// Channel is a long-lived software gain node. The playback layer reads
// its gain per block; the ramp controller schedules changes on it. The
// gain domain is conceptually unbounded but used only in [0, 1].
type Channel struct {
	id    string
	name  string
	clock Clock

	mu   sync.Mutex
	base float64 // value when no ramp is active
	ramp *rampSeg
}

// NewChannel creates a named channel with unity gain.
func NewChannel(name string) *Channel {
	return NewChannelWithClock(name, realClock{})
}

// NewChannelWithClock creates a channel over an injected clock.
func NewChannelWithClock(name string, clock Clock) *Channel {
	if clock == nil {
		clock = realClock{}
	}
	return &Channel{
		id:    uuid.New().String(),
		name:  name,
		clock: clock,
		base:  1.0,
	}
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() string { return c.id }

// Name returns the channel's display name.
func (c *Channel) Name() string { return c.name }

// Gain returns the current gain, mid-ramp aware.
func (c *Channel) Gain() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gainAtLocked(c.clock.Now())
}

// GainAt returns the gain the channel holds (or will hold) at t.
func (c *Channel) GainAt(t time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gainAtLocked(t)
}

func (c *Channel) gainAtLocked(t time.Time) float64 {
	if c.ramp == nil {
		return c.base
	}
	if !t.After(c.ramp.start) {
		return c.ramp.from
	}
	if !t.Before(c.ramp.end) {
		return c.ramp.to
	}
	total := c.ramp.end.Sub(c.ramp.start).Seconds()
	frac := t.Sub(c.ramp.start).Seconds() / total
	return c.ramp.from + (c.ramp.to-c.ramp.from)*frac
}

// SetGain cancels any pending ramp and sets the gain immediately.
func (c *Channel) SetGain(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ramp = nil
	c.base = v
}

// CancelRamp cancels the pending trajectory, keeping whatever value
// the channel holds right now.
func (c *Channel) CancelRamp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.gainAtLocked(c.clock.Now())
	c.ramp = nil
}

// RampTo schedules a linear transition from the current value to
// target, completing at the given time. A completion time not after
// now is rejected; callers are expected to pass a future deadline.
func (c *Channel) RampTo(target float64, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !at.After(now) {
		return fmt.Errorf("ramp end %v is not in the future", at)
	}

	from := c.gainAtLocked(now)
	c.base = target
	c.ramp = &rampSeg{from: from, to: target, start: now, end: at}
	return nil
}
