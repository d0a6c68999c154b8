// ABOUTME: Tests for the ramp controller
// ABOUTME: Tests clamping, cancel-and-replace composition and fallback degradation
package mixer

import (
	"errors"
	"testing"
	"time"
)

func TestRampNilChannelIsNoOp(t *testing.T) {
	ctl := NewController()
	// Must not panic and must not count as a fallback.
	ctl.Ramp(nil, 0.5, time.Second)
	if ctl.Fallbacks() != 0 {
		t.Errorf("expected 0 fallbacks, got %d", ctl.Fallbacks())
	}
}

func TestRampClampsTarget(t *testing.T) {
	clock := newFakeClock()
	ctl := NewControllerWithClock(clock)

	tests := []struct {
		target   float64
		expected float64
	}{
		{1.4, 1.0},
		{-0.3, 0.0},
		{0.65, 0.65},
	}

	for _, tt := range tests {
		ch := NewChannelWithClock("ambience", clock)
		ch.SetGain(0.5)

		ctl.Ramp(ch, tt.target, 100*time.Millisecond)
		clock.Advance(time.Second)

		if g := ch.Gain(); !almostEqual(g, tt.expected) {
			t.Errorf("target %v: expected %v after ramp, got %v", tt.target, tt.expected, g)
		}
	}
}

func TestRampDurationFloors(t *testing.T) {
	clock := newFakeClock()
	ctl := NewControllerWithClock(clock)
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0)

	// 1ms requested, floored to 10ms: still mid-ramp at 5ms.
	ctl.Ramp(ch, 1.0, time.Millisecond)
	clock.Advance(5 * time.Millisecond)
	if g := ch.Gain(); !almostEqual(g, 0.5) {
		t.Errorf("expected 0.5 at floored midpoint, got %v", g)
	}
	clock.Advance(5 * time.Millisecond)
	if g := ch.Gain(); !almostEqual(g, 1.0) {
		t.Errorf("expected 1.0 at floored end, got %v", g)
	}
}

func TestRampDefaultDuration(t *testing.T) {
	clock := newFakeClock()
	ctl := NewControllerWithClock(clock)
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0)

	ctl.Ramp(ch, 1.0, 0)

	clock.Advance(DefaultRampDuration / 2)
	if g := ch.Gain(); !almostEqual(g, 0.5) {
		t.Errorf("expected midpoint at half the default duration, got %v", g)
	}
}

func TestRampsComposeByCancelAndReplace(t *testing.T) {
	clock := newFakeClock()
	ctl := NewControllerWithClock(clock)
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0)

	// First ramp toward 0.8 over 1s; retrigger mid-flight.
	ctl.Ramp(ch, 0.8, time.Second)
	clock.Advance(500 * time.Millisecond)

	anchor := ch.Gain() // 0.4, mid-ramp
	if !almostEqual(anchor, 0.4) {
		t.Fatalf("expected mid-ramp anchor 0.4, got %v", anchor)
	}

	ctl.Ramp(ch, 0.2, 500*time.Millisecond)

	// New trajectory starts from the anchored value, not from 0.
	clock.Advance(250 * time.Millisecond)
	want := anchor + (0.2-anchor)/2
	if g := ch.Gain(); !almostEqual(g, want) {
		t.Errorf("expected %v halfway through replacement ramp, got %v", want, g)
	}

	// And completes at the new deadline, never revisiting 0.8.
	clock.Advance(250 * time.Millisecond)
	if g := ch.Gain(); !almostEqual(g, 0.2) {
		t.Errorf("expected 0.2 at replacement deadline, got %v", g)
	}
}

// failingParam rejects all scheduling, exercising the degradation path.
type failingParam struct {
	gain      float64
	setCalls  int
	rampCalls int
}

func (p *failingParam) Gain() float64 { return p.gain }
func (p *failingParam) SetGain(v float64) {
	p.gain = v
	p.setCalls++
}
func (p *failingParam) CancelRamp() {}
func (p *failingParam) RampTo(target float64, at time.Time) error {
	p.rampCalls++
	return errors.New("scheduler unavailable")
}

func TestRampFallsBackToImmediateSet(t *testing.T) {
	ctl := NewController()

	var observed error
	ctl.OnFallback = func(err error) { observed = err }

	p := &failingParam{gain: 0.9}
	ctl.Ramp(p, 1.7, time.Second)

	if p.setCalls != 1 {
		t.Fatalf("expected exactly one immediate set, got %d", p.setCalls)
	}
	if !almostEqual(p.gain, 1.0) {
		t.Errorf("expected clamped target 1.0 applied, got %v", p.gain)
	}
	if ctl.Fallbacks() != 1 {
		t.Errorf("expected fallback counter 1, got %d", ctl.Fallbacks())
	}
	if observed == nil {
		t.Error("expected OnFallback to observe the error")
	}
}
