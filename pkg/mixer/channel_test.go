// ABOUTME: Tests for the software gain channel
// ABOUTME: Tests trajectory interpolation, cancellation and anchoring
package mixer

import (
	"math"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for deterministic trajectories.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestChannelDefaults(t *testing.T) {
	ch := NewChannel("music")
	if ch.Name() != "music" {
		t.Errorf("expected name music, got %s", ch.Name())
	}
	if ch.ID() == "" {
		t.Error("expected non-empty channel ID")
	}
	if ch.Gain() != 1.0 {
		t.Errorf("expected unity gain, got %v", ch.Gain())
	}
}

func TestChannelRampInterpolation(t *testing.T) {
	clock := newFakeClock()
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0)

	if err := ch.RampTo(1.0, clock.Now().Add(time.Second)); err != nil {
		t.Fatalf("RampTo failed: %v", err)
	}

	clock.Advance(250 * time.Millisecond)
	if g := ch.Gain(); !almostEqual(g, 0.25) {
		t.Errorf("expected 0.25 at 250ms, got %v", g)
	}

	clock.Advance(250 * time.Millisecond)
	if g := ch.Gain(); !almostEqual(g, 0.5) {
		t.Errorf("expected 0.5 at 500ms, got %v", g)
	}

	clock.Advance(time.Second)
	if g := ch.Gain(); !almostEqual(g, 1.0) {
		t.Errorf("expected 1.0 after completion, got %v", g)
	}
}

func TestChannelCancelFreezesCurrentValue(t *testing.T) {
	clock := newFakeClock()
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0)

	ch.RampTo(1.0, clock.Now().Add(time.Second))
	clock.Advance(400 * time.Millisecond)
	ch.CancelRamp()

	clock.Advance(time.Hour)
	if g := ch.Gain(); !almostEqual(g, 0.4) {
		t.Errorf("expected frozen 0.4, got %v", g)
	}
}

func TestChannelSetGainCancelsRamp(t *testing.T) {
	clock := newFakeClock()
	ch := NewChannelWithClock("voice", clock)
	ch.SetGain(0)

	ch.RampTo(1.0, clock.Now().Add(time.Second))
	clock.Advance(100 * time.Millisecond)
	ch.SetGain(0.7)

	clock.Advance(time.Second)
	if g := ch.Gain(); !almostEqual(g, 0.7) {
		t.Errorf("expected 0.7, got %v", g)
	}
}

func TestChannelRampRejectsPastDeadline(t *testing.T) {
	clock := newFakeClock()
	ch := NewChannelWithClock("ambience", clock)

	if err := ch.RampTo(0.5, clock.Now()); err == nil {
		t.Error("expected error for non-future deadline")
	}
	if err := ch.RampTo(0.5, clock.Now().Add(-time.Second)); err == nil {
		t.Error("expected error for past deadline")
	}
}

func TestChannelGainAt(t *testing.T) {
	clock := newFakeClock()
	ch := NewChannelWithClock("ambience", clock)
	ch.SetGain(0.2)
	ch.RampTo(0.8, clock.Now().Add(time.Second))

	// Before start clamps to the anchor, after end to the target.
	if g := ch.GainAt(clock.Now().Add(-time.Minute)); !almostEqual(g, 0.2) {
		t.Errorf("expected anchor value before start, got %v", g)
	}
	if g := ch.GainAt(clock.Now().Add(time.Minute)); !almostEqual(g, 0.8) {
		t.Errorf("expected target after end, got %v", g)
	}
	if g := ch.GainAt(clock.Now().Add(500 * time.Millisecond)); !almostEqual(g, 0.5) {
		t.Errorf("expected midpoint 0.5, got %v", g)
	}
}
