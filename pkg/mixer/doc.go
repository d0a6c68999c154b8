// ABOUTME: Gain envelope control package
// ABOUTME: Provides schedulable gain channels and click-free ramp control
// Package mixer provides live gain channels and a ramp controller for
// smooth, click-free loudness transitions.
//
// A Channel exposes one mutable scalar, its gain, and supports the
// scheduling primitives the Controller needs: immediate set, cancel
// pending, and linear-ramp-to-value-by-time. The Controller clamps
// targets into [0, 1], anchors every ramp at the channel's current
// (possibly mid-ramp) value and replaces any in-flight trajectory, so
// rapid retriggering — a user dragging a volume slider — never clicks
// and never queues.
//
//	ch := mixer.NewChannel("ambience")
//	ctl := mixer.NewController()
//	ctl.Ramp(ch, 0.8, time.Second)
//	ctl.Ramp(ch, 0.2, 500*time.Millisecond) // replaces, anchored mid-ramp
//
// Scheduling failures degrade to an immediate set: the worst case is
// an abrupt volume jump, never a propagated error.
package mixer
