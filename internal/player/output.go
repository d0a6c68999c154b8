// ABOUTME: Audio output using the oto library
// ABOUTME: Loops sample buffers through gain-scaled playback voices
package player

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/quietpath/ambience-go/pkg/audio"
	"github.com/quietpath/ambience-go/pkg/mixer"
)

// Engine manages the audio output device and active voices.
type Engine struct {
	otoCtx     *oto.Context
	sampleRate int
	ready      bool
}

// NewEngine opens a mono 16-bit output at the given sample rate and
// waits for the device to become ready.
func NewEngine(sampleRate int) (*Engine, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	log.Printf("Audio output initialized: %dHz, mono", sampleRate)

	return &Engine{otoCtx: ctx, sampleRate: sampleRate, ready: true}, nil
}

// SampleRate returns the output sample rate.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Loop starts looping buf through a new voice whose loudness follows
// the channel's gain. The voice plays until stopped.
func (e *Engine) Loop(buf *audio.Buffer, ch *mixer.Channel) (*Voice, error) {
	if !e.ready {
		return nil, fmt.Errorf("output not initialized")
	}
	if buf == nil || len(buf.Samples) == 0 {
		return nil, fmt.Errorf("empty buffer")
	}

	stream := &loopStream{samples: buf.Samples, gain: ch.Gain}
	player := e.otoCtx.NewPlayer(stream)
	player.Play()

	return &Voice{player: player, channel: ch}, nil
}

// Close suspends the output device.
func (e *Engine) Close() {
	if e.otoCtx != nil {
		e.otoCtx.Suspend()
		e.ready = false
	}
}

// Voice is one looping playback of a buffer on a gain channel.
type Voice struct {
	player  *oto.Player
	channel *mixer.Channel
}

// Channel returns the gain channel driving this voice.
func (v *Voice) Channel() *mixer.Channel { return v.channel }

// Stop halts playback and releases the voice.
func (v *Voice) Stop() {
	if v.player == nil {
		return
	}
	v.player.Pause()
	if err := v.player.Close(); err != nil {
		log.Printf("Error closing voice: %v", err)
	}
	v.player = nil
}

// FadeOutAndStop ramps the voice's channel to silence and stops it
// once the ramp completes.
func (v *Voice) FadeOutAndStop(ctl *mixer.Controller, d time.Duration) {
	ctl.Ramp(v.channel, 0, d)
	go func() {
		time.Sleep(d)
		v.Stop()
	}()
}

// loopStream is an endless io.Reader producing 16-bit little-endian
// PCM from a float64 buffer, scaled by the channel gain sampled once
// per read.
type loopStream struct {
	samples []float64
	pos     int
	gain    func() float64
}

func (s *loopStream) Read(p []byte) (int, error) {
	g := 1.0
	if s.gain != nil {
		g = audio.Clamp01(s.gain())
	}

	n := 0
	for n+2 <= len(p) {
		v := uint16(audio.SampleToInt16(s.samples[s.pos] * g))
		p[n] = byte(v)
		p[n+1] = byte(v >> 8)
		n += 2

		s.pos++
		if s.pos >= len(s.samples) {
			s.pos = 0
		}
	}
	return n, nil
}
