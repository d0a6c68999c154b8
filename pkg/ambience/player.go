// ABOUTME: High-level ambience Player facade
// ABOUTME: Manages output, channels, buffer selection and ramped volume state
package ambience

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quietpath/ambience-go/internal/player"
	"github.com/quietpath/ambience-go/pkg/audio"
	"github.com/quietpath/ambience-go/pkg/audio/decode"
	"github.com/quietpath/ambience-go/pkg/mixer"
	"github.com/quietpath/ambience-go/pkg/texture"
)

// Config holds player configuration.
type Config struct {
	// SampleRate for synthesis and output (default: 44100)
	SampleRate int

	// LoopSeconds is the synthesized loop length (default: 2)
	LoopSeconds float64

	// AmbienceVolume is the initial ambience volume, 1-100. Zero means
	// the default of 60; pass a negative value for a muted start.
	AmbienceVolume int

	// MusicVolume is the initial music volume, 1-100. Zero means the
	// default of 35; pass a negative value for a muted start.
	MusicVolume int

	// RampDuration is how long volume transitions take (default: 1.5s)
	RampDuration time.Duration

	// AssetDir optionally points at recorded mp3 assets; when a kind
	// has no asset (or none is found), the texture is synthesized.
	AssetDir string

	// Rand optionally injects a seedable random source.
	Rand texture.Rand

	// OnError is called for non-fatal playback problems.
	OnError func(error)
}

// State is a snapshot of the player for UIs.
type State struct {
	SessionID      string
	Kind           texture.Kind
	Track          string
	AmbienceVolume int
	MusicVolume    int
	Synthesized    bool // false when a recorded asset is playing
}

// Player loops ambience textures and music tracks through live gain
// channels. All methods are safe for concurrent use.
type Player struct {
	config    Config
	sessionID string

	gen    *texture.Generator
	engine *player.Engine
	ctl    *mixer.Controller

	ambienceCh *mixer.Channel
	musicCh    *mixer.Channel

	mu            sync.Mutex
	kind          texture.Kind
	track         string
	synthesized   bool
	ambienceVoice *player.Voice
	musicVoice    *player.Voice
	ambienceVol   int
	musicVol      int
	closed        bool
}

// normalizeConfig fills in defaults. Volume zero means "use the
// default"; negative volumes clamp to a muted start.
func normalizeConfig(config Config) Config {
	if config.SampleRate <= 0 {
		config.SampleRate = 44100
	}
	if config.LoopSeconds <= 0 {
		config.LoopSeconds = texture.DefaultLoopSeconds
	}
	if config.AmbienceVolume == 0 {
		config.AmbienceVolume = 60
	}
	if config.MusicVolume == 0 {
		config.MusicVolume = 35
	}
	config.AmbienceVolume = clampVolume(config.AmbienceVolume)
	config.MusicVolume = clampVolume(config.MusicVolume)
	if config.RampDuration <= 0 {
		config.RampDuration = mixer.DefaultRampDuration
	}
	return config
}

// NewPlayer opens the audio output and creates an idle player.
func NewPlayer(config Config) (*Player, error) {
	config = normalizeConfig(config)

	engine, err := player.NewEngine(config.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio output: %w", err)
	}

	p := &Player{
		config:      config,
		sessionID:   uuid.New().String(),
		gen:         texture.NewGenerator(config.Rand),
		engine:      engine,
		ctl:         mixer.NewController(),
		ambienceCh:  mixer.NewChannel("ambience"),
		musicCh:     mixer.NewChannel("music"),
		kind:        texture.KindNone,
		ambienceVol: config.AmbienceVolume,
		musicVol:    config.MusicVolume,
	}

	p.ctl.OnFallback = func(err error) {
		p.reportError(fmt.Errorf("gain ramp degraded: %w", err))
	}

	log.Printf("Ambience player ready (session %s, %dHz)", p.sessionID, config.SampleRate)
	return p, nil
}

// SetAmbience switches the looping background texture. "none" (or an
// empty string) stops the ambience. Unknown kinds synthesize via the
// pink-noise fallback rather than failing.
func (p *Player) SetAmbience(kindStr string) error {
	if kindStr == "" {
		kindStr = string(texture.KindNone)
	}
	kind, known := texture.ParseKind(kindStr)
	if !known {
		log.Printf("Unknown ambiance %q, synthesizing fallback texture", kindStr)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("player closed")
	}
	if kind == p.kind {
		return nil
	}

	// Fade out whatever is playing; the voice stops itself after the ramp.
	if p.ambienceVoice != nil {
		p.ambienceVoice.FadeOutAndStop(p.ctl, p.config.RampDuration)
		p.ambienceVoice = nil
	}

	p.kind = kind
	if kind == texture.KindNone {
		return nil
	}

	buf, synthesized := p.loadAmbience(kind)
	if buf == nil {
		// Generate never returns nil for a non-none kind; guard anyway.
		return fmt.Errorf("no buffer for kind %s", kind)
	}
	p.synthesized = synthesized

	// New texture gets its own channel so the outgoing fade keeps its
	// trajectory; start silent and ramp in.
	p.ambienceCh = mixer.NewChannel("ambience")
	p.ambienceCh.SetGain(0)

	voice, err := p.engine.Loop(buf, p.ambienceCh)
	if err != nil {
		return fmt.Errorf("failed to start ambience voice: %w", err)
	}
	p.ambienceVoice = voice

	p.ctl.Ramp(p.ambienceCh, float64(p.ambienceVol)/100.0, p.config.RampDuration)
	return nil
}

// loadAmbience prefers a recorded asset and falls back to synthesis.
func (p *Player) loadAmbience(kind texture.Kind) (*audio.Buffer, bool) {
	if p.config.AssetDir != "" {
		if rel := AmbienceAssetPath(kind); rel != "" {
			if buf, err := p.loadAsset(rel); err == nil {
				log.Printf("Playing recorded ambience %s", rel)
				return buf, false
			} else if !os.IsNotExist(err) {
				p.reportError(fmt.Errorf("asset %s unreadable, synthesizing instead: %w", rel, err))
			}
		}
	}

	return p.gen.Generate(kind, p.config.SampleRate, p.config.LoopSeconds), true
}

func (p *Player) loadAsset(rel string) (*audio.Buffer, error) {
	f, err := os.Open(filepath.Join(p.config.AssetDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	dec, err := decode.NewMP3(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer dec.Close()

	return dec.Decode()
}

// PlayTrack loops a recorded music track by catalog tag. Music has no
// synthesized fallback; a missing asset is an error.
func (p *Player) PlayTrack(tag string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("player closed")
	}

	if p.musicVoice != nil {
		p.musicVoice.FadeOutAndStop(p.ctl, p.config.RampDuration)
		p.musicVoice = nil
		p.track = ""
	}
	if tag == "" {
		return nil
	}

	if p.config.AssetDir == "" {
		return fmt.Errorf("no asset directory configured for music")
	}

	buf, err := p.loadAsset(MusicAssetPath(tag))
	if err != nil {
		return fmt.Errorf("failed to load track %s: %w", tag, err)
	}

	p.musicCh = mixer.NewChannel("music")
	p.musicCh.SetGain(0)

	voice, err := p.engine.Loop(buf, p.musicCh)
	if err != nil {
		return fmt.Errorf("failed to start music voice: %w", err)
	}
	p.musicVoice = voice
	p.track = tag

	p.ctl.Ramp(p.musicCh, float64(p.musicVol)/100.0, p.config.RampDuration)
	return nil
}

// SetAmbienceVolume ramps the ambience channel to a 0-100 volume.
func (p *Player) SetAmbienceVolume(volume int) {
	p.mu.Lock()
	p.ambienceVol = clampVolume(volume)
	ch := p.ambienceCh
	p.mu.Unlock()

	p.ctl.Ramp(ch, float64(clampVolume(volume))/100.0, p.config.RampDuration)
}

// SetMusicVolume ramps the music channel to a 0-100 volume.
func (p *Player) SetMusicVolume(volume int) {
	p.mu.Lock()
	p.musicVol = clampVolume(volume)
	ch := p.musicCh
	p.mu.Unlock()

	p.ctl.Ramp(ch, float64(clampVolume(volume))/100.0, p.config.RampDuration)
}

// State returns a snapshot for UIs.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return State{
		SessionID:      p.sessionID,
		Kind:           p.kind,
		Track:          p.track,
		AmbienceVolume: p.ambienceVol,
		MusicVolume:    p.musicVol,
		Synthesized:    p.synthesized,
	}
}

// RampFallbacks reports how many volume ramps degraded to hard sets.
func (p *Player) RampFallbacks() int64 {
	return p.ctl.Fallbacks()
}

// Close stops all voices and the output device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	if p.ambienceVoice != nil {
		p.ambienceVoice.Stop()
		p.ambienceVoice = nil
	}
	if p.musicVoice != nil {
		p.musicVoice.Stop()
		p.musicVoice = nil
	}
	p.engine.Close()
	log.Printf("Ambience player closed")
}

func (p *Player) reportError(err error) {
	log.Printf("Playback warning: %v", err)
	if p.config.OnError != nil {
		p.config.OnError(err)
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
