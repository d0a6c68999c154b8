// ABOUTME: TUI initialization and control plumbing
// ABOUTME: Wraps the bubbletea program and the playback control channels
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control carries user intent from the TUI to the playback side.
type Control struct {
	Ambience       chan string // selected preset tag
	AmbienceVolume chan int
	MusicVolume    chan int
	Quit           chan struct{}
}

// NewControl creates the control channel set.
func NewControl() *Control {
	return &Control{
		Ambience:       make(chan string, 10),
		AmbienceVolume: make(chan int, 10),
		MusicVolume:    make(chan int, 10),
		Quit:           make(chan struct{}, 1),
	}
}

// Non-blocking sends: a stalled playback side must never freeze the UI.

func (c *Control) selectAmbience(tag string) {
	if c == nil {
		return
	}
	select {
	case c.Ambience <- tag:
	default:
	}
}

func (c *Control) setAmbienceVolume(v int) {
	if c == nil {
		return
	}
	select {
	case c.AmbienceVolume <- v:
	default:
	}
}

func (c *Control) setMusicVolume(v int) {
	if c == nil {
		return
	}
	select {
	case c.MusicVolume <- v:
	default:
	}
}

func (c *Control) requestQuit() {
	if c == nil {
		return
	}
	select {
	case c.Quit <- struct{}{}:
	default:
	}
}

// NewModel creates a TUI model with the given initial volumes.
func NewModel(ctrl *Control, ambienceVol, musicVol int) Model {
	return Model{
		ctrl:        ctrl,
		ambienceVol: ambienceVol,
		musicVol:    musicVol,
		preMuteVol:  ambienceVol,
	}
}

// Run starts the TUI program.
func Run(ctrl *Control, ambienceVol, musicVol int) *tea.Program {
	return tea.NewProgram(NewModel(ctrl, ambienceVol, musicVol), tea.WithAltScreen())
}
