// ABOUTME: Bubbletea model for the ambience mixer TUI
// ABOUTME: Defines selection, volume and status state plus update logic
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietpath/ambience-go/pkg/ambience"
)

// Model represents the TUI state.
type Model struct {
	// Selection
	presetIdx int

	// Playback
	kind        string
	synthesized bool

	// Volumes (0-100)
	ambienceVol int
	musicVol    int
	muted       bool
	preMuteVol  int

	// Diagnostics
	rampFallbacks int64
	showDebug     bool

	// Dimensions
	width  int
	height int

	ctrl *Control
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderPresets()
	s += m.renderControls()
	if m.showDebug {
		s += m.renderDebug()
	}
	s += m.renderHelp()

	return s
}

func (m Model) renderHeader() string {
	playing := "Silence"
	if m.kind != "" && m.kind != "none" {
		source := "recorded"
		if m.synthesized {
			source = "synthesized"
		}
		playing = fmt.Sprintf("%s (%s)", m.kind, source)
	}

	return fmt.Sprintf(`┌─ Ambience Mixer ─────────────────────────────────────┐
│ Playing: %-44s │
├──────────────────────────────────────────────────────┤
`, playing)
}

func (m Model) renderPresets() string {
	s := "│ Ambiances:                                           │\n"
	for i, p := range ambience.Presets {
		cursor := "  "
		if i == m.presetIdx {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-12s %s", cursor, p.Tag, p.Title)
		s += fmt.Sprintf("│   %-50s │\n", truncate(line, 50))
	}
	return s
}

func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	return fmt.Sprintf("│                                                      │\n"+
		"│ Ambience: [%s] %3d%%%-24s │\n"+
		"│ Music:    [%s] %3d%%%-24s │\n",
		renderBar(m.ambienceVol, 100, 10), m.ambienceVol, muteIcon,
		renderBar(m.musicVol, 100, 10), m.musicVol, "")
}

func (m Model) renderDebug() string {
	return fmt.Sprintf("│ DEBUG: ramp fallbacks: %-29d │\n", m.rampFallbacks)
}

func (m Model) renderHelp() string {
	return `│ ↑/↓:Volume  ←/→:Ambiance  enter:Play  m:Mute  q:Quit │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.requestQuit()
		return m, tea.Quit

	case "left":
		m.presetIdx--
		if m.presetIdx < 0 {
			m.presetIdx = len(ambience.Presets) - 1
		}
	case "right":
		m.presetIdx++
		if m.presetIdx >= len(ambience.Presets) {
			m.presetIdx = 0
		}
	case "enter":
		m.ctrl.selectAmbience(ambience.Presets[m.presetIdx].Tag)

	case "up":
		m.ambienceVol = clamp(m.ambienceVol+5, 0, 100)
		m.muted = false
		m.ctrl.setAmbienceVolume(m.ambienceVol)
	case "down":
		m.ambienceVol = clamp(m.ambienceVol-5, 0, 100)
		m.muted = false
		m.ctrl.setAmbienceVolume(m.ambienceVol)

	case "+", "=":
		m.musicVol = clamp(m.musicVol+5, 0, 100)
		m.ctrl.setMusicVolume(m.musicVol)
	case "-":
		m.musicVol = clamp(m.musicVol-5, 0, 100)
		m.ctrl.setMusicVolume(m.musicVol)

	case "m":
		if m.muted {
			m.muted = false
			m.ambienceVol = m.preMuteVol
		} else {
			m.muted = true
			m.preMuteVol = m.ambienceVol
			m.ambienceVol = 0
		}
		m.ctrl.setAmbienceVolume(m.ambienceVol)

	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates the model from a player status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Kind != "" {
		m.kind = msg.Kind
		m.synthesized = msg.Synthesized
	}
	if msg.AmbienceVolume != nil {
		m.ambienceVol = *msg.AmbienceVolume
	}
	if msg.MusicVolume != nil {
		m.musicVol = *msg.MusicVolume
	}
	m.rampFallbacks = msg.RampFallbacks
}

// StatusMsg updates TUI state from the playback side.
type StatusMsg struct {
	Kind           string
	Synthesized    bool
	AmbienceVolume *int
	MusicVolume    *int
	RampFallbacks  int64
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
