// ABOUTME: Entry point for the ambience player CLI
// ABOUTME: Parses flags and runs the interactive mixer, headless playback or offline render
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/quietpath/ambience-go/internal/discovery"
	"github.com/quietpath/ambience-go/internal/ui"
	"github.com/quietpath/ambience-go/pkg/ambience"
	"github.com/quietpath/ambience-go/pkg/audio"
	"github.com/quietpath/ambience-go/pkg/texture"
)

var (
	kindFlag   = flag.String("kind", "pink-noise", "Ambiance kind, or a comma-separated mix for -render (pink-noise, wind, rain, ...)")
	volume     = flag.Int("volume", 60, "Initial ambience volume (0-100)")
	sampleRate = flag.Int("sample-rate", 44100, "Output sample rate")
	assetDir   = flag.String("asset-dir", "", "Directory of recorded mp3 assets (optional)")
	seed       = flag.Int64("seed", 0, "Random seed (0 = time-seeded)")
	logFile    = flag.String("log-file", "ambience-player.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, play the selected kind until interrupted")
	discover   = flag.Bool("discover", false, "Browse for ambience streaming servers and exit")

	renderOut      = flag.String("render", "", "Render the selected kind(s) to a WAV file and exit")
	renderDuration = flag.Float64("duration", 30, "Render duration in seconds")
	renderFade     = flag.Float64("fade", 0.5, "Render fade in/out in seconds")
	renderLevel    = flag.Float64("normalize", 0, "Normalize the render RMS to this dBFS (0 disables)")
)

func main() {
	flag.Parse()

	var rng texture.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	if *discover {
		discoverServers()
		return
	}

	if *renderOut != "" {
		if err := render(rng); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
		return
	}

	useTUI := !*noTUI

	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	player, err := ambience.NewPlayer(ambience.Config{
		SampleRate:     *sampleRate,
		AmbienceVolume: *volume,
		AssetDir:       *assetDir,
		Rand:           rng,
	})
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}
	defer player.Close()

	if err := player.SetAmbience(*kindFlag); err != nil {
		log.Fatalf("Failed to start ambience: %v", err)
	}

	if useTUI {
		runTUI(player)
		return
	}

	log.Printf("Playing %s at volume %d, Ctrl-C to stop", *kindFlag, *volume)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Fade to silence before closing so the interrupt doesn't click.
	player.SetAmbience("none")
	time.Sleep(2 * time.Second)
}

// runTUI drives the player from the interactive mixer.
func runTUI(player *ambience.Player) {
	ctrl := ui.NewControl()
	prog := ui.Run(ctrl, player.State().AmbienceVolume, player.State().MusicVolume)

	go func() {
		statusTicker := time.NewTicker(500 * time.Millisecond)
		defer statusTicker.Stop()

		for {
			select {
			case tag := <-ctrl.Ambience:
				if err := player.SetAmbience(tag); err != nil {
					log.Printf("Failed to switch ambiance: %v", err)
				}
				st := player.State()
				prog.Send(ui.StatusMsg{
					Kind:          string(st.Kind),
					Synthesized:   st.Synthesized,
					RampFallbacks: player.RampFallbacks(),
				})
			case v := <-ctrl.AmbienceVolume:
				player.SetAmbienceVolume(v)
			case v := <-ctrl.MusicVolume:
				player.SetMusicVolume(v)
			case <-ctrl.Quit:
				return
			case <-statusTicker.C:
				st := player.State()
				prog.Send(ui.StatusMsg{
					Kind:          string(st.Kind),
					Synthesized:   st.Synthesized,
					RampFallbacks: player.RampFallbacks(),
				})
			}
		}
	}()

	if _, err := prog.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}
}

// discoverServers browses mDNS for ambience streaming servers and
// lists their websocket endpoints.
func discoverServers() {
	mgr := discovery.NewManager(discovery.Config{ServiceName: "ambience-player"})
	defer mgr.Stop()

	log.Printf("Browsing for ambience servers...")
	servers := mgr.Discover(4 * time.Second)
	if len(servers) == 0 {
		log.Printf("No ambience servers found")
		return
	}

	for _, s := range servers {
		fmt.Printf("%s\tws://%s/ambience\n", s.Name, s.Addr())
	}
}

// render writes the selected kind(s) to a WAV file without opening an
// audio device.
func render(rng texture.Rand) error {
	gen := texture.NewGenerator(rng)
	buf, err := renderMix(gen, *kindFlag, *sampleRate, *renderDuration)
	if err != nil {
		return err
	}

	if *renderLevel != 0 {
		audio.Normalize(buf.Samples, *renderLevel)
	}
	audio.Fade(buf.Samples, *renderFade, buf.SampleRate)

	out, err := os.Create(*renderOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := audio.WriteWAV(out, buf); err != nil {
		return err
	}

	stats := audio.Measure(buf.Samples)
	log.Printf("Rendered %s: %v of %s (peak %.1f dBFS, rms %.1f dBFS)",
		*renderOut, buf.Duration().Round(time.Millisecond), *kindFlag, stats.PeakDBFS, stats.RMSDBFS)
	return nil
}

// renderMix synthesizes one track per comma-separated kind and mixes
// them down into a single buffer.
func renderMix(gen *texture.Generator, kindList string, sampleRate int, duration float64) (*audio.Buffer, error) {
	var tracks [][]float64
	for _, name := range strings.Split(kindList, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		kind, known := texture.ParseKind(name)
		if !known {
			log.Printf("Unknown ambiance %q, rendering fallback texture", name)
		}

		buf := gen.Generate(kind, sampleRate, duration)
		if buf == nil {
			continue // "none" adds nothing to a mix
		}
		tracks = append(tracks, buf.Samples)
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("nothing to render for %q", kindList)
	}

	return &audio.Buffer{
		SampleRate: sampleRate,
		Samples:    audio.Mixdown(tracks...),
	}, nil
}
