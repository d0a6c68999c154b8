// ABOUTME: Ambience streaming engine
// ABOUTME: Synthesizes texture blocks, applies stream gain and broadcasts chunks
package server

import (
	"log"
	"sync"
	"time"

	"github.com/quietpath/ambience-go/internal/protocol"
	"github.com/quietpath/ambience-go/pkg/audio"
	"github.com/quietpath/ambience-go/pkg/mixer"
	"github.com/quietpath/ambience-go/pkg/texture"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 1
	DefaultBitDepth   = 16

	ChunkDurationMs = 20
	ChunkSamples    = (DefaultSampleRate * ChunkDurationMs) / 1000
)

// StreamEngine generates ambience blocks and streams them to clients.
// It uses a streaming texture source so consecutive chunks carry the
// filter state across block boundaries (no per-chunk transient).
type StreamEngine struct {
	server *Server

	clients   map[string]*Client
	clientsMu sync.RWMutex

	sourceMu sync.Mutex
	source   *texture.Source

	// Stream gain, ramped on volume/set requests
	gain *mixer.Channel
	ctl  *mixer.Controller

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewStreamEngine creates an engine streaming the given initial kind.
func NewStreamEngine(server *Server, kind texture.Kind) *StreamEngine {
	return &StreamEngine{
		server:   server,
		clients:  make(map[string]*Client),
		source:   texture.NewSource(kind, DefaultSampleRate, nil),
		gain:     mixer.NewChannel("stream"),
		ctl:      mixer.NewController(),
		stopChan: make(chan struct{}),
	}
}

// Start runs the chunk generation loop until Stop.
func (e *StreamEngine) Start() {
	log.Printf("Stream engine starting (%s)", e.Kind())

	ticker := time.NewTicker(ChunkDurationMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.generateAndSendChunk()
		case <-e.stopChan:
			log.Printf("Stream engine stopping")
			return
		}
	}
}

// Stop stops the engine.
func (e *StreamEngine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
}

// Kind returns the currently streamed ambiance kind.
func (e *StreamEngine) Kind() texture.Kind {
	e.sourceMu.Lock()
	defer e.sourceMu.Unlock()
	return e.source.Kind()
}

// SetKind swaps the streamed ambiance. The new source starts cold; the
// running gain trajectory is untouched.
func (e *StreamEngine) SetKind(kind texture.Kind) {
	e.sourceMu.Lock()
	e.source = texture.NewSource(kind, DefaultSampleRate, nil)
	e.sourceMu.Unlock()

	log.Printf("Stream ambiance set to %s", kind)
	e.broadcastStreamStart()
}

// RampVolume ramps the stream gain to a 0-100 volume over the given
// duration. Out-of-range values are clamped by the controller.
func (e *StreamEngine) RampVolume(volume int, duration time.Duration) {
	e.ctl.Ramp(e.gain, float64(volume)/100.0, duration)
}

// AddClient starts streaming to a client.
func (e *StreamEngine) AddClient(client *Client) {
	e.clientsMu.Lock()
	e.clients[client.ID] = client
	e.clientsMu.Unlock()

	log.Printf("Stream engine: added client %s", client.Name)
	e.sendStreamStart(client)
}

// RemoveClient stops streaming to a client.
func (e *StreamEngine) RemoveClient(client *Client) {
	e.clientsMu.Lock()
	defer e.clientsMu.Unlock()

	delete(e.clients, client.ID)
	log.Printf("Stream engine: removed client %s", client.Name)
}

func (e *StreamEngine) streamStartFor(client *Client) protocol.StreamStart {
	return protocol.StreamStart{
		Codec:      client.Codec,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
		Kind:       string(e.Kind()),
	}
}

func (e *StreamEngine) sendStreamStart(client *Client) {
	if err := e.server.sendMessage(client, "stream/start", e.streamStartFor(client)); err != nil {
		log.Printf("Warning: Could not send stream/start to %s: %v", client.Name, err)
	}
}

func (e *StreamEngine) broadcastStreamStart() {
	e.clientsMu.RLock()
	defer e.clientsMu.RUnlock()
	for _, client := range e.clients {
		e.sendStreamStart(client)
	}
}

// generateAndSendChunk synthesizes one chunk and broadcasts it.
func (e *StreamEngine) generateAndSendChunk() {
	block := make([]float64, ChunkSamples)

	e.sourceMu.Lock()
	e.source.Fill(block)
	e.sourceMu.Unlock()

	// One gain read per chunk; ramps resolve at 20ms granularity on
	// the wire, which is below audibility for ambience beds.
	g := audio.Clamp01(e.gain.Gain())

	pcm := make([]int16, len(block))
	for i, s := range block {
		pcm[i] = audio.SampleToInt16(s * g)
	}

	timestamp := e.server.getClockMicros()

	e.clientsMu.RLock()
	defer e.clientsMu.RUnlock()

	for _, client := range e.clients {
		payload, err := client.encodePayload(pcm)
		if err != nil {
			log.Printf("Error encoding chunk for %s: %v", client.Name, err)
			continue
		}

		chunk := protocol.EncodeChunk(timestamp, payload)
		if err := e.server.sendBinary(client, chunk); err != nil {
			log.Printf("Error sending audio to %s: %v", client.Name, err)
		}
	}
}

// encodePCM packs int16 samples little-endian.
func encodePCM(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(uint16(s))
		out[i*2+1] = byte(uint16(s) >> 8)
	}
	return out
}
