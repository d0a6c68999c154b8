// ABOUTME: Opus audio encoder for bandwidth-efficient ambience streaming
// ABOUTME: Wraps libopus to encode PCM chunks to Opus packets
package server

import (
	"fmt"
	"log"

	"gopkg.in/hraban/opus.v2"
)

// OpusEncoder wraps the Opus encoder for the stream engine.
type OpusEncoder struct {
	encoder    *opus.Encoder
	sampleRate int
	channels   int
	frameSize  int // samples per channel per frame
}

// NewOpusEncoder creates an encoder. frameSize is in samples per
// channel (e.g. 960 for 20ms at 48kHz).
func NewOpusEncoder(sampleRate, channels, frameSize int) (*OpusEncoder, error) {
	encoder, err := opus.NewEncoder(sampleRate, channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	bitrate := 64000 * channels
	if err := encoder.SetBitrate(bitrate); err != nil {
		log.Printf("Warning: Failed to set Opus bitrate: %v", err)
	}

	return &OpusEncoder{
		encoder:    encoder,
		sampleRate: sampleRate,
		channels:   channels,
		frameSize:  frameSize,
	}, nil
}

// Encode encodes one PCM frame to an Opus packet.
func (e *OpusEncoder) Encode(pcm []int16) ([]byte, error) {
	// Opus packets never exceed 4000 bytes
	output := make([]byte, 4000)

	n, err := e.encoder.Encode(pcm, output)
	if err != nil {
		return nil, fmt.Errorf("opus encode failed: %w", err)
	}

	return output[:n], nil
}
