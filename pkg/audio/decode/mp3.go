// ABOUTME: MP3 asset decoder
// ABOUTME: Decodes recorded ambience/music MP3s to mono float64 buffers
package decode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/quietpath/ambience-go/pkg/audio"
)

// MP3Decoder decodes an MP3 stream. go-mp3 always yields 16-bit
// little-endian stereo PCM; the two channels are averaged down to mono.
type MP3Decoder struct {
	decoder *mp3.Decoder
	closer  io.Closer
}

// NewMP3 creates a decoder for the given MP3 stream. If r also
// implements io.Closer it is closed together with the decoder.
func NewMP3(r io.Reader) (*MP3Decoder, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	closer, _ := r.(io.Closer)
	return &MP3Decoder{decoder: dec, closer: closer}, nil
}

// Decode reads the whole stream and returns a mono buffer at the
// file's native sample rate.
func (d *MP3Decoder) Decode() (*audio.Buffer, error) {
	// 4 bytes per stereo frame
	raw := make([]byte, 0, int(d.decoder.Length()))
	chunk := make([]byte, 8192)

	for {
		n, err := d.decoder.Read(chunk)
		raw = append(raw, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3 decode error: %w", err)
		}
	}

	frames := len(raw) / 4
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		right := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		samples[i] = (audio.SampleFromInt16(left) + audio.SampleFromInt16(right)) / 2
	}

	return &audio.Buffer{
		SampleRate: d.decoder.SampleRate(),
		Samples:    samples,
	}, nil
}

// Close releases the underlying stream if it is closable.
func (d *MP3Decoder) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
