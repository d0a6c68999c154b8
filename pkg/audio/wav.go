// ABOUTME: WAV file export for rendered ambience buffers
// ABOUTME: Writes mono float64 buffers as 16-bit PCM RIFF/WAVE
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const wavHeaderSize = 44

// WriteWAV writes buf as a 16-bit PCM mono WAV stream. Samples are
// clipped to full scale during conversion.
func WriteWAV(w io.Writer, buf *Buffer) error {
	if buf == nil || buf.SampleRate <= 0 {
		return fmt.Errorf("invalid buffer for wav export")
	}

	dataSize := len(buf.Samples) * 2

	header := make([]byte, wavHeaderSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(wavHeaderSize-8+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(buf.SampleRate*2)) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)                        // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)                       // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write wav header: %w", err)
	}

	// Convert in chunks to keep memory stable on long renders.
	const chunkFrames = 65536
	pcm := make([]byte, 0, chunkFrames*2)
	for start := 0; start < len(buf.Samples); start += chunkFrames {
		end := start + chunkFrames
		if end > len(buf.Samples) {
			end = len(buf.Samples)
		}

		pcm = pcm[:0]
		for _, s := range buf.Samples[start:end] {
			v := uint16(SampleToInt16(s))
			pcm = append(pcm, byte(v), byte(v>>8))
		}

		if _, err := w.Write(pcm); err != nil {
			return fmt.Errorf("failed to write wav data: %w", err)
		}
	}

	return nil
}
