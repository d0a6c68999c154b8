// ABOUTME: Tests for WAV export
// ABOUTME: Tests RIFF header fields and PCM payload
package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteWAVHeader(t *testing.T) {
	buf := &Buffer{SampleRate: 8000, Samples: []float64{0, 0.5, -0.5, 1}}

	var out bytes.Buffer
	if err := WriteWAV(&out, buf); err != nil {
		t.Fatalf("WriteWAV failed: %v", err)
	}

	data := out.Bytes()
	if len(data) != 44+8 {
		t.Fatalf("expected 52 bytes, got %d", len(data))
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE magic")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 8000 {
		t.Errorf("expected sample rate 8000, got %d", rate)
	}
	if ch := binary.LittleEndian.Uint16(data[22:24]); ch != 1 {
		t.Errorf("expected mono, got %d channels", ch)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); size != 8 {
		t.Errorf("expected data size 8, got %d", size)
	}

	// Second sample should be 0.5 * 32767
	s1 := int16(binary.LittleEndian.Uint16(data[46:48]))
	if s1 != 16383 {
		t.Errorf("expected 16383, got %d", s1)
	}
}

func TestWriteWAVInvalid(t *testing.T) {
	var out bytes.Buffer
	if err := WriteWAV(&out, nil); err == nil {
		t.Error("expected error for nil buffer")
	}
	if err := WriteWAV(&out, &Buffer{SampleRate: 0}); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
