// ABOUTME: Ambience stream message type definitions
// ABOUTME: Defines JSON control messages and binary chunk framing
package protocol

import "encoding/binary"

const (
	// Version of the ambience stream protocol.
	Version = 1

	// AudioChunkMessageType tags binary audio chunk frames.
	AudioChunkMessageType = 1

	chunkHeaderSize = 1 + 8
)

// Message is the top-level wrapper for all control messages.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientHello is sent by clients to initiate the handshake.
type ClientHello struct {
	ClientID        string   `json:"client_id"`
	Name            string   `json:"name"`
	Version         int      `json:"version"`
	SupportedCodecs []string `json:"supported_codecs"` // "pcm", "opus"
}

// ServerHello is the server's response to client/hello.
type ServerHello struct {
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
}

// ServerError reports a handshake or request failure.
type ServerError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AmbienceSelect asks the server to switch the streamed ambiance.
type AmbienceSelect struct {
	Kind string `json:"kind"`
}

// VolumeSet asks the server to ramp the stream gain. Volume is the
// caller-facing 0-100 percentage; the server maps it into [0, 1].
type VolumeSet struct {
	Volume     int `json:"volume"`
	DurationMs int `json:"duration_ms,omitempty"`
}

// StreamStart announces the stream format to a newly added client.
type StreamStart struct {
	Codec      string `json:"codec"` // "pcm" or "opus"
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	BitDepth   int    `json:"bit_depth"`
	Kind       string `json:"kind"`
}

// EncodeChunk frames encoded audio as a binary message:
// [message_type:1][timestamp_us:8][payload:N].
func EncodeChunk(timestamp int64, payload []byte) []byte {
	chunk := make([]byte, chunkHeaderSize+len(payload))
	chunk[0] = AudioChunkMessageType
	binary.BigEndian.PutUint64(chunk[1:chunkHeaderSize], uint64(timestamp))
	copy(chunk[chunkHeaderSize:], payload)
	return chunk
}

// DecodeChunk splits a binary chunk frame into timestamp and payload.
// The boolean is false for malformed or foreign frames.
func DecodeChunk(frame []byte) (timestamp int64, payload []byte, ok bool) {
	if len(frame) < chunkHeaderSize || frame[0] != AudioChunkMessageType {
		return 0, nil, false
	}
	timestamp = int64(binary.BigEndian.Uint64(frame[1:chunkHeaderSize]))
	return timestamp, frame[chunkHeaderSize:], true
}
