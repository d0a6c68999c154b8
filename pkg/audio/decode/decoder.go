// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for recorded ambience asset decoders
package decode

import "github.com/quietpath/ambience-go/pkg/audio"

// Decoder decodes a complete recorded asset into a mono sample buffer
// at the decoder's native rate.
type Decoder interface {
	// Decode reads the full stream and returns the decoded buffer.
	Decode() (*audio.Buffer, error)

	// Close releases decoder resources.
	Close() error
}
