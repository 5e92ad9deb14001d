// Package tts adapts the external text-to-speech collaborator. It is the only
// pipeline stage with network latency; calls for distinct segments share no
// state and are safe to run concurrently.
package tts

import "context"

// Synthesizer converts narration text to audio bytes. Implementations must be
// safe for concurrent use across segments of one request.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
