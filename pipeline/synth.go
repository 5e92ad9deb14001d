package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"slidecast/tts"
	"slidecast/types"
)

// DefaultSynthWorkers bounds concurrent TTS calls per request. Unbounded
// fan-out trips collaborator rate limits.
const DefaultSynthWorkers = 4

// synthesizeAll fans narration synthesis out over a bounded worker pool and
// joins before returning. Each worker writes only its own segment, so results
// are matched by index no matter the completion order. The first failure
// cancels the remaining work; in-flight calls finish and are discarded.
func synthesizeAll(ctx context.Context, segments []*types.Segment, synth tts.Synthesizer, probe func(string) (float64, error), audioDir string, workers int) error {
	if workers <= 0 {
		workers = DefaultSynthWorkers
	}
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	errCh := make(chan error, len(segments))

	for _, seg := range segments {
		wg.Add(1)
		go func(seg *types.Segment) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
			defer func() { <-semaphore }()

			audio, err := synth.Synthesize(ctx, seg.NarrationText)
			if err != nil {
				errCh <- &SynthesisFailedError{SegmentIndex: seg.Index, Err: err}
				cancel()
				return
			}

			path := filepath.Join(audioDir, fmt.Sprintf("audio_%03d.mp3", seg.Index+1))
			if err := os.WriteFile(path, audio, 0644); err != nil {
				errCh <- &SynthesisFailedError{SegmentIndex: seg.Index, Err: err}
				cancel()
				return
			}

			seconds, err := probe(path)
			if err != nil {
				errCh <- &SynthesisFailedError{SegmentIndex: seg.Index, Err: err}
				cancel()
				return
			}

			seg.AudioPath = path
			seg.SynthesizedSeconds = seconds
			log.Printf("Synthesized segment %d: %.1fs", seg.Index, seconds)
		}(seg)
	}

	wg.Wait()
	close(errCh)

	// Prefer the synthesis failure over secondary cancellation errors so the
	// caller sees the segment that actually broke.
	var first error
	for err := range errCh {
		var sf *SynthesisFailedError
		if errors.As(err, &sf) {
			return err
		}
		if first == nil {
			first = err
		}
	}
	return first
}
