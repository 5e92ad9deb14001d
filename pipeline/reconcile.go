package pipeline

import (
	"fmt"
	"math"

	"slidecast/types"
)

// FrameRate is the encoder's output rate; reconciled durations are aligned to
// its frame time so no fractional-frame durations reach the compositor.
const FrameRate = 24

// Reconcile resolves each segment's authoritative visible duration from the
// authored duration (optional) and the measured narration length (required).
//
// The narration is never truncated: with both present the slide holds for
// max(requested, synthesized). The result is rounded up to the next frame
// boundary.
func Reconcile(segments []*types.Segment) error {
	for _, seg := range segments {
		if seg.SynthesizedSeconds <= 0 {
			return fmt.Errorf("segment %d has no synthesized duration", seg.Index)
		}

		final := seg.SynthesizedSeconds
		if seg.HasRequested && seg.RequestedSeconds > final {
			final = seg.RequestedSeconds
		}

		final = roundUpToFrame(final)
		if final <= 0 {
			return fmt.Errorf("segment %d reconciled to non-positive duration %.4f", seg.Index, final)
		}
		seg.FinalSeconds = final
	}
	return nil
}

// roundUpToFrame rounds a duration up to a whole number of frames. The small
// epsilon keeps values already on a boundary from gaining an extra frame to
// float noise.
func roundUpToFrame(seconds float64) float64 {
	frames := math.Ceil(seconds*FrameRate - 1e-9)
	return frames / FrameRate
}
