package pipeline

import "fmt"

// SynthesisFailedError aborts the whole request: a video with a silent hole in
// the narration is worse than no video.
type SynthesisFailedError struct {
	SegmentIndex int
	Err          error
}

func (e *SynthesisFailedError) Error() string {
	return fmt.Sprintf("narration synthesis failed for segment %d: %v", e.SegmentIndex, e.Err)
}

func (e *SynthesisFailedError) Unwrap() error { return e.Err }
