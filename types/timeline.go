package types

import "fmt"

// Clip is one fully resolved unit of the final video: a conditioned frame shown
// for an exact duration with its narration audio and optional subtitle text.
type Clip struct {
	// FramePath points at the conditioned image, already at the output
	// resolution.
	FramePath string `json:"frame_path"`

	// AudioPath points at the synthesized narration for this clip.
	AudioPath string `json:"audio_path"`

	// SubtitleText is rendered as an overlay by the encoder. Empty when
	// subtitles are disabled.
	SubtitleText string `json:"subtitle_text,omitempty"`

	// Seconds is the clip's visible duration. Always > 0 and aligned to the
	// encoder's frame granularity.
	Seconds float64 `json:"seconds"`

	// StartSeconds is the running sum of all prior clip durations.
	StartSeconds float64 `json:"start_seconds"`
}

// Timeline is the ordered, gap-free clip sequence handed to the encoder. It is
// a manifest of references; it owns no files.
type Timeline struct {
	Clips    []Clip          `json:"clips"`
	Subtitle *SubtitleConfig `json:"subtitle,omitempty"`
}

// TotalSeconds returns the full video duration.
func (t *Timeline) TotalSeconds() float64 {
	if len(t.Clips) == 0 {
		return 0
	}
	last := t.Clips[len(t.Clips)-1]
	return last.StartSeconds + last.Seconds
}

// Validate checks the contiguity invariant: clip offsets form an exact running
// sum with no gaps or overlaps, and every duration is positive.
func (t *Timeline) Validate() error {
	offset := 0.0
	for i, c := range t.Clips {
		if c.Seconds <= 0 {
			return fmt.Errorf("clip %d has non-positive duration %.4f", i, c.Seconds)
		}
		if c.StartSeconds != offset {
			return fmt.Errorf("clip %d starts at %.4f, want %.4f", i, c.StartSeconds, offset)
		}
		offset += c.Seconds
	}
	return nil
}
