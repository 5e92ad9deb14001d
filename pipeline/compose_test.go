package pipeline

import (
	"fmt"
	"math"
	"testing"

	"slidecast/frame"
	"slidecast/types"
)

func composedSegments(durations ...float64) ([]*types.Segment, map[string]*frame.ConditionedFrame) {
	segments := make([]*types.Segment, 0, len(durations))
	frames := make(map[string]*frame.ConditionedFrame)
	for i, d := range durations {
		path := fmt.Sprintf("/frames/slide_%03d.png", i+1)
		segments = append(segments, &types.Segment{
			Index:             i,
			NarrationText:     fmt.Sprintf("narration %d", i),
			ResolvedSlidePath: path,
			AudioPath:         fmt.Sprintf("/audio/audio_%03d.mp3", i+1),
			FinalSeconds:      d,
		})
		frames[path] = &frame.ConditionedFrame{Path: path + ".out", Width: 1280, Height: 720}
	}
	return segments, frames
}

func TestComposeContiguity(t *testing.T) {
	segments, frames := composedSegments(5, 8, 2.5, 1.0/FrameRate)

	tl, err := Compose(segments, frames, false, nil, nil)
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if len(tl.Clips) != 4 {
		t.Fatalf("got %d clips, want 4", len(tl.Clips))
	}

	for i := 1; i < len(tl.Clips); i++ {
		prev := tl.Clips[i-1]
		if tl.Clips[i].StartSeconds != prev.StartSeconds+prev.Seconds {
			t.Errorf("clip %d starts at %.4f, want %.4f", i, tl.Clips[i].StartSeconds, prev.StartSeconds+prev.Seconds)
		}
	}

	sum := 0.0
	for _, c := range tl.Clips {
		sum += c.Seconds
	}
	if math.Abs(tl.TotalSeconds()-sum) > 1e-9 {
		t.Errorf("total %.4f != sum of durations %.4f", tl.TotalSeconds(), sum)
	}
}

func TestComposeSubtitles(t *testing.T) {
	segments, frames := composedSegments(3, 4)

	t.Run("disabled omits text and config", func(t *testing.T) {
		tl, err := Compose(segments, frames, false, nil, nil)
		if err != nil {
			t.Fatalf("Compose returned error: %v", err)
		}
		if tl.Subtitle != nil {
			t.Error("subtitle config should be omitted when disabled")
		}
		for i, c := range tl.Clips {
			if c.SubtitleText != "" {
				t.Errorf("clip %d carries subtitle text %q", i, c.SubtitleText)
			}
		}
	})

	t.Run("enabled threads narration and defaults", func(t *testing.T) {
		tl, err := Compose(segments, frames, true, nil, nil)
		if err != nil {
			t.Fatalf("Compose returned error: %v", err)
		}
		if tl.Subtitle == nil || tl.Subtitle.Position != types.SubtitleBottom {
			t.Errorf("default subtitle config missing: %+v", tl.Subtitle)
		}
		if tl.Clips[0].SubtitleText != "narration 0" {
			t.Errorf("clip 0 text = %q", tl.Clips[0].SubtitleText)
		}
	})

	t.Run("override replaces displayed text", func(t *testing.T) {
		tl, err := Compose(segments, frames, true, nil, map[int]string{1: "shown instead"})
		if err != nil {
			t.Fatalf("Compose returned error: %v", err)
		}
		if tl.Clips[1].SubtitleText != "shown instead" {
			t.Errorf("clip 1 text = %q", tl.Clips[1].SubtitleText)
		}
		if tl.Clips[0].SubtitleText != "narration 0" {
			t.Errorf("clip 0 text = %q", tl.Clips[0].SubtitleText)
		}
	})
}

func TestComposeRejectsIncompleteSegments(t *testing.T) {
	segments, frames := composedSegments(3)
	segments[0].FinalSeconds = 0
	if _, err := Compose(segments, frames, false, nil, nil); err == nil {
		t.Error("want error for zero duration")
	}

	segments, frames = composedSegments(3)
	segments[0].AudioPath = ""
	if _, err := Compose(segments, frames, false, nil, nil); err == nil {
		t.Error("want error for missing audio")
	}

	segments, _ = composedSegments(3)
	if _, err := Compose(segments, map[string]*frame.ConditionedFrame{}, false, nil, nil); err == nil {
		t.Error("want error for missing frame")
	}
}
