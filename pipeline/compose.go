package pipeline

import (
	"fmt"

	"slidecast/frame"
	"slidecast/types"
)

// Compose assembles the final timeline: one clip per segment, in segment
// order, each starting exactly where the previous one ended.
//
// Subtitle text defaults to the segment's narration; overrides (keyed by
// segment index) replace it. When subtitles are disabled the clips carry no
// text and the config is omitted, so the encoder renders no overlay. The
// compositor does no wrapping or styling; that is the encoder's job.
func Compose(segments []*types.Segment, frames map[string]*frame.ConditionedFrame, includeSubtitles bool, cfg *types.SubtitleConfig, overrides map[int]string) (*types.Timeline, error) {
	tl := &types.Timeline{Clips: make([]types.Clip, 0, len(segments))}

	if includeSubtitles {
		if cfg == nil {
			def := types.DefaultSubtitleConfig()
			cfg = &def
		}
		tl.Subtitle = cfg
	}

	offset := 0.0
	for _, seg := range segments {
		f, ok := frames[seg.ResolvedSlidePath]
		if !ok {
			return nil, fmt.Errorf("segment %d has no conditioned frame for %s", seg.Index, seg.ResolvedSlidePath)
		}
		if seg.AudioPath == "" {
			return nil, fmt.Errorf("segment %d has no synthesized audio", seg.Index)
		}
		if seg.FinalSeconds <= 0 {
			return nil, fmt.Errorf("segment %d has non-positive duration %.4f", seg.Index, seg.FinalSeconds)
		}

		clip := types.Clip{
			FramePath:    f.Path,
			AudioPath:    seg.AudioPath,
			Seconds:      seg.FinalSeconds,
			StartSeconds: offset,
		}
		if includeSubtitles {
			clip.SubtitleText = seg.NarrationText
			if text, ok := overrides[seg.Index]; ok {
				clip.SubtitleText = text
			}
		}

		tl.Clips = append(tl.Clips, clip)
		offset += seg.FinalSeconds
	}

	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return tl, nil
}
