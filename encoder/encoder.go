// Package encoder renders a finished timeline into an MP4 container with
// ffmpeg: each clip becomes a still-image segment with its narration audio,
// the segments are concatenated losslessly, and subtitles are burned in as a
// final pass when configured.
package encoder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"slidecast/types"
)

// Encoding parameters shared by every render.
const (
	FrameRate    = 24
	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	AudioBitrate = "192k"
	VideoPreset  = "fast"
)

// Encoder renders timelines. The zero value is usable.
type Encoder struct{}

// Render encodes the timeline into outPath at the profile's resolution.
// The timeline must already satisfy its contiguity invariant; Render checks
// it once more as a guard since a bad manifest would silently desync audio.
func (e *Encoder) Render(ctx context.Context, tl *types.Timeline, profile types.QualityProfile, outPath string) error {
	if err := tl.Validate(); err != nil {
		return fmt.Errorf("refusing to encode invalid timeline: %w", err)
	}
	if len(tl.Clips) == 0 {
		return fmt.Errorf("timeline has no clips")
	}
	if _, _, err := profile.Dimensions(); err != nil {
		return err
	}

	// The work dir lives next to the output so the final rename stays on one
	// filesystem.
	workDir, err := os.MkdirTemp(filepath.Dir(outPath), "encode_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	segments := make([]string, 0, len(tl.Clips))
	for i, clip := range tl.Clips {
		if err := ctx.Err(); err != nil {
			return err
		}
		segPath := filepath.Join(workDir, fmt.Sprintf("segment_%03d.mp4", i))
		if err := encodeClip(clip, segPath); err != nil {
			return fmt.Errorf("failed to encode clip %d: %w", i, err)
		}
		segments = append(segments, segPath)
	}

	merged := filepath.Join(workDir, "merged.mp4")
	if err := concatSegments(segments, merged); err != nil {
		return fmt.Errorf("failed to concatenate clips: %w", err)
	}

	if tl.Subtitle == nil {
		return os.Rename(merged, outPath)
	}
	return burnSubtitles(tl, merged, outPath, workDir)
}

// encodeClip turns one still image plus narration audio into a video segment
// of exactly the clip's duration. The audio stream is padded with silence to
// the full length so narration shorter than the visible duration never drags
// the segment short.
func encodeClip(clip types.Clip, outPath string) error {
	duration := fmt.Sprintf("%.4f", clip.Seconds)

	image := ffmpeg.Input(clip.FramePath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": FrameRate,
	})
	audio := ffmpeg.Input(clip.AudioPath)

	return ffmpeg.Output([]*ffmpeg.Stream{image, audio}, outPath, ffmpeg.KwArgs{
		"t":       duration,
		"af":      "apad",
		"c:v":     VideoCodec,
		"c:a":     AudioCodec,
		"b:a":     AudioBitrate,
		"preset":  VideoPreset,
		"pix_fmt": "yuv420p",
		"r":       FrameRate,
	}).OverWriteOutput().Run()
}

// concatSegments joins pre-encoded segments with the concat demuxer. Streams
// are copied, not re-encoded, so clip boundaries stay frame-exact.
func concatSegments(segments []string, outPath string) error {
	listPath := filepath.Join(filepath.Dir(outPath), "segments.txt")
	list, err := os.Create(listPath)
	if err != nil {
		return err
	}
	for _, seg := range segments {
		fmt.Fprintf(list, "file '%s'\n", filepath.ToSlash(seg))
	}
	if err := list.Close(); err != nil {
		return err
	}

	return ffmpeg.Input(listPath, ffmpeg.KwArgs{
		"f":    "concat",
		"safe": 0,
	}).Output(outPath, ffmpeg.KwArgs{
		"c": "copy",
	}).OverWriteOutput().Run()
}

// burnSubtitles re-encodes the merged video once, overlaying the SRT track
// with the configured style. Audio is copied through untouched.
func burnSubtitles(tl *types.Timeline, merged, outPath, workDir string) error {
	srtPath := filepath.Join(workDir, "subtitles.srt")
	if err := writeSRT(tl, srtPath); err != nil {
		return fmt.Errorf("failed to generate subtitles: %w", err)
	}

	return ffmpeg.Input(merged).Output(outPath, ffmpeg.KwArgs{
		"vf":     subtitleFilter(filepath.ToSlash(srtPath), tl.Subtitle),
		"c:v":    VideoCodec,
		"c:a":    "copy",
		"preset": VideoPreset,
	}).OverWriteOutput().Run()
}
