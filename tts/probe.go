package tts

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns the true playback length of an audio file in seconds,
// as reported by ffprobe. The reconciler treats this as the floor for the
// visible duration of the matching slide.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probed); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe reported no duration for %s: %w", path, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("audio file %s has zero duration", path)
	}
	return seconds, nil
}
