package types

import "fmt"

// QualityProfile selects the output resolution. It fixes both the encoder
// target and the image conditioner's canvas.
type QualityProfile string

const (
	Quality720p  QualityProfile = "720p"
	Quality1080p QualityProfile = "1080p"
)

// Dimensions returns the frame size for the profile.
func (q QualityProfile) Dimensions() (width, height int, err error) {
	switch q {
	case Quality720p, "":
		return 1280, 720, nil
	case Quality1080p:
		return 1920, 1080, nil
	default:
		return 0, 0, fmt.Errorf("unknown quality profile %q", string(q))
	}
}
