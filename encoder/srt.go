package encoder

import (
	"fmt"
	"os"
	"strings"

	"slidecast/types"
)

// writeSRT emits one SRT cue per clip that carries subtitle text. Cue timing
// comes straight from the timeline offsets, so burned-in text flips exactly on
// slide boundaries.
func writeSRT(tl *types.Timeline, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	cue := 0
	for _, clip := range tl.Clips {
		if clip.SubtitleText == "" {
			continue
		}
		cue++
		fmt.Fprintf(file, "%d\n", cue)
		fmt.Fprintf(file, "%s --> %s\n",
			formatTimestamp(clip.StartSeconds),
			formatTimestamp(clip.StartSeconds+clip.Seconds))
		fmt.Fprintf(file, "%s\n\n", clip.SubtitleText)
	}

	return nil
}

// formatTimestamp converts seconds to the SRT HH:MM:SS,mmm form.
func formatTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// assAlignment maps a subtitle position to the libass numpad alignment code.
func assAlignment(position string) int {
	switch position {
	case types.SubtitleTop:
		return 8
	case types.SubtitleCenter:
		return 5
	default:
		return 2
	}
}

// assColor renders a color name or #RRGGBB value in the &HAABBGGRR form
// libass expects. Unknown names fall back to white.
func assColor(name string, alpha uint8) string {
	var r, g, b uint8
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black":
		r, g, b = 0x00, 0x00, 0x00
	case "white", "":
		r, g, b = 0xFF, 0xFF, 0xFF
	case "yellow":
		r, g, b = 0xFF, 0xFF, 0x00
	case "red":
		r, g, b = 0xFF, 0x00, 0x00
	case "green":
		r, g, b = 0x00, 0xFF, 0x00
	case "blue":
		r, g, b = 0x00, 0x00, 0xFF
	case "cyan":
		r, g, b = 0x00, 0xFF, 0xFF
	default:
		if hex, ok := strings.CutPrefix(name, "#"); ok && len(hex) == 6 {
			fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		} else {
			r, g, b = 0xFF, 0xFF, 0xFF
		}
	}
	return fmt.Sprintf("&H%02X%02X%02X%02X", alpha, b, g, r)
}

// subtitleStyle builds the force_style string for the subtitles filter from
// the request's subtitle configuration.
func subtitleStyle(cfg *types.SubtitleConfig) string {
	parts := []string{
		"FontName=Arial",
		fmt.Sprintf("FontSize=%d", cfg.FontSize),
		fmt.Sprintf("PrimaryColour=%s", assColor(cfg.TextColor, 0x00)),
		fmt.Sprintf("Alignment=%d", assAlignment(cfg.Position)),
	}

	if cfg.BackgroundEnabled {
		// BorderStyle 3 draws an opaque box; its color rides on BackColour
		// with libass alpha (00 opaque, FF transparent).
		alpha := uint8((1 - cfg.BackgroundOpacity) * 255)
		parts = append(parts,
			"BorderStyle=3",
			fmt.Sprintf("BackColour=%s", assColor(cfg.BackgroundColor, alpha)),
		)
	} else {
		parts = append(parts,
			"BorderStyle=1",
			"Outline=2",
			fmt.Sprintf("OutlineColour=%s", assColor("black", 0x00)),
		)
	}

	return strings.Join(parts, ",")
}

// subtitleFilter assembles the vf expression burning the SRT into the video.
func subtitleFilter(srtPath string, cfg *types.SubtitleConfig) string {
	escaped := strings.ReplaceAll(srtPath, ":", "\\:")
	return fmt.Sprintf("subtitles='%s':force_style='%s'", escaped, subtitleStyle(cfg))
}
