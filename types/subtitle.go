package types

// Subtitle positions accepted by SubtitleConfig.
const (
	SubtitleTop    = "top"
	SubtitleBottom = "bottom"
	SubtitleCenter = "center"
)

// SubtitleConfig describes how the encoder should render per-clip subtitle
// overlays. The compositor threads it through unchanged; wrapping and layout
// are encoder concerns.
type SubtitleConfig struct {
	Position          string  `json:"position"`
	FontSize          int     `json:"font_size"`
	TextColor         string  `json:"text_color"`
	BackgroundEnabled bool    `json:"background_enabled"`
	BackgroundColor   string  `json:"background_color,omitempty"`
	BackgroundOpacity float64 `json:"background_opacity,omitempty"`
}

// DefaultSubtitleConfig mirrors the service defaults: white text near the
// bottom over a dimmed box.
func DefaultSubtitleConfig() SubtitleConfig {
	return SubtitleConfig{
		Position:          SubtitleBottom,
		FontSize:          36,
		TextColor:         "white",
		BackgroundEnabled: true,
		BackgroundColor:   "black",
		BackgroundOpacity: 0.7,
	}
}
