package frame

import "fmt"

// BlankImageError marks a slide whose pixel data is fully uniform, which in
// practice means a corrupt render or a placeholder that slipped into the deck.
type BlankImageError struct {
	Asset string
}

func (e *BlankImageError) Error() string {
	return fmt.Sprintf("slide %q decodes to blank (uniform) pixel data", e.Asset)
}
