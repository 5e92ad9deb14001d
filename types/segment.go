package types

// Segment is one narrated unit of the video: a stretch of script text tied to a
// single slide. Segments are created by the script parser and enriched in place
// as they move through the pipeline; the compositor only reads them.
type Segment struct {
	// Index is the zero-based playback position. Immutable once parsed.
	Index int `json:"index"`

	// NarrationText is the text spoken over the slide. Never empty.
	NarrationText string `json:"narration_text"`

	// RequestedSeconds is the duration the script asked for. Zero when the
	// script did not state one; HasRequested distinguishes "absent" from "0".
	RequestedSeconds float64 `json:"requested_seconds,omitempty"`
	HasRequested     bool    `json:"has_requested"`

	// SlideRef is an explicit slide identifier from the script (for example
	// "slide_003.png" from a "Slide 3:" header). Empty means the resolver
	// assigns a slide positionally.
	SlideRef string `json:"slide_ref,omitempty"`

	// ResolvedSlidePath is filled in by the slide resolver.
	ResolvedSlidePath string `json:"resolved_slide_path,omitempty"`

	// AudioPath and SynthesizedSeconds are filled in by the synthesizer stage.
	AudioPath          string  `json:"audio_path,omitempty"`
	SynthesizedSeconds float64 `json:"synthesized_seconds,omitempty"`

	// FinalSeconds is the reconciled, authoritative visible duration.
	FinalSeconds float64 `json:"final_seconds,omitempty"`
}

// SlideAsset is one image file usable as a visual frame source. Assets are
// owned by the asset index; segments only reference them.
type SlideAsset struct {
	// Identifier is the stable token segments match against: the original
	// filename for uploads, or "slide_NNN.png" for rasterized PDF pages.
	Identifier string `json:"identifier"`
	Path       string `json:"path"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

// Warning is a non-fatal quality finding attached to a generation result,
// e.g. a slide upscaled beyond the quality ceiling.
type Warning struct {
	Asset   string `json:"asset,omitempty"`
	Segment int    `json:"segment,omitempty"`
	Message string `json:"message"`
}
