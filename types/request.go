package types

// GenerateRequest describes one video generation job. It is the payload shape
// shared by the HTTP API (after multipart handling), batch-mode JSON files, and
// Kafka messages.
type GenerateRequest struct {
	// VideoID identifies the job; issued by the caller or the asset registry.
	VideoID string `json:"video_id"`

	// ScriptText is the raw narration script.
	ScriptText string `json:"script_text"`

	// PDFPath or SlideDir supplies the visuals. Exactly one should be set:
	// PDFPath is rasterized one image per page; SlideDir is read as an
	// already-ordered set of image files.
	PDFPath  string `json:"pdf_path,omitempty"`
	SlideDir string `json:"slide_dir,omitempty"`

	IncludeSubtitles bool            `json:"include_subtitles"`
	Subtitle         *SubtitleConfig `json:"subtitle,omitempty"`
	Quality          QualityProfile  `json:"quality,omitempty"`

	// SubtitleOverrides replaces the displayed text for specific segments
	// (keyed by index) without changing what is spoken.
	SubtitleOverrides map[int]string `json:"subtitle_overrides,omitempty"`
}

// GenerateResult reports a finished job.
type GenerateResult struct {
	VideoID      string    `json:"video_id"`
	VideoPath    string    `json:"video_path"`
	VideoURL     string    `json:"video_url,omitempty"`
	TotalSeconds float64   `json:"total_seconds"`
	Segments     int       `json:"segments"`
	Warnings     []Warning `json:"warnings,omitempty"`
}
