package config

import "time"

// Pipeline configuration
const (
	// SynthWorkers limits concurrent TTS calls per request
	SynthWorkers = 4

	// SynthTimeout bounds a single synthesis call
	SynthTimeout = 30 * time.Second

	// UpscaleWarnFactor is the scale factor above which a slide earns a
	// quality warning
	UpscaleWarnFactor = 2.0

	// RasterDPI is the density used when rendering PDF pages to slides
	RasterDPI = 75
)

// Directory paths
const (
	OutputDir = "output"
	InputDir  = "input"
	UploadDir = "input/uploads"
)

// Job tracking
const (
	// JobStatusTTL is how long finished job records stay in redis
	JobStatusTTL = 24 * time.Hour
)
