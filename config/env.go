package config

import "os"

// Environment accessors with defaults, following the service convention of
// reading everything from the process environment (a .env file is loaded at
// startup when present).

// GetTTSEndpoint returns the speak-style TTS endpoint URL.
func GetTTSEndpoint() string {
	if v := os.Getenv("TTS_SPEAK_URL"); v != "" {
		return v
	}
	return "https://api.deepgram.com/v1/speak?model=aura-stella-en"
}

// GetTTSAPIKey returns the TTS collaborator's API token.
func GetTTSAPIKey() string {
	return os.Getenv("TTS_API_KEY")
}

// GetBaseURL returns the public base URL used to build video links.
func GetBaseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// GetRedisAddr returns the redis address for job status tracking.
func GetRedisAddr() string {
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		return v
	}
	return "localhost:6379"
}

// GetS3Bucket returns the artifact bucket name. Empty disables S3 upload.
func GetS3Bucket() string {
	return os.Getenv("S3_BUCKET")
}

// GetS3Region returns the bucket region. Empty falls back to the AWS default
// chain.
func GetS3Region() string {
	return os.Getenv("S3_REGION")
}

// GetYouTubeServiceAccount returns the service account credentials file for
// the optional YouTube publisher. Empty disables publishing.
func GetYouTubeServiceAccount() string {
	return os.Getenv("YOUTUBE_SERVICE_ACCOUNT_FILE")
}

// GetEnhanceFrames reports whether the conditioner's sharpening pass is
// enabled. Off by default, since it makes output bytes depend on the toggle.
func GetEnhanceFrames() bool {
	return os.Getenv("ENHANCE_FRAMES") == "true"
}
