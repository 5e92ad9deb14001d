package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls a speak-style HTTP TTS endpoint: POST {"text": ...} with token
// auth, audio bytes back. Deepgram's /v1/speak and compatible services fit.
type Client struct {
	Endpoint string
	APIKey   string

	// Timeout bounds a single synthesis call. Zero means 30s.
	Timeout time.Duration

	// HTTPClient is overridable for tests. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

type speakRequest struct {
	Text string `json:"text"`
}

// Synthesize sends one segment's narration and returns the audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty narration text")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(speakRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tts request failed: %s - %s", resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}
