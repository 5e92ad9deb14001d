// Package publish pushes finished videos to YouTube. Publishing is optional
// and skipped entirely when no service account is configured.
package publish

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"slidecast/types"
)

// Publisher uploads to a YouTube channel via a service account.
type Publisher struct {
	service *youtube.Service
}

// NewPublisher reads service account credentials and builds an authenticated
// YouTube client.
func NewPublisher(ctx context.Context, serviceAccountFile string) (*Publisher, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &Publisher{service: service}, nil
}

// Publish uploads the finished video as unlisted and returns its YouTube ID.
// Training material defaults to unlisted so a link is shareable without the
// video being searchable.
func (p *Publisher) Publish(result *types.GenerateResult, title string) (string, error) {
	file, err := os.Open(result.VideoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       clampTitle(title),
			Description: fmt.Sprintf("Generated slide video, %d segments, %.0f seconds.", result.Segments, result.TotalSeconds),
			CategoryId:  "27", // Education
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "unlisted",
			SelfDeclaredMadeForKids: false,
		},
	}

	call := p.service.Videos.Insert([]string{"snippet", "status"}, video).Media(file)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("Published video %s: https://youtube.com/watch?v=%s", result.VideoID, resp.Id)
	return resp.Id, nil
}

func clampTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Slide presentation"
	}
	if len(title) > 100 {
		title = title[:97] + "..."
	}
	return title
}
