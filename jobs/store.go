// Package jobs tracks asynchronous generation requests. The API answers
// immediately and processes in the background, so callers poll a job record
// keyed by video ID.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Job states.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Record is the stored view of one generation job.
type Record struct {
	VideoID      string    `json:"video_id"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	VideoPath    string    `json:"video_path,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	TotalSeconds float64   `json:"total_seconds,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrNotFound reports an unknown job ID.
var ErrNotFound = errors.New("job not found")

// Store keeps job records in redis with a TTL so finished jobs age out.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to redis at addr.
func NewStore(addr string, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies connectivity; the API degrades to fire-and-forget without it.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Set writes the record, stamping UpdatedAt.
func (s *Store) Set(ctx context.Context, rec Record) error {
	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(rec.VideoID), data, s.ttl).Err()
}

// Get fetches a record by video ID.
func (s *Store) Get(ctx context.Context, videoID string) (*Record, error) {
	data, err := s.client.Get(ctx, key(videoID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt job record for %s: %w", videoID, err)
	}
	return &rec, nil
}

// Close releases the redis connection.
func (s *Store) Close() error { return s.client.Close() }

func key(videoID string) string { return "slidecast:job:" + videoID }
