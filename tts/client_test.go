package tts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Token secret" {
			t.Errorf("auth header = %q", got)
		}
		var req speakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		if req.Text != "hello world" {
			t.Errorf("text = %q", req.Text)
		}
		w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	c := &Client{Endpoint: srv.URL, APIKey: "secret"}
	audio, err := c.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if string(audio) != "fake-mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
}

func TestClientSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Client{Endpoint: srv.URL, APIKey: "secret"}
	_, err := c.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("want error on non-200 response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("collaborator error not surfaced verbatim: %v", err)
	}
}

func TestClientSynthesizeEmptyText(t *testing.T) {
	c := &Client{Endpoint: "http://unused", APIKey: "k"}
	if _, err := c.Synthesize(context.Background(), "   "); err == nil {
		t.Fatal("want error for empty text")
	}
}

func TestClientSynthesizeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect;
		// otherwise srv.Close() deadlocks waiting on this handler.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := &Client{Endpoint: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond}
	_, err := c.Synthesize(context.Background(), "slow")
	if err == nil {
		t.Fatal("want timeout error")
	}
}
