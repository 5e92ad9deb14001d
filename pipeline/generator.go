// Package pipeline assembles a frame-accurate video timeline from a narration
// script and an ordered slide set: parse, resolve, condition, synthesize,
// reconcile, compose, encode. Requests are independent; nothing is shared or
// cached across them.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"slidecast/frame"
	"slidecast/script"
	"slidecast/slides"
	"slidecast/tts"
	"slidecast/types"
)

// Renderer is the external encoder boundary: it consumes a finished timeline
// and produces a container file.
type Renderer interface {
	Render(ctx context.Context, tl *types.Timeline, profile types.QualityProfile, outPath string) error
}

// Generator runs the whole pipeline for one request at a time. A single
// Generator is safe to share; all per-request state lives in the request's
// project directory.
type Generator struct {
	Synth      tts.Synthesizer
	Encoder    Renderer
	Rasterizer *slides.Rasterizer

	// OutputDir is the root under which each request gets its own
	// <video-id>/{slides,frames,audio,video} project layout.
	OutputDir string

	// BaseURL, when set, is used to build the public URL of finished videos.
	BaseURL string

	// SynthWorkers bounds concurrent TTS calls. Zero means DefaultSynthWorkers.
	SynthWorkers int

	// EnhanceFrames toggles the conditioner's sharpening pass.
	EnhanceFrames bool

	// UpscaleLimit is the scale factor above which a slide earns a quality
	// warning. Zero means the conditioner default.
	UpscaleLimit float64

	// Probe measures synthesized audio duration. Nil means tts.ProbeDuration;
	// tests substitute a fake.
	Probe func(string) (float64, error)
}

// Generate runs one request end to end and returns the finished video's
// location and timing. Any pipeline error fails the request atomically: no
// partial timeline ever reaches the encoder.
func (g *Generator) Generate(ctx context.Context, req types.GenerateRequest) (*types.GenerateResult, error) {
	videoID := req.VideoID
	if videoID == "" {
		videoID = uuid.NewString()
	}

	projectDir := filepath.Join(g.OutputDir, videoID)
	for _, sub := range []string{"slides", "frames", "audio", "video"} {
		if err := os.MkdirAll(filepath.Join(projectDir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create project directory: %w", err)
		}
	}
	// Keep the script alongside the output for later reference.
	_ = os.WriteFile(filepath.Join(projectDir, "script.txt"), []byte(req.ScriptText), 0644)

	log.Printf("[%s] Parsing script...", videoID)
	segments, err := script.Parse(req.ScriptText)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, &script.MalformedScriptError{Reason: "script contains no narration segments"}
	}

	log.Printf("[%s] Preparing slides...", videoID)
	idx, err := g.slideIndex(ctx, req, filepath.Join(projectDir, "slides"))
	if err != nil {
		return nil, err
	}

	// Resolve before any synthesis call: reference and count errors must not
	// burn TTS quota.
	if err := slides.Resolve(segments, idx); err != nil {
		return nil, err
	}

	width, height, err := req.Quality.Dimensions()
	if err != nil {
		return nil, err
	}
	conditioner := &frame.Conditioner{
		Width:        width,
		Height:       height,
		Enhance:      g.EnhanceFrames,
		UpscaleLimit: g.UpscaleLimit,
	}

	// Conditioning is CPU-bound and synthesis is network-bound; they touch
	// disjoint data, so they run side by side and join below.
	var (
		wg       sync.WaitGroup
		frames   map[string]*frame.ConditionedFrame
		warnings []types.Warning
		condErr  error
		synthErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		frames, warnings, condErr = conditionAll(segments, idx, conditioner, filepath.Join(projectDir, "frames"))
	}()
	go func() {
		defer wg.Done()
		probe := g.Probe
		if probe == nil {
			probe = tts.ProbeDuration
		}
		synthErr = synthesizeAll(ctx, segments, g.Synth, probe, filepath.Join(projectDir, "audio"), g.SynthWorkers)
	}()
	wg.Wait()

	if condErr != nil {
		return nil, condErr
	}
	if synthErr != nil {
		return nil, synthErr
	}

	if err := Reconcile(segments); err != nil {
		return nil, err
	}

	tl, err := Compose(segments, frames, req.IncludeSubtitles, req.Subtitle, req.SubtitleOverrides)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(projectDir, "video", "final_video.mp4")
	log.Printf("[%s] Encoding %d clips (%.1fs total)...", videoID, len(tl.Clips), tl.TotalSeconds())
	if err := g.Encoder.Render(ctx, tl, req.Quality, outPath); err != nil {
		return nil, fmt.Errorf("encoding failed: %w", err)
	}

	result := &types.GenerateResult{
		VideoID:      videoID,
		VideoPath:    outPath,
		TotalSeconds: tl.TotalSeconds(),
		Segments:     len(segments),
		Warnings:     warnings,
	}
	if g.BaseURL != "" {
		result.VideoURL = fmt.Sprintf("%s/output/%s.mp4", g.BaseURL, videoID)
	}
	log.Printf("[%s] Done: %s (%.1fs)", videoID, outPath, result.TotalSeconds)
	return result, nil
}

// slideIndex builds the request's asset index from whichever source the
// request supplies.
func (g *Generator) slideIndex(ctx context.Context, req types.GenerateRequest, destDir string) (*slides.Index, error) {
	switch {
	case req.PDFPath != "":
		r := g.Rasterizer
		if r == nil {
			r = &slides.Rasterizer{}
		}
		return r.Rasterize(ctx, req.PDFPath, destDir)
	case req.SlideDir != "":
		return slides.FromDir(req.SlideDir)
	default:
		return nil, fmt.Errorf("request supplies neither a PDF nor a slide directory")
	}
}

// conditionAll conditions each distinct resolved slide once. Segments that
// reuse a slide share the conditioned frame within this request.
func conditionAll(segments []*types.Segment, idx *slides.Index, c *frame.Conditioner, destDir string) (map[string]*frame.ConditionedFrame, []types.Warning, error) {
	byPath := make(map[string]types.SlideAsset, idx.Len())
	for _, a := range idx.Assets() {
		byPath[a.Path] = a
	}

	frames := make(map[string]*frame.ConditionedFrame)
	var warnings []types.Warning
	for _, seg := range segments {
		if _, done := frames[seg.ResolvedSlidePath]; done {
			continue
		}
		asset, ok := byPath[seg.ResolvedSlidePath]
		if !ok {
			asset = types.SlideAsset{Identifier: filepath.Base(seg.ResolvedSlidePath), Path: seg.ResolvedSlidePath}
		}
		f, w, err := c.Condition(asset, destDir)
		if err != nil {
			return nil, nil, err
		}
		frames[seg.ResolvedSlidePath] = f
		warnings = append(warnings, w...)
	}
	return frames, warnings, nil
}
