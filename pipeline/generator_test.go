package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"slidecast/slides"
	"slidecast/types"
)

type captureRenderer struct {
	timeline *types.Timeline
	calls    int
}

func (r *captureRenderer) Render(ctx context.Context, tl *types.Timeline, profile types.QualityProfile, outPath string) error {
	r.timeline = tl
	r.calls++
	return os.WriteFile(outPath, []byte("mp4"), 0644)
}

func writeSlide(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create slide: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode slide: %v", err)
	}
}

func newTestGenerator(t *testing.T, synth *fakeSynth, renderer *captureRenderer) *Generator {
	t.Helper()
	return &Generator{
		Synth:     synth,
		Encoder:   renderer,
		OutputDir: t.TempDir(),
		Probe:     fixedProbe(3.0),
	}
}

func TestGenerateTwoSegmentScenario(t *testing.T) {
	slideDir := t.TempDir()
	writeSlide(t, slideDir, "01_intro.png")
	writeSlide(t, slideDir, "02_body.png")

	synth := &fakeSynth{}
	renderer := &captureRenderer{}
	g := newTestGenerator(t, synth, renderer)

	req := types.GenerateRequest{
		ScriptText: "Duration: 5 seconds\nFirst part.\n---\nDuration: 8 seconds\nSecond part.\n",
		SlideDir:   slideDir,
	}

	result, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if result.Segments != 2 {
		t.Errorf("result reports %d segments, want 2", result.Segments)
	}
	if renderer.calls != 1 {
		t.Fatalf("encoder invoked %d times, want 1", renderer.calls)
	}

	tl := renderer.timeline
	if len(tl.Clips) != 2 {
		t.Fatalf("timeline has %d clips, want 2", len(tl.Clips))
	}
	if tl.Clips[0].StartSeconds != 0 {
		t.Errorf("clip 0 starts at %.4f, want 0", tl.Clips[0].StartSeconds)
	}
	// Synthesized audio is 3s, so the requested 5s wins the first slot.
	if tl.Clips[1].StartSeconds != 5 {
		t.Errorf("clip 1 starts at %.4f, want 5", tl.Clips[1].StartSeconds)
	}
	if err := tl.Validate(); err != nil {
		t.Errorf("timeline invalid: %v", err)
	}
	if result.TotalSeconds != 13 {
		t.Errorf("total = %.4f, want 13", result.TotalSeconds)
	}
}

func TestGenerateInsufficientSlidesFailsBeforeSynthesis(t *testing.T) {
	slideDir := t.TempDir()
	writeSlide(t, slideDir, "only_one.png")
	writeSlide(t, slideDir, "only_two.png")

	synth := &fakeSynth{}
	g := newTestGenerator(t, synth, &captureRenderer{})

	req := types.GenerateRequest{
		ScriptText: "one\n---\ntwo\n---\nthree\n",
		SlideDir:   slideDir,
	}

	_, err := g.Generate(context.Background(), req)
	var target *slides.InsufficientSlidesError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want InsufficientSlidesError", err)
	}
	if synth.calls.Load() != 0 {
		t.Errorf("synthesis ran %d times before resolve failure", synth.calls.Load())
	}
}

func TestGenerateUnknownSlideReference(t *testing.T) {
	slideDir := t.TempDir()
	writeSlide(t, slideDir, "slide_001.png")

	synth := &fakeSynth{}
	g := newTestGenerator(t, synth, &captureRenderer{})

	req := types.GenerateRequest{
		ScriptText: "Slide 99:\nUnmatched narration.\n",
		SlideDir:   slideDir,
	}

	_, err := g.Generate(context.Background(), req)
	var target *slides.UnknownSlideReferenceError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want UnknownSlideReferenceError", err)
	}
	if target.Identifier != "slide_099.png" {
		t.Errorf("error names %q, want slide_099.png", target.Identifier)
	}
	if synth.calls.Load() != 0 {
		t.Errorf("synthesis ran despite resolve failure")
	}
}

func TestGenerateSynthesisFailureProducesNoTimeline(t *testing.T) {
	slideDir := t.TempDir()
	for i := 1; i <= 3; i++ {
		writeSlide(t, slideDir, fmt.Sprintf("s%d.png", i))
	}

	synth := &fakeSynth{failOn: map[string]bool{"second": true}}
	renderer := &captureRenderer{}
	g := newTestGenerator(t, synth, renderer)

	req := types.GenerateRequest{
		ScriptText: "first\n---\nsecond\n---\nthird\n",
		SlideDir:   slideDir,
	}

	_, err := g.Generate(context.Background(), req)
	var sf *SynthesisFailedError
	if !errors.As(err, &sf) {
		t.Fatalf("got %v, want SynthesisFailedError", err)
	}
	if sf.SegmentIndex != 1 {
		t.Errorf("failure names segment %d, want 1", sf.SegmentIndex)
	}
	if renderer.calls != 0 {
		t.Errorf("encoder was invoked despite synthesis failure")
	}
}
