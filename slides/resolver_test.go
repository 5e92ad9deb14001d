package slides

import (
	"errors"
	"testing"

	"slidecast/types"
)

func testIndex(paths ...string) *Index {
	assets := make([]types.SlideAsset, 0, len(paths))
	for _, p := range paths {
		assets = append(assets, types.SlideAsset{Identifier: p, Path: "/slides/" + p})
	}
	return NewIndex(assets)
}

func segs(n int) []*types.Segment {
	out := make([]*types.Segment, n)
	for i := range out {
		out[i] = &types.Segment{Index: i, NarrationText: "text"}
	}
	return out
}

func TestResolvePositional(t *testing.T) {
	idx := testIndex("intro.png", "body.png", "closing.png")
	segments := segs(2)

	if err := Resolve(segments, idx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if segments[0].ResolvedSlidePath != "/slides/intro.png" {
		t.Errorf("segment 0 resolved to %q", segments[0].ResolvedSlidePath)
	}
	if segments[1].ResolvedSlidePath != "/slides/body.png" {
		t.Errorf("segment 1 resolved to %q", segments[1].ResolvedSlidePath)
	}
	// Third slide stays unused; that is not an error.
}

func TestResolveInsufficientSlides(t *testing.T) {
	idx := testIndex("only.png", "two.png")
	err := Resolve(segs(3), idx)

	var target *InsufficientSlidesError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want InsufficientSlidesError", err)
	}
	if target.Segments != 3 || target.Slides != 2 {
		t.Errorf("error carries %d/%d, want 3/2", target.Segments, target.Slides)
	}
}

func TestResolveExplicitReference(t *testing.T) {
	idx := testIndex("slide_001.png", "slide_002.png")
	segments := segs(2)
	segments[0].SlideRef = "slide_002.png"
	segments[1].SlideRef = "slide_001.png"

	if err := Resolve(segments, idx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if segments[0].ResolvedSlidePath != "/slides/slide_002.png" {
		t.Errorf("explicit reference ignored: %q", segments[0].ResolvedSlidePath)
	}
}

func TestResolveNumericReferenceAgainstNamedUploads(t *testing.T) {
	// "Slide 2:" in the script becomes slide_002.png; uploads kept their
	// original names, so the reference maps to the second asset by position.
	idx := testIndex("cover.jpg", "diagram.jpg")
	segments := segs(1)
	segments[0].SlideRef = "slide_002.png"

	if err := Resolve(segments, idx); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if segments[0].ResolvedSlidePath != "/slides/diagram.jpg" {
		t.Errorf("numeric reference resolved to %q", segments[0].ResolvedSlidePath)
	}
}

func TestResolveUnknownReference(t *testing.T) {
	idx := testIndex("slide_001.png")
	segments := segs(1)
	segments[0].SlideRef = "slide_099.png"

	err := Resolve(segments, idx)
	var target *UnknownSlideReferenceError
	if !errors.As(err, &target) {
		t.Fatalf("got %v, want UnknownSlideReferenceError", err)
	}
	if target.Identifier != "slide_099.png" {
		t.Errorf("error names %q, want slide_099.png", target.Identifier)
	}
}
