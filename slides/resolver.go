package slides

import (
	"regexp"
	"strconv"

	"slidecast/types"
)

var pageRefRe = regexp.MustCompile(`^slide_(\d+)\.png$`)

// Resolve assigns a concrete slide path to every segment.
//
// Segments with an explicit reference are matched by identifier; a canonical
// "slide_NNN.png" reference additionally falls back to the N-th asset in
// upload order, so numeric "Slide N:" headers work against uploads with
// arbitrary filenames. A reference that matches nothing fails the request.
//
// Segments with no reference are assigned positionally (segment i gets the
// i-th asset), which requires at least as many slides as segments. Extra
// slides beyond the segment count are allowed and stay unused.
func Resolve(segments []*types.Segment, idx *Index) error {
	positional := false
	for _, seg := range segments {
		if seg.SlideRef == "" {
			positional = true
			break
		}
	}
	if positional && idx.Len() < len(segments) {
		return &InsufficientSlidesError{Segments: len(segments), Slides: idx.Len()}
	}

	for _, seg := range segments {
		if seg.SlideRef == "" {
			seg.ResolvedSlidePath = idx.At(seg.Index).Path
			continue
		}

		if asset, ok := idx.Lookup(seg.SlideRef); ok {
			seg.ResolvedSlidePath = asset.Path
			continue
		}

		if m := pageRefRe.FindStringSubmatch(seg.SlideRef); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= idx.Len() {
				seg.ResolvedSlidePath = idx.At(n - 1).Path
				continue
			}
		}

		return &UnknownSlideReferenceError{Identifier: seg.SlideRef}
	}
	return nil
}
