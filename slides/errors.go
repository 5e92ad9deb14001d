package slides

import "fmt"

// UnknownSlideReferenceError reports an explicit slide reference that matches
// no asset. The resolver never substitutes a default: a wrong slide behind the
// narration is worse than a failed request.
type UnknownSlideReferenceError struct {
	Identifier string
}

func (e *UnknownSlideReferenceError) Error() string {
	return fmt.Sprintf("unknown slide reference %q", e.Identifier)
}

// InsufficientSlidesError reports fewer slides than segments during positional
// assignment.
type InsufficientSlidesError struct {
	Segments int
	Slides   int
}

func (e *InsufficientSlidesError) Error() string {
	return fmt.Sprintf("script has %d segments but only %d slides were supplied", e.Segments, e.Slides)
}
