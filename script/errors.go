package script

import "fmt"

// MalformedScriptError rejects the whole script; the parser never returns a
// partial segment list.
type MalformedScriptError struct {
	Line   int
	Reason string
}

func (e *MalformedScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed script at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed script: %s", e.Reason)
}

// EmptySegmentError marks a block that carried headers but no narration text.
type EmptySegmentError struct {
	Block int
}

func (e *EmptySegmentError) Error() string {
	return fmt.Sprintf("script block %d has no narration text", e.Block)
}
