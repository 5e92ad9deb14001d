// Package script parses narration scripts into ordered, canonical segments.
//
// Two authoring conventions are accepted and detected structurally, never by
// file extension:
//
//   - block form: segments separated by divider lines of three or more dashes,
//     each block optionally starting with "Slide N:" and "Duration: X seconds"
//     header lines;
//   - timestamp form: paragraphs introduced by a bracketed [MM:SS] marker,
//     where a segment's duration is the gap to the next marker.
//
// Parsing is deterministic: the same text always yields the same segment list.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"slidecast/types"
)

var (
	timestampRe = regexp.MustCompile(`^\[(\d{2}):(\d{2})\]\s*`)
	dividerRe   = regexp.MustCompile(`^-{3,}$`)
	slideRe     = regexp.MustCompile(`(?i)^slide\s+(\d+)\s*:\s*(.*)$`)
	durationRe  = regexp.MustCompile(`(?i)^duration\s*:\s*(\S+)\s*seconds?\s*$`)
)

// Parse turns raw script text into an ordered segment list. Segment indices
// are assigned sequentially, so they are always a contiguous 0-based run.
func Parse(text string) ([]*types.Segment, error) {
	if isTimestampForm(text) {
		return parseTimestamps(text)
	}
	return parseBlocks(text)
}

// isTimestampForm reports whether any paragraph opens with a [MM:SS] marker.
func isTimestampForm(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if timestampRe.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// parseBlocks handles the divider-separated block form.
func parseBlocks(text string) ([]*types.Segment, error) {
	var segments []*types.Segment
	block := 0

	for _, raw := range splitBlocks(text) {
		lines := strings.Split(raw, "\n")
		block++

		seg := &types.Segment{Index: len(segments)}
		var narration []string
		sawHeader := false

		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if m := slideRe.FindStringSubmatch(line); m != nil && len(narration) == 0 {
				n, err := strconv.Atoi(m[1])
				if err != nil || n < 1 {
					return nil, &MalformedScriptError{Line: i + 1, Reason: fmt.Sprintf("invalid slide number %q", m[1])}
				}
				seg.SlideRef = fmt.Sprintf("slide_%03d.png", n)
				sawHeader = true
				if rest := strings.TrimSpace(m[2]); rest != "" {
					narration = append(narration, rest)
				}
				continue
			}

			if m := durationRe.FindStringSubmatch(line); m != nil && len(narration) == 0 {
				secs, err := strconv.ParseFloat(m[1], 64)
				if err != nil || secs < 0 {
					return nil, &MalformedScriptError{Line: i + 1, Reason: fmt.Sprintf("invalid duration %q", m[1])}
				}
				seg.RequestedSeconds = secs
				seg.HasRequested = true
				sawHeader = true
				continue
			}

			narration = append(narration, line)
		}

		if len(narration) == 0 {
			if sawHeader {
				return nil, &EmptySegmentError{Block: block}
			}
			// Blank filler between dividers; skip silently.
			continue
		}

		seg.NarrationText = strings.Join(narration, " ")
		segments = append(segments, seg)
	}

	return segments, nil
}

// splitBlocks cuts block-form text on divider lines.
func splitBlocks(text string) []string {
	var blocks []string
	var current []string

	flush := func() {
		blocks = append(blocks, strings.Join(current, "\n"))
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if dividerRe.MatchString(strings.TrimSpace(line)) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// parseTimestamps handles the [MM:SS] marker form. A segment's requested
// duration is derived from the gap to the next marker; the final segment has
// none and defers to the synthesized audio length.
func parseTimestamps(text string) ([]*types.Segment, error) {
	type marked struct {
		at   float64
		line int
		text []string
	}

	var entries []marked
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := timestampRe.FindStringSubmatch(line); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			seconds, _ := strconv.Atoi(m[2])
			at := float64(minutes*60 + seconds)

			if len(entries) > 0 && at <= entries[len(entries)-1].at {
				return nil, &MalformedScriptError{
					Line:   i + 1,
					Reason: fmt.Sprintf("timestamp [%s:%s] is not after the previous marker", m[1], m[2]),
				}
			}

			entries = append(entries, marked{at: at, line: i + 1})
			if rest := strings.TrimSpace(timestampRe.ReplaceAllString(line, "")); rest != "" {
				entries[len(entries)-1].text = append(entries[len(entries)-1].text, rest)
			}
			continue
		}

		if len(entries) == 0 {
			// Preamble before the first marker carries no timing; ignore it.
			continue
		}
		entries[len(entries)-1].text = append(entries[len(entries)-1].text, line)
	}

	var segments []*types.Segment
	for i, e := range entries {
		if len(e.text) == 0 {
			return nil, &EmptySegmentError{Block: i + 1}
		}

		seg := &types.Segment{
			Index:         len(segments),
			NarrationText: strings.Join(e.text, " "),
		}
		if i < len(entries)-1 {
			seg.RequestedSeconds = entries[i+1].at - e.at
			seg.HasRequested = true
		}
		segments = append(segments, seg)
	}

	return segments, nil
}
