package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Sorted returns a copy of segments ordered ascending by start time. The
// sort is stable, so segments that share a start time (overlapping speakers)
// keep their incoming relative order.
func Sorted(segments []Segment) []Segment {
	ordered := make([]Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})
	return ordered
}

// Assemble renders the final transcript: segments sorted by start time, one
// newline-terminated line per segment in the form
//
//	Speaker <label> (<start>s - <end>s): <text>
//
// with times formatted to two decimal places. Zero segments yield the empty
// string. Speaker labels and text are emitted verbatim, no escaping.
func Assemble(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range Sorted(segments) {
		fmt.Fprintf(&sb, "Speaker %s (%.2fs - %.2fs): %s\n",
			seg.Speaker, seg.Start, seg.End, seg.Text)
	}
	return sb.String()
}
