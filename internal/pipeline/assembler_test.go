package pipeline

import (
	"strings"
	"testing"
)

func TestAssemble_TwoSegments(t *testing.T) {
	segments := []Segment{
		{Speaker: "A", Start: 0.0, End: 2.5, Text: "hello"},
		{Speaker: "B", Start: 2.5, End: 4.0, Text: "world"},
	}

	want := "Speaker A (0.00s - 2.50s): hello\nSpeaker B (2.50s - 4.00s): world\n"
	got := Assemble(segments)
	if got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}

func TestAssemble_Empty(t *testing.T) {
	if got := Assemble(nil); got != "" {
		t.Errorf("Assemble(nil) = %q, want empty string", got)
	}
	if got := Assemble([]Segment{}); got != "" {
		t.Errorf("Assemble([]) = %q, want empty string", got)
	}
}

func TestAssemble_SortsByStart(t *testing.T) {
	segments := []Segment{
		{Speaker: "SPEAKER_01", Start: 7.2, End: 9.0, Text: "third"},
		{Speaker: "SPEAKER_00", Start: 0.5, End: 2.0, Text: "first"},
		{Speaker: "SPEAKER_01", Start: 3.1, End: 6.8, Text: "second"},
	}

	got := Assemble(segments)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, text := range wantOrder {
		if !strings.HasSuffix(lines[i], ": "+text) {
			t.Errorf("line %d = %q, want text %q", i, lines[i], text)
		}
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	segments := []Segment{
		{Speaker: "B", Start: 4.0, End: 5.0, Text: "later"},
		{Speaker: "A", Start: 1.0, End: 2.0, Text: "earlier"},
	}

	first := Assemble(segments)
	second := Assemble(segments)
	if first != second {
		t.Errorf("repeated Assemble differs:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	segments := []Segment{
		{Speaker: "B", Start: 4.0, End: 5.0, Text: "later"},
		{Speaker: "A", Start: 1.0, End: 2.0, Text: "earlier"},
	}

	Assemble(segments)
	if segments[0].Speaker != "B" {
		t.Errorf("input slice was reordered: first segment is now %q", segments[0].Speaker)
	}
}

func TestSorted_StableOnTies(t *testing.T) {
	// Overlapping speakers with identical start times keep incoming order.
	segments := []Segment{
		{Speaker: "A", Start: 1.0, End: 3.0, Text: "one"},
		{Speaker: "B", Start: 1.0, End: 2.0, Text: "two"},
		{Speaker: "C", Start: 1.0, End: 4.0, Text: "three"},
	}

	ordered := Sorted(segments)
	for i, want := range []string{"A", "B", "C"} {
		if ordered[i].Speaker != want {
			t.Errorf("ordered[%d].Speaker = %q, want %q", i, ordered[i].Speaker, want)
		}
	}
}

func TestSorted_NonDecreasingStarts(t *testing.T) {
	segments := []Segment{
		{Speaker: "X", Start: 9.9, End: 10.0},
		{Speaker: "Y", Start: 0.1, End: 0.2},
		{Speaker: "Z", Start: 5.0, End: 6.0},
		{Speaker: "W", Start: 5.0, End: 5.5},
	}

	ordered := Sorted(segments)
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Start < ordered[i-1].Start {
			t.Errorf("starts not non-decreasing at %d: %f < %f",
				i, ordered[i].Start, ordered[i-1].Start)
		}
	}
}
