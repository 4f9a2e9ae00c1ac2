// Package diarize defines the diarizer interface and segment types for
// speaker-diarization backends.
package diarize

import "context"

// Segment is one speaker-attributed time range in the source audio, in
// seconds.
type Segment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Request holds the parameters for one diarization call.
type Request struct {
	// AudioPath is the path to the waveform file to diarize.
	AudioPath string
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int
}

// Diarizer produces speaker segments covering the speech activity in an
// audio file. Segments may arrive in any order and may overlap; callers own
// ordering and overlap policy.
type Diarizer interface {
	Diarize(ctx context.Context, req Request) ([]Segment, error)
}
