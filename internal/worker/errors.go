package worker

import "errors"

// Failure classes for the pipeline stages. Every run-aborting error wraps
// one of these so callers can tell a missing input apart from a model fault.
var (
	ErrInputNotFound = errors.New("input audio file not found")
	ErrDecodeFailure = errors.New("audio decode failed")
	ErrModelLoad     = errors.New("model load failed")
	ErrTranscription = errors.New("transcription failed")
)
