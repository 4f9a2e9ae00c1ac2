// Package transcribe provides pluggable speech-to-text backends.
package transcribe

import "context"

// Backend converts one audio file into text.
type Backend interface {
	// Transcribe runs speech recognition over the file at audioPath.
	// language is a recognition hint (e.g. "en"). The returned text has
	// surrounding whitespace trimmed.
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}
