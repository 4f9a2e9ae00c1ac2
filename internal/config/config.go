package config

// Config holds the full application configuration.
type Config struct {
	// Backend selects the transcription backend: "whisper" or "openai".
	Backend string
	// WhisperModel is the model used by the local whisper CLI backend.
	WhisperModel string
	// Language is the recognition hint passed to the speech model.
	Language string

	DiarizerURL       string
	DiarizeTimeoutSec int
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		Backend:           "whisper",
		WhisperModel:      "large-v2",
		Language:          "en",
		DiarizerURL:       "http://localhost:8388",
		DiarizeTimeoutSec: 300,
	}
}
