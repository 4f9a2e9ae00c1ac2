package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"diarscribe/internal/config"
	"diarscribe/internal/diarize"
	"diarscribe/internal/ffmpeg"
	"diarscribe/internal/transcribe"
	"diarscribe/internal/worker"

	"github.com/spf13/cobra"
)

var (
	output      string
	backend     string
	model       string
	diarizerURL string
	saveJSON    bool

	numSpeakers int
	minSpeakers int
	maxSpeakers int
)

func init() {
	defaults := config.Default()

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "also write the transcript to this path")
	rootCmd.Flags().StringVar(&backend, "backend", defaults.Backend, "transcription backend: whisper|openai")
	rootCmd.Flags().StringVar(&model, "model", "", "model name override (backend-specific)")
	rootCmd.Flags().StringVar(&diarizerURL, "diarizer-url", defaults.DiarizerURL, "pyannote diarization service base URL")
	rootCmd.Flags().BoolVar(&saveJSON, "save-json", false, "save segment JSON alongside the input")

	rootCmd.Flags().IntVar(&numSpeakers, "num-speakers", 0, "exact number of speakers (0 = auto-detect)")
	rootCmd.Flags().IntVar(&minSpeakers, "min-speakers", 0, "minimum expected number of speakers")
	rootCmd.Flags().IntVar(&maxSpeakers, "max-speakers", 0, "maximum expected number of speakers")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	token := args[1]

	// Resolve to absolute path.
	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	defaults := config.Default()

	// Pick the speech-to-text backend.
	var be transcribe.Backend
	switch strings.ToLower(backend) {
	case "whisper":
		m := model
		if m == "" {
			m = defaults.WhisperModel
		}
		be = transcribe.NewWhisperBackend(m)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("openai backend requires OPENAI_API_KEY")
		}
		be = transcribe.NewOpenAIBackend(apiKey, model)
	default:
		return fmt.Errorf("unknown backend: %s", backend)
	}

	dz := diarize.NewPyannote(diarizerURL, token,
		time.Duration(defaults.DiarizeTimeoutSec)*time.Second)

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ffmpeg.LogMediaInfo(ctx, absPath)

	p := &worker.Pipeline{Diarizer: dz, Transcriber: be}
	transcript, err := p.Run(ctx, worker.Options{
		InputPath:   absPath,
		OutputPath:  output,
		SaveJSON:    saveJSON,
		Language:    defaults.Language,
		NumSpeakers: numSpeakers,
		MinSpeakers: minSpeakers,
		MaxSpeakers: maxSpeakers,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), transcript)
	return nil
}
