package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"diarscribe/internal/config"
	"diarscribe/internal/diarize"
	"diarscribe/internal/ffmpeg"
	"diarscribe/internal/pipeline"
	"diarscribe/internal/transcribe"
)

// SliceFunc cuts [startSec, endSec) out of audioPath into outPath.
type SliceFunc func(ctx context.Context, audioPath, outPath string, startSec, endSec float64) error

// ConvertFunc decodes a compressed container into a WAV file and returns
// the new path.
type ConvertFunc func(ctx context.Context, inputPath string) (string, error)

// healthChecker is implemented by diarizers that expose a reachability probe.
type healthChecker interface {
	Available(ctx context.Context) bool
}

// Options configures a single pipeline run.
type Options struct {
	InputPath string
	// OutputPath, when set, receives a copy of the transcript. Stdout
	// printing is the caller's job either way.
	OutputPath string
	// SaveJSON writes the sorted segment list as JSON next to the input.
	SaveJSON bool
	// Language is the recognition hint forwarded to the speech model.
	Language string

	// Speaker-count hints forwarded to the diarizer (0 = unset).
	NumSpeakers int
	MinSpeakers int
	MaxSpeakers int
}

// Pipeline holds the long-lived model handles for transcription runs. Both
// handles are loaded once and reused across segments and runs.
type Pipeline struct {
	Diarizer    diarize.Diarizer
	Transcriber transcribe.Backend

	// Slice and Convert default to their ffmpeg implementations when nil;
	// injectable for tests.
	Slice   SliceFunc
	Convert ConvertFunc
}

// Run executes the four pipeline stages — format normalization, diarization,
// per-segment transcription, assembly — and returns the rendered transcript.
// Any stage failure aborts the run; there are no partial results.
func (p *Pipeline) Run(ctx context.Context, opts Options) (string, error) {
	if _, err := os.Stat(opts.InputPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
	}

	compressed := config.IsCompressedExtension(filepath.Ext(opts.InputPath))

	// Preflight: fail before any model work when a collaborator is missing.
	needsFFmpeg := p.Slice == nil || (p.Convert == nil && compressed)
	if needsFFmpeg && !ffmpeg.Available() {
		return "", errors.New("ffmpeg not found in PATH")
	}
	if hc, ok := p.Diarizer.(healthChecker); ok && !hc.Available(ctx) {
		return "", fmt.Errorf("%w: diarization service unavailable", ErrModelLoad)
	}

	slice := p.Slice
	if slice == nil {
		slice = ffmpeg.Slice
	}
	convert := p.Convert
	if convert == nil {
		convert = ffmpeg.ConvertToWAV
	}

	// Stage 1: format normalization. Compressed containers are re-encoded
	// to a WAV with the same stem; the copy is removed at end of run.
	workingPath := opts.InputPath
	if compressed {
		wavPath, err := convert(ctx, opts.InputPath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailure, err)
		}
		workingPath = wavPath
		defer os.Remove(wavPath)
	}

	// Stage 2: diarization over the full waveform.
	slog.Info("diarizing", "file", filepath.Base(workingPath))
	spans, err := p.Diarizer.Diarize(ctx, diarize.Request{
		AudioPath:   workingPath,
		NumSpeakers: opts.NumSpeakers,
		MinSpeakers: opts.MinSpeakers,
		MaxSpeakers: opts.MaxSpeakers,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelLoad, err)
	}
	slog.Info("diarization complete", "segments", len(spans))

	// Stage 3: sequential per-segment transcription. Scratch chunks live in
	// a run-scoped directory removed on every exit path.
	scratchDir, err := os.MkdirTemp("", "diarscribe-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	segments := make([]pipeline.Segment, 0, len(spans))
	for i, span := range spans {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		slog.Info("transcribing segment",
			"segment", fmt.Sprintf("%d/%d", i+1, len(spans)),
			"speaker", span.Speaker)

		seg, err := p.transcribeSegment(ctx, slice, workingPath, scratchDir, span, opts.Language)
		if err != nil {
			return "", fmt.Errorf("segment %d/%d: %w", i+1, len(spans), err)
		}
		segments = append(segments, seg)
	}

	// Stage 4: assembly.
	transcript := pipeline.Assemble(segments)

	if opts.SaveJSON {
		if err := saveSegmentsJSON(opts.InputPath, segments); err != nil {
			return "", err
		}
	}
	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(transcript), 0o644); err != nil {
			return "", fmt.Errorf("write transcript: %w", err)
		}
		slog.Info("transcript written", "path", opts.OutputPath)
	}

	return transcript, nil
}

// saveSegmentsJSON writes the sorted segments next to the input file.
func saveSegmentsJSON(inputPath string, segments []pipeline.Segment) error {
	jsonPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".segments.json"

	data, err := json.MarshalIndent(pipeline.Sorted(segments), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write segments json: %w", err)
	}
	slog.Info("segments json written", "path", jsonPath)
	return nil
}
