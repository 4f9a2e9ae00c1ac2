package transcribe

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// WhisperBackend shells out to the openai-whisper CLI and decodes the JSON
// result file it writes into the output directory.
type WhisperBackend struct {
	model string
}

// NewWhisperBackend creates a local whisper backend using the given model
// (e.g. "large-v2").
func NewWhisperBackend(model string) *WhisperBackend {
	return &WhisperBackend{model: model}
}

// Whisper JSON output. Timestamps are decoded as decimals so segment
// ordering does not wobble on float parsing.
type whisperResult struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
}

type whisperSegment struct {
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
	Text  string          `json:"text"`
}

// Transcribe runs the whisper CLI over audioPath with a fixed language hint
// and returns the recognized text.
func (w *WhisperBackend) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	outDir, err := os.MkdirTemp("", "whisper-out-")
	if err != nil {
		return "", fmt.Errorf("create whisper output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, "whisper", audioPath,
		"--model", w.model,
		"--language", language,
		"--output_format", "json",
		"--output_dir", outDir,
	)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("stderr pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start whisper: %w", err)
	}

	go logLines(stderr)
	go logLines(stdout)

	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("transcribing with whisper: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	resultPath := filepath.Join(outDir, stem+".json")
	resultFile, err := os.Open(resultPath)
	if err != nil {
		return "", fmt.Errorf("opening whisper result: %w", err)
	}
	defer resultFile.Close()

	var result whisperResult
	if err := json.NewDecoder(resultFile).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding whisper json result: %w", err)
	}

	return joinSegments(result), nil
}

// logLines streams subprocess output to the debug log.
func logLines(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		slog.Debug("whisper", "line", scanner.Text())
	}
}

// joinSegments flattens a whisper result into one trimmed string, segments
// ordered by start time.
func joinSegments(result whisperResult) string {
	if len(result.Segments) == 0 {
		return strings.TrimSpace(result.Text)
	}

	segments := make([]whisperSegment, len(result.Segments))
	copy(segments, result.Segments)
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start.Cmp(segments[j].Start) < 0
	})

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
