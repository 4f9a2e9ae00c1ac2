package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"diarscribe/internal/diarize"
	"diarscribe/internal/pipeline"
)

// transcribeSegment slices one diarized span out of the full waveform,
// transcribes the scratch chunk, and removes the chunk before returning.
// The chunk name is derived from the speaker label and start time, so no
// two spans collide within a run.
func (p *Pipeline) transcribeSegment(ctx context.Context, slice SliceFunc, audioPath, scratchDir string, span diarize.Segment, language string) (pipeline.Segment, error) {
	chunkName := fmt.Sprintf("temp_%s_%.2f.wav", span.Speaker, span.Start)
	chunkPath := filepath.Join(scratchDir, chunkName)

	if err := slice(ctx, audioPath, chunkPath, span.Start, span.End); err != nil {
		return pipeline.Segment{}, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	defer os.Remove(chunkPath)

	text, err := p.Transcriber.Transcribe(ctx, chunkPath, language)
	if err != nil {
		return pipeline.Segment{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	return pipeline.Segment{
		Speaker: span.Speaker,
		Start:   span.Start,
		End:     span.End,
		Text:    strings.TrimSpace(text),
	}, nil
}
