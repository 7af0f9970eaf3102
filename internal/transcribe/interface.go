package transcribe

import (
	"context"

	"github.com/fathuur7/translate-backend/internal/subtitle"
)

// Result is the output of a transcription
type Result struct {
	Text     string             // full transcript text
	Language string             // detected language
	Segments []subtitle.Segment // timed segments, ordered
}

// Transcriber is the common interface for speech-to-text engines
type Transcriber interface {
	// Transcribe converts an audio file to a timed transcript
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
	// Name returns the engine name
	Name() string
}
