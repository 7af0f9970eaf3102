package subtitle

import "strings"

// Segment is a timed span of recognized speech. Segments come from the
// transcription engine and are read-only to the rest of the pipeline.
type Segment struct {
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
	Text  string  `json:"text"`
}

// Valid reports whether the segment carries usable timing and text.
func (s Segment) Valid() bool {
	if s.Start < 0 || s.End < s.Start {
		return false
	}
	return strings.TrimSpace(s.Text) != ""
}

// FilterValid drops malformed segments instead of failing the whole batch.
// Order is preserved.
func FilterValid(segments []Segment) []Segment {
	valid := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}
