package subtitle

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{3661.25, "01:01:01,250"},
		{59.999, "00:00:59,999"},
		{-5, "00:00:00,000"},
		{7322.5, "02:02:02,500"},
		{360000, "100:00:00,000"}, // hours are unbounded
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTimestampTruncates(t *testing.T) {
	// Sub-millisecond precision is cut off, not rounded.
	if got := FormatTimestamp(1.0006); got != "00:00:01,000" {
		t.Errorf("got %q, want truncation to 00:00:01,000", got)
	}
}

func TestSegmentValid(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want bool
	}{
		{"ok", Segment{Start: 0, End: 1, Text: "hi"}, true},
		{"blank text", Segment{Start: 0, End: 1, Text: "   "}, false},
		{"negative start", Segment{Start: -1, End: 1, Text: "hi"}, false},
		{"end before start", Segment{Start: 2, End: 1, Text: "hi"}, false},
		{"zero length", Segment{Start: 1, End: 1, Text: "hi"}, true},
	}

	for _, tt := range tests {
		if got := tt.seg.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuildSRTFiltersMalformed(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1.5, Text: "first"},
		{Start: 2, End: 1, Text: "broken timing"}, // dropped
		{Start: 3, End: 4, Text: "second"},
	}

	srt, err := BuildSRT(segments, nil)
	if err != nil {
		t.Fatalf("BuildSRT: %v", err)
	}

	blocks := strings.Split(strings.TrimSpace(srt), "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2:\n%s", len(blocks), srt)
	}
	if !strings.HasPrefix(blocks[0], "1\n00:00:00,000 --> 00:00:01,500\nfirst") {
		t.Errorf("unexpected first block:\n%s", blocks[0])
	}
	if !strings.HasPrefix(blocks[1], "2\n") {
		t.Errorf("blocks must be renumbered 1..N, got:\n%s", blocks[1])
	}
}

func TestBuildSRTEmptyContent(t *testing.T) {
	_, err := BuildSRT(nil, nil)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}

	_, err = BuildSRT([]Segment{{Start: 0, End: 1, Text: "  "}}, nil)
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("all-invalid input: err = %v, want ErrEmptyContent", err)
	}
}

func TestBuildSRTWithTranslations(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Text: "hello"},
		{Start: 1, End: 2, Text: "world"},
	}

	srt, err := BuildSRT(segments, []string{"halo", "dunia"})
	if err != nil {
		t.Fatalf("BuildSRT: %v", err)
	}
	if !strings.Contains(srt, "halo") || !strings.Contains(srt, "dunia") {
		t.Errorf("translations missing:\n%s", srt)
	}
	if strings.Contains(srt, "hello") {
		t.Errorf("source text should be replaced:\n%s", srt)
	}
}

func TestBuildSRTBlankTranslationFallsBack(t *testing.T) {
	segments := []Segment{{Start: 0, End: 1, Text: "keep me"}}

	srt, err := BuildSRT(segments, []string{"   "})
	if err != nil {
		t.Fatalf("BuildSRT: %v", err)
	}
	if !strings.Contains(srt, "keep me") {
		t.Errorf("blank translation must fall back to source text:\n%s", srt)
	}
}
