package subtitle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyContent signals that no valid segments were left to assemble.
// It is distinct from transient failures: retrying will not help.
var ErrEmptyContent = errors.New("no valid segments to assemble")

// FormatTimestamp converts seconds into SRT clock notation HH:MM:SS,mmm.
// Negative input clamps to zero; hours are unbounded; sub-millisecond
// precision is truncated, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int64(seconds * 1000)
	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	s := totalMs / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// BuildSRT assembles ordered subtitle blocks from timed segments. Malformed
// segments are filtered out first. translations, when non-nil, must parallel
// the filtered valid-segment list; a blank translation falls back to the
// segment's own text so no cue is ever lost.
func BuildSRT(segments []Segment, translations []string) (string, error) {
	valid := FilterValid(segments)
	if len(valid) == 0 {
		return "", ErrEmptyContent
	}

	var sb strings.Builder
	for i, seg := range valid {
		text := strings.TrimSpace(seg.Text)
		if translations != nil && i < len(translations) && strings.TrimSpace(translations[i]) != "" {
			text = strings.TrimSpace(translations[i])
		}

		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
