package job

import "time"

// Status represents the current state of a job
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further status transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Result is the full output of one successful processing run.
type Result struct {
	TranscriptText        string `json:"transcript_text"`
	OriginalSubtitle      string `json:"original_srt"`
	TranslatedSubtitle    string `json:"translated_srt,omitempty"`
	VideoRef              string `json:"video_url,omitempty"`
	OriginalSubtitleRef   string `json:"original_srt_url,omitempty"`
	TranslatedSubtitleRef string `json:"translated_srt_url,omitempty"`
}

// Job represents one asynchronous processing request and its observable state
type Job struct {
	ID             string    `json:"job_id"`
	Status         Status    `json:"status"`
	Filename       string    `json:"video_filename"`
	TargetLanguage string    `json:"target_language,omitempty"`
	Progress       int       `json:"progress"`
	Message        string    `json:"message"`
	Result         *Result   `json:"result,omitempty"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
