package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/fathuur7/translate-backend/internal/cache"
	"github.com/fathuur7/translate-backend/internal/job"
	"github.com/fathuur7/translate-backend/internal/retry"
	"github.com/fathuur7/translate-backend/internal/storage"
	"github.com/fathuur7/translate-backend/internal/subtitle"
	"github.com/fathuur7/translate-backend/internal/transcribe"
	"github.com/fathuur7/translate-backend/internal/translate"
)

// ErrQueueFull is returned when the worker queue cannot accept another job.
var ErrQueueFull = errors.New("job queue is full")

const storeMaxAttempts = 3

// Service drives submitted media through the processing pipeline:
// cache check, audio extraction, transcription, subtitle assembly, optional
// translation, artifact storage. A fixed pool of workers pulls from a
// bounded queue; a full queue rejects the submission instead of growing
// without limit.
type Service struct {
	jobs        *job.Manager
	cache       *cache.ResultCache
	transcriber transcribe.Transcriber
	translator  *translate.BatchTranslator
	store       storage.Store
	workDir     string

	queue  chan task
	ctx    context.Context
	cancel context.CancelFunc
}

type task struct {
	jobID          string
	inputPath      string
	filename       string
	targetLanguage string
}

// NewService wires the pipeline and starts its workers.
func NewService(
	jobs *job.Manager,
	resultCache *cache.ResultCache,
	transcriber transcribe.Transcriber,
	translator *translate.BatchTranslator,
	store storage.Store,
	workDir string,
	workers, queueDepth int,
) *Service {
	if workers < 1 {
		workers = 1
	}
	if queueDepth < 1 {
		queueDepth = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		jobs:        jobs,
		cache:       resultCache,
		transcriber: transcriber,
		translator:  translator,
		store:       store,
		workDir:     workDir,
		queue:       make(chan task, queueDepth),
		ctx:         ctx,
		cancel:      cancel,
	}

	for i := 0; i < workers; i++ {
		go s.worker(i)
	}
	log.Printf("[pipeline] started %d workers (queue depth %d)", workers, queueDepth)

	return s
}

// Stop shuts the workers down. Queued jobs are abandoned.
func (s *Service) Stop() {
	s.cancel()
}

// Submit registers a job for the media file at inputPath and queues it for
// background processing. Returns the job id immediately, or ErrQueueFull
// when the pool is saturated.
func (s *Service) Submit(inputPath, filename, targetLanguage string) (string, error) {
	jobID := s.jobs.Create(filename, targetLanguage)

	select {
	case s.queue <- task{jobID: jobID, inputPath: inputPath, filename: filename, targetLanguage: targetLanguage}:
		log.Printf("[pipeline] job %s queued (file=%s lang=%s)", jobID, filename, targetLanguage)
		return jobID, nil
	default:
		s.jobs.Delete(jobID)
		return "", ErrQueueFull
	}
}

func (s *Service) worker(id int) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case t := <-s.queue:
			s.runTask(id, t)
		}
	}
}

// runTask executes one job with panic recovery: nothing escapes the worker
// boundary, a crash becomes a failed job.
func (s *Service) runTask(workerID int, t task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[pipeline] worker %d: panic processing job %s: %v\n%s",
				workerID, t.jobID, r, string(debug.Stack()))
			s.jobs.Fail(t.jobID, fmt.Sprintf("internal error: %v", r))
		}
	}()
	defer os.Remove(t.inputPath)

	if err := s.process(t); err != nil {
		log.Printf("[pipeline] worker %d: job %s failed: %v", workerID, t.jobID, err)
		s.jobs.Fail(t.jobID, err.Error())
		return
	}
	log.Printf("[pipeline] worker %d: job %s completed", workerID, t.jobID)
}

// process walks one job through the pipeline stages, keeping progress
// monotonic for pollers. The result cache is consulted before any expensive
// work and written only after a fully successful run, so a failed attempt
// can never poison it.
func (s *Service) process(t task) error {
	if result, ok := s.cache.Get(t.inputPath, t.targetLanguage); ok {
		s.jobs.Complete(t.jobID, &result, "Completed from cache")
		return nil
	}

	s.jobs.SetProcessing(t.jobID, 5, "Processing started")

	// Extract audio
	s.jobs.SetProgress(t.jobID, 10, "Extracting audio...")
	audioPath := filepath.Join(s.workDir, t.jobID+".wav")
	if err := transcribe.ExtractAudio(s.ctx, t.inputPath, audioPath); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)

	// Transcribe
	s.jobs.SetProgress(t.jobID, 30, "Transcribing audio...")
	transcript, err := s.transcriber.Transcribe(s.ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	// Assemble original subtitles
	s.jobs.SetProgress(t.jobID, 50, "Assembling subtitles...")
	originalSRT, err := subtitle.BuildSRT(transcript.Segments, nil)
	if err != nil {
		return fmt.Errorf("assemble subtitles: %w", err)
	}

	// Translate (optional); per-segment failures fall back to source text
	// inside the batch translator and never fail the job.
	translatedSRT := ""
	if t.targetLanguage != "" {
		valid := subtitle.FilterValid(transcript.Segments)
		s.jobs.SetProgress(t.jobID, 60, fmt.Sprintf("Translating %d segments to %q...", len(valid), t.targetLanguage))

		texts := make([]string, len(valid))
		for i, seg := range valid {
			texts[i] = seg.Text
		}
		translations := s.translator.TranslateAll(s.ctx, texts, t.targetLanguage)

		translatedSRT, err = subtitle.BuildSRT(transcript.Segments, translations)
		if err != nil {
			return fmt.Errorf("assemble translated subtitles: %w", err)
		}
		s.jobs.SetProgress(t.jobID, 80, "Translation complete")
	}

	// Store artifacts
	s.jobs.SetProgress(t.jobID, 85, "Storing artifacts...")
	result := job.Result{
		TranscriptText:     transcript.Text,
		OriginalSubtitle:   originalSRT,
		TranslatedSubtitle: translatedSRT,
	}
	if err := s.storeArtifacts(t, originalSRT, translatedSRT, &result); err != nil {
		return err
	}

	// Cache before completing so an identical follow-up request hits.
	s.jobs.SetProgress(t.jobID, 95, "Finalizing...")
	s.cache.Put(t.inputPath, result, t.targetLanguage)
	s.jobs.Complete(t.jobID, &result, "Processing complete")

	return nil
}

// storeArtifacts persists the source media and the assembled subtitle files,
// filling the references in result. Each upload gets a short retry budget;
// exhausting it fails the job.
func (s *Service) storeArtifacts(t task, originalSRT, translatedSRT string, result *job.Result) error {
	videoRef, err := s.saveWithRetry(t.inputPath, "videos")
	if err != nil {
		return fmt.Errorf("store video: %w", err)
	}
	result.VideoRef = videoRef.URL

	// Work files are keyed by job id so concurrent jobs with the same
	// upload name cannot collide.
	base := t.jobID + "_" + trimExt(t.filename)

	originalPath := filepath.Join(s.workDir, base+"_original.srt")
	if err := os.WriteFile(originalPath, []byte(originalSRT), 0644); err != nil {
		return fmt.Errorf("write original subtitle: %w", err)
	}
	defer os.Remove(originalPath)

	originalRef, err := s.saveWithRetry(originalPath, "subtitles")
	if err != nil {
		return fmt.Errorf("store original subtitle: %w", err)
	}
	result.OriginalSubtitleRef = originalRef.URL

	if translatedSRT == "" {
		return nil
	}

	translatedPath := filepath.Join(s.workDir, base+"_"+t.targetLanguage+".srt")
	if err := os.WriteFile(translatedPath, []byte(translatedSRT), 0644); err != nil {
		return fmt.Errorf("write translated subtitle: %w", err)
	}
	defer os.Remove(translatedPath)

	translatedRef, err := s.saveWithRetry(translatedPath, "subtitles")
	if err != nil {
		return fmt.Errorf("store translated subtitle: %w", err)
	}
	result.TranslatedSubtitleRef = translatedRef.URL

	return nil
}

func (s *Service) saveWithRetry(localPath, category string) (*storage.Reference, error) {
	return retry.Do(s.ctx, storeMaxAttempts, retry.Linear(time.Second), func() (*storage.Reference, error) {
		return s.store.Save(localPath, category)
	})
}

func trimExt(name string) string {
	base := filepath.Base(name)
	return base[:len(base)-len(filepath.Ext(base))]
}
