package translate

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/fathuur7/translate-backend/internal/cache"
	"github.com/fathuur7/translate-backend/internal/retry"
)

// DefaultMaxRetries is how many attempts each segment gets before falling
// back to its source text.
const DefaultMaxRetries = 3

// BatchTranslator translates an ordered list of texts, memoizing successful
// translations and retrying flaky calls with growing backoff. It degrades
// per item: a segment whose attempts all fail keeps its original text, and
// its siblings are unaffected. The output always has the same length and
// order as the input.
type BatchTranslator struct {
	engine     Translator
	memo       *cache.MemoCache
	maxRetries int

	// Backoff controls the wait between failed attempts. Tests shrink it.
	Backoff retry.BackoffFunc
}

// NewBatchTranslator wires an engine and a memo cache into a batch pipeline.
func NewBatchTranslator(engine Translator, memo *cache.MemoCache, maxRetries int) *BatchTranslator {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	return &BatchTranslator{
		engine:     engine,
		memo:       memo,
		maxRetries: maxRetries,
		Backoff:    retry.Linear(2 * time.Second),
	}
}

// TranslateAll translates texts into targetLanguage. Blank texts and an
// empty target language pass through unchanged. This method never fails:
// every output element is either a translation or the original text.
func (b *BatchTranslator) TranslateAll(ctx context.Context, texts []string, targetLanguage string) []string {
	out := make([]string, len(texts))

	if targetLanguage == "" {
		copy(out, texts)
		return out
	}

	misses := 0
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			out[i] = text
			continue
		}

		if cached, ok := b.memo.Get(trimmed, targetLanguage); ok {
			out[i] = cached
			continue
		}

		misses++
		out[i] = b.translateOne(ctx, trimmed, targetLanguage)
	}

	if misses > 0 {
		log.Printf("[translate] batch done: %d/%d segments translated, %d memoized", misses, len(texts), len(texts)-misses)
	}
	return out
}

// translateOne runs the retry loop for a single segment and falls back to
// the source text once attempts are exhausted.
func (b *BatchTranslator) translateOne(ctx context.Context, text, targetLanguage string) string {
	translated, err := retry.Do(ctx, b.maxRetries, b.Backoff, func() (string, error) {
		return b.engine.Translate(ctx, text, targetLanguage)
	})
	if err != nil {
		log.Printf("[translate] giving up on segment %q after %d attempts: %v", truncate(text, 50), b.maxRetries, err)
		return text
	}
	if strings.TrimSpace(translated) == "" {
		log.Printf("[translate] empty translation for %q, keeping original", truncate(text, 50))
		return text
	}

	b.memo.Put(text, targetLanguage, translated)
	return translated
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
