package translate

import "context"

// Translator is the common interface for translation backends. A call may
// fail or be rate-limited; retry handling lives in BatchTranslator, not in
// the engine itself.
type Translator interface {
	// Translate converts text into the target language.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	// Name returns the engine name
	Name() string
}
