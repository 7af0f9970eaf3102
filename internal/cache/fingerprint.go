package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// noTranslation is the key suffix used when no target language was requested.
const noTranslation = "original"

// Fingerprint computes the cache key for a file and target language. The key
// is derived from the file bytes, not its name, so identical content under
// different names maps to the same entry.
func Fingerprint(path, targetLanguage string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	lang := targetLanguage
	if lang == "" {
		lang = noTranslation
	}
	return hex.EncodeToString(h.Sum(nil)) + "_" + lang, nil
}
