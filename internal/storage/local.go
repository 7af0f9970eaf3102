package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Reference points at a persisted artifact.
type Reference struct {
	URL  string `json:"url"`  // public URL the artifact is served under
	Path string `json:"path"` // location on disk
	Name string `json:"name"` // stored filename
}

// Store persists artifact bytes and hands back a reference. The pipeline
// only depends on this interface; remote object stores can slot in behind it.
type Store interface {
	Save(localPath, category string) (*Reference, error)
}

// LocalStore keeps artifacts on the local filesystem under
// <baseDir>/<category>/, served at /static/<category>/.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the store rooted at baseDir.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save copies the file at localPath into the category directory under a
// unique name and returns its reference.
func (s *LocalStore) Save(localPath, category string) (*Reference, error) {
	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("artifact not found: %s", localPath)
	}

	category = sanitizeCategory(category)
	targetDir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("create category dir: %w", err)
	}

	name := uuid.New().String() + "_" + filepath.Base(localPath)
	destPath := filepath.Join(targetDir, name)

	if err := copyFile(localPath, destPath); err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	log.Printf("[storage] saved %s -> %s", localPath, destPath)

	return &Reference{
		URL:  "/static/" + category + "/" + name,
		Path: destPath,
		Name: name,
	}, nil
}

// sanitizeCategory keeps the category a single flat directory name.
func sanitizeCategory(category string) string {
	category = strings.Trim(category, "/")
	category = strings.ReplaceAll(category, "..", "")
	category = strings.ReplaceAll(category, string(os.PathSeparator), "")
	category = strings.ReplaceAll(category, "/", "")
	if category == "" {
		category = "misc"
	}
	return category
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
