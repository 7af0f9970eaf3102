package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreSave(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	src := filepath.Join(t.TempDir(), "subtitle.srt")
	if err := os.WriteFile(src, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ref, err := store.Save(src, "subtitles")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(ref.URL, "/static/subtitles/") {
		t.Errorf("URL = %q, want /static/subtitles/ prefix", ref.URL)
	}
	if !strings.HasSuffix(ref.Name, "_subtitle.srt") {
		t.Errorf("Name = %q, want original name suffix", ref.Name)
	}

	stored, err := os.ReadFile(ref.Path)
	if err != nil {
		t.Fatalf("read stored artifact: %v", err)
	}
	original, _ := os.ReadFile(src)
	if string(stored) != string(original) {
		t.Error("stored bytes differ from source")
	}
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	src := filepath.Join(t.TempDir(), "v.mp4")
	os.WriteFile(src, []byte("data"), 0644)

	a, err := store.Save(src, "videos")
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Save(src, "videos")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name == b.Name {
		t.Error("two saves of the same file must not collide")
	}
}

func TestLocalStoreMissingSource(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	if _, err := store.Save(filepath.Join(t.TempDir(), "nope.mp4"), "videos"); err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestSanitizeCategory(t *testing.T) {
	tests := []struct{ in, want string }{
		{"subtitles", "subtitles"},
		{"../etc", "etc"},
		{"a/b", "ab"},
		{"", "misc"},
	}
	for _, tt := range tests {
		if got := sanitizeCategory(tt.in); got != tt.want {
			t.Errorf("sanitizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
