package translate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/fathuur7/translate-backend/internal/cache"
)

func noBackoff(int) time.Duration { return 0 }

// fakeEngine scripts translation outcomes per call.
type fakeEngine struct {
	calls     int
	translate func(call int, text, lang string) (string, error)
}

func (f *fakeEngine) Translate(_ context.Context, text, lang string) (string, error) {
	f.calls++
	return f.translate(f.calls, text, lang)
}

func (f *fakeEngine) Name() string { return "fake" }

func TestTranslateAllHappyPath(t *testing.T) {
	engine := &fakeEngine{translate: func(_ int, text, lang string) (string, error) {
		return "[" + lang + "]" + text, nil
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 3)

	got := b.TranslateAll(context.Background(), []string{"one", "two"}, "id")
	want := []string{"[id]one", "[id]two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTranslateAllFullFallback(t *testing.T) {
	engine := &fakeEngine{translate: func(_ int, _, _ string) (string, error) {
		return "", errors.New("upstream down")
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 3)
	b.Backoff = noBackoff

	input := []string{"a", "b", "c", "d"}
	got := b.TranslateAll(context.Background(), input, "id")

	if !reflect.DeepEqual(got, input) {
		t.Errorf("full failure must return the input unchanged, got %v", got)
	}
	if engine.calls != len(input)*3 {
		t.Errorf("calls = %d, want %d (3 attempts per item)", engine.calls, len(input)*3)
	}
}

func TestTranslateAllRecoversOnThirdAttempt(t *testing.T) {
	engine := &fakeEngine{translate: func(call int, text, _ string) (string, error) {
		if call < 3 {
			return "", errors.New("rate limited")
		}
		return "translated:" + text, nil
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 3)
	b.Backoff = noBackoff

	got := b.TranslateAll(context.Background(), []string{"retry me"}, "id")
	if got[0] != "translated:retry me" {
		t.Errorf("got %q, want the third-attempt success, not the fallback", got[0])
	}
}

func TestTranslateAllPerItemIsolation(t *testing.T) {
	// Segment "bad" always fails; its siblings must still translate.
	engine := &fakeEngine{translate: func(_ int, text, _ string) (string, error) {
		if text == "bad" {
			return "", errors.New("poison")
		}
		return "ok:" + text, nil
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 2)
	b.Backoff = noBackoff

	got := b.TranslateAll(context.Background(), []string{"a", "bad", "c"}, "id")
	want := []string{"ok:a", "bad", "ok:c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTranslateAllSkipsBlankAndNoLanguage(t *testing.T) {
	engine := &fakeEngine{translate: func(_ int, text, _ string) (string, error) {
		return "x:" + text, nil
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 3)

	// Blank texts pass through untouched.
	got := b.TranslateAll(context.Background(), []string{"", "  ", "real"}, "id")
	if got[0] != "" || got[1] != "  " || got[2] != "x:real" {
		t.Errorf("got %v", got)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1 (blanks skipped)", engine.calls)
	}

	// No target language: everything passes through, engine never called.
	engine.calls = 0
	input := []string{"a", "b"}
	got = b.TranslateAll(context.Background(), input, "")
	if !reflect.DeepEqual(got, input) {
		t.Errorf("got %v, want input unchanged", got)
	}
	if engine.calls != 0 {
		t.Errorf("engine called %d times, want 0", engine.calls)
	}
}

func TestTranslateAllMemoizes(t *testing.T) {
	engine := &fakeEngine{translate: func(_ int, text, _ string) (string, error) {
		return "t:" + text, nil
	}}
	memo := cache.NewMemoCache(1000)
	b := NewBatchTranslator(engine, memo, 3)

	// The duplicate in one batch and the repeat batch both hit the memo.
	b.TranslateAll(context.Background(), []string{"same", "same", "other"}, "id")
	b.TranslateAll(context.Background(), []string{"same", "other"}, "id")

	if engine.calls != 2 {
		t.Errorf("engine calls = %d, want 2 (one per distinct text)", engine.calls)
	}
}

func TestTranslateAllLengthAndOrderPreserved(t *testing.T) {
	engine := &fakeEngine{translate: func(call int, text, _ string) (string, error) {
		if call%2 == 0 {
			return "", errors.New("flaky")
		}
		return "t:" + text, nil
	}}
	b := NewBatchTranslator(engine, cache.NewMemoCache(1000), 1)
	b.Backoff = noBackoff

	input := make([]string, 20)
	for i := range input {
		input[i] = fmt.Sprintf("segment %02d", i)
	}

	got := b.TranslateAll(context.Background(), input, "id")
	if len(got) != len(input) {
		t.Fatalf("len = %d, want %d", len(got), len(input))
	}
	for i, out := range got {
		if out != input[i] && out != "t:"+input[i] {
			t.Errorf("index %d: %q is neither original nor its translation", i, out)
		}
	}
}
