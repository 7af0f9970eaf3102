package cache

import "testing"

func TestMemoCacheRoundTrip(t *testing.T) {
	c := NewMemoCache(100)

	if _, ok := c.Get("hello", "id"); ok {
		t.Fatal("empty memo should miss")
	}

	c.Put("hello", "id", "halo")

	got, ok := c.Get("hello", "id")
	if !ok || got != "halo" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	// Whitespace is normalized away in the key.
	got, ok = c.Get("  hello  ", "id")
	if !ok || got != "halo" {
		t.Error("trimmed text should share the memo key")
	}

	if _, ok := c.Get("hello", "ja"); ok {
		t.Error("different language must miss")
	}
}

func TestMemoCacheBounded(t *testing.T) {
	c := NewMemoCache(2)
	c.Put("a", "id", "1")
	c.Put("b", "id", "2")
	c.Put("c", "id", "3")

	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
	if _, ok := c.Get("a", "id"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("c", "id"); !ok {
		t.Error("newest entry must survive")
	}
}

func TestMemoCacheDisabled(t *testing.T) {
	c := NewMemoCache(0)
	c.Put("a", "id", "1")
	if _, ok := c.Get("a", "id"); ok {
		t.Error("disabled memo must always miss")
	}
}
