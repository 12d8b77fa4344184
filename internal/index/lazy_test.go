package index

import (
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

func TestLazyBuildsOnFirstUse(t *testing.T) {
	l := NewLazy(pageDocs("Download"), domain.SearchConfig{MinChars: 1, MaxResults: 5}, false)
	if l.Built() {
		t.Fatal("lazy index should not be built before first use")
	}

	idx := l.Get()
	if !l.Built() {
		t.Error("Get() should build the index")
	}
	if l.Get() != idx {
		t.Error("Get() should return the same index on every call")
	}
}

func TestLazyPreload(t *testing.T) {
	l := NewLazy(pageDocs("Download"), domain.SearchConfig{MinChars: 1, MaxResults: 5}, true)
	if !l.Built() {
		t.Error("preloaded index should be built immediately")
	}
}

func TestLazyPreloadDoesNotChangeResults(t *testing.T) {
	cfg := domain.SearchConfig{MinChars: 1, MaxResults: 5}
	docs := pageDocs("Download", "Installation", "How To Use", "Support")

	eager := NewLazy(docs, cfg, true).Get()
	lazy := NewLazy(docs, cfg, false).Get()

	for _, q := range []string{"o", "in", "use", "zzz"} {
		a, b := matchLabels(eager.Query(q)), matchLabels(lazy.Query(q))
		if !equalStrings(a, b) {
			t.Errorf("Query(%q): preload %v != lazy %v", q, a, b)
		}
	}
}
