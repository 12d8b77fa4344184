package index

import (
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Lazy defers Build until the index is first needed.
//
// Preloading only changes when the build cost is paid (at load time instead of
// on the first query); query results are identical either way.
type Lazy struct {
	once  sync.Once
	docs  []Document
	cfg   domain.SearchConfig
	idx   *Index
	built atomic.Bool
}

// NewLazy prepares an index over docs. With preload the index is built now.
func NewLazy(docs []Document, cfg domain.SearchConfig, preload bool) *Lazy {
	l := &Lazy{docs: docs, cfg: cfg}
	if preload {
		l.Get()
	}
	return l
}

// Get returns the index, building it on first call.
func (l *Lazy) Get() *Index {
	l.once.Do(func() {
		l.idx = Build(l.docs, l.cfg)
		l.docs = nil
		l.built.Store(true)
	})
	return l.idx
}

// Built reports whether the index has been built yet.
func (l *Lazy) Built() bool {
	return l.built.Load()
}
