package index

import (
	"time"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/navtree"
)

// Snapshot is everything derived from one loaded configuration.
// It is read-only once created and is replaced wholesale on reload.
type Snapshot struct {
	Config      *domain.Configuration
	Tree        []*domain.NavEntry
	Members     []domain.Member
	Search      *Lazy
	Fingerprint string
	LoadedAt    time.Time
}

// NewSnapshot wires a configuration, its tree and the hosting page's members
// into a snapshot with a (possibly preloaded) search index.
func NewSnapshot(cfg *domain.Configuration, tree []*domain.NavEntry, members []domain.Member, fingerprint string) *Snapshot {
	return &Snapshot{
		Config:      cfg,
		Tree:        tree,
		Members:     members,
		Search:      NewLazy(DocumentsFrom(tree, members), cfg.Search, cfg.PreloadIndex()),
		Fingerprint: fingerprint,
		LoadedAt:    time.Now(),
	}
}

// Sidebar returns the tree as seen by a viewer holding grant.
func (s *Snapshot) Sidebar(grant domain.Grant) []*domain.NavEntry {
	return navtree.Filter(s.Tree, grant)
}
