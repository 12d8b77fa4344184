package navtree

import (
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// FilterLabel keeps entries whose label contains query (case-insensitive),
// together with the ancestors needed to reach them. An empty query returns a
// copy of the whole forest.
func FilterLabel(forest []*domain.NavEntry, query string) []*domain.NavEntry {
	q := domain.Fold(query)
	if q == "" {
		return Clone(forest)
	}
	return filterLabel(forest, q)
}

func filterLabel(forest []*domain.NavEntry, q string) []*domain.NavEntry {
	var out []*domain.NavEntry
	for _, entry := range forest {
		children := filterLabel(entry.Children, q)
		if len(children) == 0 && !strings.Contains(strings.ToLower(entry.Label), q) {
			continue
		}
		cp := shallowCopy(entry)
		cp.Children = children
		out = append(out, cp)
	}
	return out
}

// Clone deep-copies a forest.
func Clone(forest []*domain.NavEntry) []*domain.NavEntry {
	out := make([]*domain.NavEntry, 0, len(forest))
	for _, entry := range forest {
		cp := shallowCopy(entry)
		if len(entry.Children) > 0 {
			cp.Children = Clone(entry.Children)
		}
		out = append(out, cp)
	}
	return out
}
