package navtree

import "github.com/MrSnakeDoc/docnav/internal/domain"

// Walk visits every entry in pre-order (declaration order). ancestors lists
// the path from the root down to the entry's parent.
func Walk(forest []*domain.NavEntry, fn func(entry *domain.NavEntry, ancestors []*domain.NavEntry)) {
	walk(forest, nil, fn)
}

func walk(forest []*domain.NavEntry, ancestors []*domain.NavEntry, fn func(*domain.NavEntry, []*domain.NavEntry)) {
	for _, entry := range forest {
		fn(entry, ancestors)
		if len(entry.Children) > 0 {
			walk(entry.Children, append(ancestors[:len(ancestors):len(ancestors)], entry), fn)
		}
	}
}

// Count returns the number of entries in the forest.
func Count(forest []*domain.NavEntry) int {
	n := 0
	Walk(forest, func(*domain.NavEntry, []*domain.NavEntry) { n++ })
	return n
}
