package navtree

import "github.com/MrSnakeDoc/docnav/internal/domain"

// Filter returns a new forest holding only the entries visible to grant.
//
// Denial is node-level and propagates downward: when an entry's tag is not
// granted, the entry and its whole subtree are dropped, even if some
// descendants would be visible on their own. The input forest is not modified,
// so one base tree can serve viewers with different grants concurrently.
func Filter(forest []*domain.NavEntry, grant domain.Grant) []*domain.NavEntry {
	out := make([]*domain.NavEntry, 0, len(forest))
	for _, entry := range forest {
		if !grant.Allows(entry.AccessTag) {
			continue
		}
		cp := shallowCopy(entry)
		if len(entry.Children) > 0 {
			cp.Children = Filter(entry.Children, grant)
		}
		out = append(out, cp)
	}
	return out
}

func shallowCopy(e *domain.NavEntry) *domain.NavEntry {
	return &domain.NavEntry{
		Path:      e.Path,
		Label:     e.Label,
		Icon:      e.Icon,
		AccessTag: e.AccessTag,
	}
}
