package navtree

import (
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// flatItem is a descriptor in pre-order with its declared parent, if nested.
type flatItem struct {
	item      domain.SidebarItem
	key       string
	parentKey string
	nested    bool
}

// Build converts sidebar descriptors into a navigation forest.
//
// Nested descriptors keep their enclosing parent. Flat descriptors are attached
// to the longest declared "/"-prefix of their path, or to the root.
// Siblings always keep configuration order; the tree is never sorted.
func Build(items []domain.SidebarItem) ([]*domain.NavEntry, error) {
	flat := flatten(items, "", false, nil)

	// Pass 1: one node per distinct path.
	nodes := make(map[string]*domain.NavEntry, len(flat))
	kept := make([]flatItem, 0, len(flat))
	for _, f := range flat {
		if f.key == "" {
			return nil, &domain.TreeError{Path: f.item.Path, Conflict: "entry has no path"}
		}
		if existing, ok := nodes[f.key]; ok {
			if existing.Label != f.item.Label {
				return nil, &domain.TreeError{
					Path:     f.item.Path,
					Conflict: "declared as " + quote(existing.Label) + " and " + quote(f.item.Label),
				}
			}
			// Identical redeclaration: the first one wins its position.
			continue
		}
		nodes[f.key] = &domain.NavEntry{
			Path:      f.item.Path,
			Label:     f.item.Label,
			Icon:      f.item.Icon,
			AccessTag: f.item.Access,
		}
		kept = append(kept, f)
	}

	// Pass 2: resolve parents, rejecting nesting that contradicts path hierarchy.
	parents := make(map[string]string, len(kept))
	for _, f := range kept {
		if f.nested {
			parents[f.key] = f.parentKey
		} else {
			parents[f.key] = declaredAncestor(f.key, nodes)
		}
	}
	for _, f := range kept {
		if err := checkAcyclic(f.key, parents); err != nil {
			return nil, err
		}
	}

	// Pass 3: link in input order so children lists stay stable.
	roots := make([]*domain.NavEntry, 0, len(kept))
	for _, f := range kept {
		node := nodes[f.key]
		if parentKey := parents[f.key]; parentKey != "" {
			nodes[parentKey].Children = append(nodes[parentKey].Children, node)
			continue
		}
		roots = append(roots, node)
	}

	return roots, nil
}

// checkAcyclic walks up from key and fails if it comes back to key.
func checkAcyclic(key string, parents map[string]string) error {
	seen := 0
	for p := parents[key]; p != ""; p = parents[p] {
		if p == key || seen > len(parents) {
			return &domain.TreeError{Path: key, Conflict: "entry is its own ancestor"}
		}
		seen++
	}
	return nil
}

func flatten(items []domain.SidebarItem, parentKey string, nested bool, out []flatItem) []flatItem {
	for _, it := range items {
		key := normalizePath(it.Path)
		out = append(out, flatItem{item: it, key: key, parentKey: parentKey, nested: nested})
		if len(it.Children) > 0 {
			out = flatten(it.Children, key, true, out)
		}
	}
	return out
}

// declaredAncestor returns the longest strictly shorter declared prefix of key.
// Example: "guides/setup/linux" -> "guides/setup" if declared, else "guides".
func declaredAncestor(key string, nodes map[string]*domain.NavEntry) string {
	if key == "/" {
		return ""
	}
	segments := strings.Split(key, "/")
	for i := len(segments) - 1; i >= 1; i-- {
		candidate := strings.Join(segments[:i], "/")
		if _, ok := nodes[candidate]; ok {
			return candidate
		}
	}
	return ""
}

// normalizePath maps "/download/" and "download" to the same key; "/" stays "/".
func normalizePath(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

func quote(s string) string {
	return `"` + s + `"`
}
