package index

import (
	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/navtree"
)

// KindPage marks documents produced from sidebar entries.
const KindPage = "page"

// Document is one indexable item.
type Document struct {
	// ID is the nav path for pages and the member name for members.
	ID    string `json:"id"`
	Label string `json:"label"`

	// Kind is "page" or a member kind matched against toolbar link ids.
	Kind string `json:"kind"`

	// Path is the page the document lives on.
	Path string `json:"path,omitempty"`

	Language domain.Language `json:"language,omitempty"`

	// Access lists the tags of the entry and all of its ancestors.
	Access []string `json:"-"`
}

// AsMember converts a member document back to the hosting page's item.
func (d Document) AsMember() domain.Member {
	return domain.Member{
		Name:     d.Label,
		Kind:     d.Kind,
		Language: d.Language,
		Page:     d.Path,
	}
}

// DocumentsFrom lists page documents in tree pre-order followed by members in input order.
func DocumentsFrom(tree []*domain.NavEntry, members []domain.Member) []Document {
	docs := make([]Document, 0, navtree.Count(tree)+len(members))

	navtree.Walk(tree, func(e *domain.NavEntry, ancestors []*domain.NavEntry) {
		var access []string
		for _, a := range ancestors {
			if a.AccessTag != "" {
				access = append(access, a.AccessTag)
			}
		}
		if e.AccessTag != "" {
			access = append(access, e.AccessTag)
		}
		docs = append(docs, Document{
			ID:     e.Path,
			Label:  e.Label,
			Kind:   KindPage,
			Path:   e.Path,
			Access: access,
		})
	})

	for _, m := range members {
		docs = append(docs, Document{
			ID:       m.Name,
			Label:    m.Name,
			Kind:     m.Kind,
			Path:     m.Page,
			Language: m.Language,
		})
	}

	return docs
}
