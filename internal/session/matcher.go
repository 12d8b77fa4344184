package session

import (
	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/navtree"
	"github.com/MrSnakeDoc/docnav/internal/toolbar"
)

// Surface names the UI element a session filters.
type Surface string

const (
	SurfaceSidebar Surface = "sidebar"
	SurfaceToolbar Surface = "toolbar"
)

// Result is what a surface shows for one query.
type Result struct {
	Query string `json:"query"`

	// Seq is the sequence number of the query that produced the result.
	Seq uint64 `json:"seq"`

	// Count is the number of visible matches.
	Count int `json:"count"`

	// Tree is the filtered sidebar (sidebar surface only).
	Tree []*domain.NavEntry `json:"tree,omitempty"`

	// Groups holds the filtered members per toolbar link (toolbar surface only).
	Groups *toolbar.Groups `json:"groups,omitempty"`

	// Throttled is set when the query was too short to be evaluated.
	Throttled bool `json:"throttled,omitempty"`

	NotFound string `json:"notFound,omitempty"`
}

// Matcher computes a surface's result for a query.
// Implementations must be safe for concurrent use.
type Matcher interface {
	Match(query string) Result
}

// SidebarMatcher filters an already access-scoped tree by label.
type SidebarMatcher struct {
	Tree []*domain.NavEntry
}

func (m SidebarMatcher) Match(query string) Result {
	tree := navtree.FilterLabel(m.Tree, query)
	return Result{Tree: tree, Count: navtree.Count(tree)}
}

// ToolbarMatcher filters the hosting page's members through the search index
// and groups the hits by toolbar link.
type ToolbarMatcher struct {
	Index   *index.Lazy
	Links   []domain.ToolbarLink
	Members []domain.Member
	Scope   index.Scope
}

func (m ToolbarMatcher) Match(query string) Result {
	idx := m.Index.Get()

	// An empty or too short query shows every member.
	if !idx.Accepts(query) {
		g := toolbar.GroupBy(m.Links, m.Members)
		return Result{
			Groups:    &g,
			Count:     g.Len(),
			Throttled: domain.Fold(query) != "",
		}
	}

	// Kinds without a link are dropped before MaxResults is applied,
	// so they never take the place of a visible member.
	scope := m.Scope
	scope.MembersOnly = true
	scope.Kinds = make([]string, 0, len(m.Links))
	for _, l := range m.Links {
		scope.Kinds = append(scope.Kinds, l.ID)
	}
	hits := idx.QueryScoped(query, scope)

	items := make([]domain.Member, 0, len(hits))
	for _, h := range hits {
		items = append(items, h.AsMember())
	}
	g := toolbar.GroupBy(m.Links, items)
	return Result{Groups: &g, Count: g.Len()}
}
