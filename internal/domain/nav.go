package domain

// SidebarItem is a sidebar descriptor as declared in the configuration.
//
// Hierarchy is expressed either by nesting (Children) or by "/"-separated
// path segments ("guides/install" lives under "guides").
type SidebarItem struct {
	Path     string        `json:"n"`
	Label    string        `json:"l"`
	Icon     string        `json:"s,omitempty"`
	Access   string        `json:"a,omitempty"`
	Children []SidebarItem `json:"c,omitempty"`
}

// NavEntry is one node of the built navigation tree.
// Entries are never mutated once built; filters return copies.
type NavEntry struct {
	// Path is unique across the whole tree. Example: "download"
	Path string `json:"path"`

	// Label is the display text and the only searchable field.
	Label string `json:"label"`

	// Icon is opaque markup passed verbatim to the renderer.
	Icon string `json:"icon,omitempty"`

	// AccessTag restricts visibility; empty means always visible.
	AccessTag string `json:"access,omitempty"`

	Children []*NavEntry `json:"children,omitempty"`
}

// Member is a member-like item supplied by the hosting page
// (field, property, method, event...). Kind is matched against toolbar link ids.
type Member struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Language Language `json:"language,omitempty" yaml:"language,omitempty"`
	Page     string   `json:"page,omitempty" yaml:"page,omitempty"`
}

// Grant is the set of access levels a viewer holds.
type Grant map[string]struct{}

// NewGrant builds a grant from level values, ignoring blanks.
func NewGrant(levels ...string) Grant {
	g := make(Grant, len(levels))
	for _, lvl := range levels {
		if lvl != "" {
			g[lvl] = struct{}{}
		}
	}
	return g
}

// DefaultGrant is what an anonymous viewer holds.
func DefaultGrant() Grant {
	return NewGrant(AccessPublic)
}

// Allows reports whether a node tagged with tag is visible.
// An empty tag is always visible.
func (g Grant) Allows(tag string) bool {
	if tag == "" {
		return true
	}
	_, ok := g[tag]
	return ok
}
