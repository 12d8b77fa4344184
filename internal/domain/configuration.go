package domain

import "strings"

// Configuration is the validated, normalized documentation-site configuration.
//
// It is built once by the loader and never mutated afterwards: every
// component receives it explicitly and treats it as a read-only snapshot.
// A reload produces a brand new Configuration.
type Configuration struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID identifies the documentation instance. Required.
	ID string `json:"id"`

	// Version of the documentation set. Required.
	Version string `json:"version"`

	// Key is an opaque build key, passed through.
	Key string `json:"key,omitempty"`

	// Host is the public host the site is served from.
	// Example: gyroflowtoolbox.io
	Host string `json:"host,omitempty"`

	// ─────────────────────────────
	// Path strategy
	// ─────────────────────────────

	// Base is the URL prefix every page path is resolved against.
	Base string `json:"base"`

	UseRelativePaths   bool   `json:"useRelativePaths"`
	DocumentName       string `json:"documentName"`
	AppendDocumentName bool   `json:"appendDocumentName"`
	TrailingSlash      bool   `json:"trailingSlash"`

	// Cache busting is produced by the build pipeline; passed through untouched.
	CacheBustingToken    string `json:"cacheBustingToken,omitempty"`
	CacheBustingStrategy string `json:"cacheBustingStrategy,omitempty"`

	// ─────────────────────────────
	// UI text and switches
	// ─────────────────────────────

	SidebarFilterPlaceholder string `json:"sidebarFilterPlaceholder"`
	ToolbarFilterPlaceholder string `json:"toolbarFilterPlaceholder"`

	// FilterNotFoundMsg is shown when a filter yields nothing.
	// "{query}" is replaced with the user's query.
	FilterNotFoundMsg string `json:"filterNotFoundMsg"`

	// ShowSidebarFilter gates whether a sidebar filter session exists at all.
	ShowSidebarFilter bool `json:"showSidebarFilter"`

	// PreloadSearch requests eager index construction.
	PreloadSearch bool `json:"preloadSearch"`

	// MaxHistoryItems bounds every filter session history.
	MaxHistoryItems int `json:"maxHistoryItems"`

	// HomeIcon is opaque SVG markup.
	HomeIcon string `json:"homeIcon,omitempty"`

	// ─────────────────────────────
	// Structures
	// ─────────────────────────────

	Access       []AccessLevel `json:"access"`
	ToolbarLinks []ToolbarLink `json:"toolbarLinks"`
	Sidebar      []SidebarItem `json:"sidebar"`
	Search       SearchConfig  `json:"search"`
}

// Default values applied by the loader when a field is absent.
const (
	DefaultBase              = "/"
	DefaultDocumentName      = "index.html"
	DefaultFilterPlaceholder = "Filter"
	DefaultFilterNotFoundMsg = `No member names found containing the query "{query}"`
	DefaultMaxHistoryItems   = 15
	DefaultShowSidebarFilter = true
	DefaultPreloadSearch     = false

	// QueryPlaceholder is substituted by FormatNotFound.
	QueryPlaceholder = "{query}"
)

// AccessLevel is one declared visibility tier.
type AccessLevel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AccessPublic is the level every viewer holds by default.
const AccessPublic = "public"

// ToolbarLink declares one member-kind bucket of the toolbar.
type ToolbarLink struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	ShortLabel string `json:"shortLabel,omitempty"`
}

// DisplayLabel returns the short label when requested and declared.
func (l ToolbarLink) DisplayLabel(short bool) string {
	if short && l.ShortLabel != "" {
		return l.ShortLabel
	}
	return l.Label
}

// PreloadIndex reports whether the search index should be built eagerly.
// It only affects latency, never results.
func (c *Configuration) PreloadIndex() bool {
	return c.PreloadSearch || c.Search.Preload
}

// AccessLevel looks up a declared level by value.
func (c *Configuration) AccessLevel(value string) (AccessLevel, bool) {
	for _, lvl := range c.Access {
		if lvl.Value == value {
			return lvl, true
		}
	}
	return AccessLevel{}, false
}

// FormatNotFound substitutes query into the not-found template.
// The substitution is textual: a query containing "{query}" is not expanded again.
func (c *Configuration) FormatNotFound(query string) string {
	return FormatNotFound(c.FilterNotFoundMsg, query)
}

// FormatNotFound replaces every "{query}" in template with query in a single pass.
func FormatNotFound(template, query string) string {
	return strings.ReplaceAll(template, QueryPlaceholder, query)
}
