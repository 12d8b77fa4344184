package domain

import (
	"errors"
	"testing"
)

func TestFormatNotFound(t *testing.T) {
	tests := []struct {
		name     string
		template string
		query    string
		want     string
	}{
		{
			name:     "plain query",
			template: `No member names found containing the query "{query}"`,
			query:    "foo",
			want:     `No member names found containing the query "foo"`,
		},
		{
			name:     "query looks like a placeholder",
			template: `nothing for {query}`,
			query:    "{query}",
			want:     `nothing for {query}`,
		},
		{
			name:     "repeated placeholder",
			template: `{query} / {query}`,
			query:    "x",
			want:     `x / x`,
		},
		{
			name:     "template without placeholder",
			template: "no results",
			query:    "x",
			want:     "no results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNotFound(tt.template, tt.query); got != tt.want {
				t.Errorf("FormatNotFound() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrantAllows(t *testing.T) {
	g := DefaultGrant()

	if !g.Allows("") {
		t.Error("untagged entries must always be visible")
	}
	if !g.Allows(AccessPublic) {
		t.Error("default grant should allow public")
	}
	if g.Allows("protected") {
		t.Error("default grant should not allow protected")
	}

	empty := NewGrant()
	if !empty.Allows("") {
		t.Error("empty grant should still allow untagged entries")
	}
	if empty.Allows(AccessPublic) {
		t.Error("empty grant should not allow public")
	}
}

func TestToolbarLinkDisplayLabel(t *testing.T) {
	link := ToolbarLink{ID: "properties", Label: "Properties", ShortLabel: "Props"}
	if got := link.DisplayLabel(true); got != "Props" {
		t.Errorf("DisplayLabel(true) = %q, want Props", got)
	}
	if got := link.DisplayLabel(false); got != "Properties" {
		t.Errorf("DisplayLabel(false) = %q, want Properties", got)
	}

	noShort := ToolbarLink{ID: "fields", Label: "Fields"}
	if got := noShort.DisplayLabel(true); got != "Fields" {
		t.Errorf("DisplayLabel(true) without short label = %q, want Fields", got)
	}
}

func TestPreloadIndex(t *testing.T) {
	cfg := &Configuration{}
	if cfg.PreloadIndex() {
		t.Error("PreloadIndex() should default to false")
	}
	cfg.Search.Preload = true
	if !cfg.PreloadIndex() {
		t.Error("search.preload should enable preloading")
	}
	cfg = &Configuration{PreloadSearch: true}
	if !cfg.PreloadIndex() {
		t.Error("preloadSearch should enable preloading")
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	treeErr := &TreeError{Path: "download", Conflict: "duplicate"}
	err := &ConfigError{Reason: "sidebar", Err: treeErr}

	var target *TreeError
	if !errors.As(err, &target) {
		t.Fatal("ConfigError should unwrap to TreeError")
	}
	if target.Path != "download" {
		t.Errorf("TreeError.Path = %q, want download", target.Path)
	}
}

func TestSearchConfigHelpers(t *testing.T) {
	s := SearchConfig{Hotkeys: []string{"/", "s"}, Languages: []Language{"0", "1"}}

	if !s.IsHotkey("/") || !s.IsHotkey("s") || s.IsHotkey("k") {
		t.Error("IsHotkey() mismatch")
	}
	if !s.HasLanguage("1") || s.HasLanguage("2") {
		t.Error("HasLanguage() mismatch")
	}
	if s.DefaultLanguage() != "0" {
		t.Errorf("DefaultLanguage() = %q, want 0", s.DefaultLanguage())
	}
	if (SearchConfig{}).DefaultLanguage() != "" {
		t.Error("DefaultLanguage() without languages should be empty")
	}
}
