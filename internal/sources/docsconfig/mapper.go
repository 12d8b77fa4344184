package docsconfig

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/navtree"
)

// Mapper validates a raw payload and converts it to a domain.Configuration
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map validates raw, applies defaults and builds the navigation tree.
// Every failure is a *domain.ConfigError; sidebar conflicts wrap the
// underlying *domain.TreeError.
func (m *Mapper) Map(raw *RawConfig) (*domain.Configuration, []*domain.NavEntry, error) {
	if raw == nil {
		return nil, nil, domain.NewConfigError("empty payload")
	}
	if strings.TrimSpace(raw.ID) == "" {
		return nil, nil, domain.NewConfigError("missing required field %q", "id")
	}
	if strings.TrimSpace(raw.Version) == "" {
		return nil, nil, domain.NewConfigError("missing required field %q", "version")
	}

	cfg := &domain.Configuration{
		ID:                       raw.ID,
		Version:                  raw.Version,
		Key:                      raw.Key,
		Host:                     raw.Host,
		Base:                     orDefault(raw.Base, domain.DefaultBase),
		UseRelativePaths:         raw.UseRelativePaths,
		DocumentName:             orDefault(raw.DocumentName, domain.DefaultDocumentName),
		AppendDocumentName:       raw.AppendDocumentName,
		TrailingSlash:            raw.TrailingSlash,
		CacheBustingToken:        raw.CacheBustingToken,
		CacheBustingStrategy:     raw.CacheBustingStrategy,
		SidebarFilterPlaceholder: orDefault(raw.SidebarFilterPlaceholder, domain.DefaultFilterPlaceholder),
		ToolbarFilterPlaceholder: orDefault(raw.ToolbarFilterPlaceholder, domain.DefaultFilterPlaceholder),
		FilterNotFoundMsg:        orDefault(raw.FilterNotFoundMsg, domain.DefaultFilterNotFoundMsg),
		ShowSidebarFilter:        domain.DefaultShowSidebarFilter,
		PreloadSearch:            raw.PreloadSearch,
		MaxHistoryItems:          domain.DefaultMaxHistoryItems,
		HomeIcon:                 raw.HomeIcon,
	}
	if raw.ShowSidebarFilter != nil {
		cfg.ShowSidebarFilter = *raw.ShowSidebarFilter
	}
	if raw.MaxHistoryItems != nil {
		if *raw.MaxHistoryItems < 0 {
			return nil, nil, domain.NewConfigError("maxHistoryItems must be >= 0, got %d", *raw.MaxHistoryItems)
		}
		cfg.MaxHistoryItems = *raw.MaxHistoryItems
	}

	access, err := mapAccess(raw.Access)
	if err != nil {
		return nil, nil, err
	}
	cfg.Access = access

	links, err := mapToolbarLinks(raw.ToolbarLinks)
	if err != nil {
		return nil, nil, err
	}
	cfg.ToolbarLinks = links

	search, err := mapSearch(raw.Search)
	if err != nil {
		return nil, nil, err
	}
	cfg.Search = search

	items, err := mapSidebar(raw.Sidebar, cfg)
	if err != nil {
		return nil, nil, err
	}
	cfg.Sidebar = items

	tree, err := navtree.Build(items)
	if err != nil {
		var treeErr *domain.TreeError
		if errors.As(err, &treeErr) {
			return nil, nil, &domain.ConfigError{Reason: "sidebar is not a well-formed tree", Err: treeErr}
		}
		return nil, nil, fmt.Errorf("build sidebar: %w", err)
	}

	return cfg, tree, nil
}

func mapAccess(raw []RawAccessLevel) ([]domain.AccessLevel, error) {
	levels := make([]domain.AccessLevel, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, lvl := range raw {
		if strings.TrimSpace(lvl.Value) == "" {
			return nil, domain.NewConfigError("access level %d has no value", i)
		}
		if _, dup := seen[lvl.Value]; dup {
			return nil, domain.NewConfigError("access level %q declared twice", lvl.Value)
		}
		seen[lvl.Value] = struct{}{}
		levels = append(levels, domain.AccessLevel{Value: lvl.Value, Label: orDefault(lvl.Label, lvl.Value)})
	}
	return levels, nil
}

func mapToolbarLinks(raw []RawToolbarLink) ([]domain.ToolbarLink, error) {
	links := make([]domain.ToolbarLink, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, l := range raw {
		if strings.TrimSpace(l.ID) == "" {
			return nil, domain.NewConfigError("toolbar link %d has no id", i)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, domain.NewConfigError("toolbar link %q declared twice", l.ID)
		}
		seen[l.ID] = struct{}{}
		links = append(links, domain.ToolbarLink{
			ID:         l.ID,
			Label:      orDefault(l.Label, l.ID),
			ShortLabel: l.ShortLabel,
		})
	}
	return links, nil
}

func mapSearch(raw *RawSearch) (domain.SearchConfig, error) {
	cfg := domain.SearchConfig{
		Mode:              domain.SearchModeSubstring,
		MinChars:          domain.DefaultSearchMinChars,
		MaxResults:        domain.DefaultSearchMaxResults,
		Placeholder:       domain.DefaultSearchPlaceholder,
		NoResultsFoundMsg: domain.DefaultNoResultsFoundMsg,
		Hotkeys:           []string{domain.DefaultSearchHotkey},
	}
	if raw == nil {
		return cfg, nil
	}

	cfg.Mode = domain.SearchMode(raw.Mode)
	if !cfg.Mode.Valid() {
		return cfg, domain.NewConfigError("unknown search mode %d", raw.Mode)
	}
	if raw.MinChars != nil {
		if *raw.MinChars < 1 {
			return cfg, domain.NewConfigError("search.minChars must be >= 1, got %d", *raw.MinChars)
		}
		cfg.MinChars = *raw.MinChars
	}
	if raw.MaxResults != nil {
		if *raw.MaxResults < 0 {
			return cfg, domain.NewConfigError("search.maxResults must be >= 0, got %d", *raw.MaxResults)
		}
		cfg.MaxResults = *raw.MaxResults
	}
	cfg.Placeholder = orDefault(raw.Placeholder, cfg.Placeholder)
	cfg.NoResultsFoundMsg = orDefault(raw.NoResultsFoundMsg, cfg.NoResultsFoundMsg)
	if raw.Hotkeys != nil {
		cfg.Hotkeys = raw.Hotkeys
	}

	cfg.RecognizeLanguages = raw.RecognizeLanguages
	cfg.Preload = raw.Preload
	for _, v := range raw.Languages {
		lang, err := languageOf(v)
		if err != nil {
			return cfg, err
		}
		if !cfg.HasLanguage(lang) {
			cfg.Languages = append(cfg.Languages, lang)
		}
	}
	if cfg.RecognizeLanguages && len(cfg.Languages) == 0 {
		return cfg, domain.NewConfigError("search.recognizeLanguages is set but no languages are declared")
	}

	return cfg, nil
}

// languageOf normalizes a numeric or textual language entry.
func languageOf(v any) (domain.Language, error) {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", domain.NewConfigError("search.languages contains a blank entry")
		}
		return domain.Language(t), nil
	case int:
		return domain.Language(strconv.Itoa(t)), nil
	case float64:
		if t != math.Trunc(t) {
			return "", domain.NewConfigError("search.languages entry %v is not an integer", t)
		}
		return domain.Language(strconv.FormatInt(int64(t), 10)), nil
	default:
		return "", domain.NewConfigError("search.languages entry %v has unsupported type %T", v, v)
	}
}

func mapSidebar(raw []RawSidebarItem, cfg *domain.Configuration) ([]domain.SidebarItem, error) {
	items := make([]domain.SidebarItem, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.N) == "" {
			return nil, domain.NewConfigError("sidebar entry %q has no path", r.L)
		}
		if strings.TrimSpace(r.L) == "" {
			return nil, domain.NewConfigError("sidebar entry %q has no label", r.N)
		}
		if r.A != "" {
			if len(cfg.Access) == 0 {
				return nil, domain.NewConfigError("sidebar entry %q is tagged %q but no access levels are declared", r.N, r.A)
			}
			if _, ok := cfg.AccessLevel(r.A); !ok {
				return nil, domain.NewConfigError("sidebar entry %q uses undeclared access level %q", r.N, r.A)
			}
		}

		children, err := mapSidebar(r.C, cfg)
		if err != nil {
			return nil, err
		}
		item := domain.SidebarItem{Path: r.N, Label: r.L, Icon: r.S, Access: r.A}
		if len(children) > 0 {
			item.Children = children
		}
		items = append(items, item)
	}
	return items, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
