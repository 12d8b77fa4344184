package domain

// SearchMode selects how labels are matched against a query.
type SearchMode int

const (
	// SearchModeSubstring matches any label containing the query.
	SearchModeSubstring SearchMode = 0
	// SearchModePrefix matches labels where the label, or one of its words, starts with the query.
	SearchModePrefix SearchMode = 1
)

// Valid reports whether m is a known mode.
func (m SearchMode) Valid() bool {
	return m == SearchModeSubstring || m == SearchModePrefix
}

func (m SearchMode) String() string {
	switch m {
	case SearchModeSubstring:
		return "substring"
	case SearchModePrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Language tags an indexed item when language recognition is enabled.
// Configurations may declare languages as numbers; they are normalized to strings.
type Language string

// SearchConfig holds the search behavior parameters.
type SearchConfig struct {
	Mode SearchMode `json:"mode"`

	// MinChars is the shortest query (in runes) that reaches the index. Always >= 1.
	MinChars int `json:"minChars"`

	// MaxResults caps every result list. 0 means no results are ever returned.
	MaxResults int `json:"maxResults"`

	Placeholder       string   `json:"placeholder"`
	NoResultsFoundMsg string   `json:"noResultsFoundMsg"`
	Hotkeys           []string `json:"hotkeys"`

	RecognizeLanguages bool       `json:"recognizeLanguages"`
	Languages          []Language `json:"languages"`

	// Preload only moves index construction to load time.
	Preload bool `json:"preload"`
}

// Search defaults.
const (
	DefaultSearchMinChars    = 1
	DefaultSearchMaxResults  = 20
	DefaultSearchPlaceholder = "Search"
	DefaultNoResultsFoundMsg = "Sorry, no results found."
	DefaultSearchHotkey      = "/"
)

// IsHotkey reports whether key focuses the search input.
func (s SearchConfig) IsHotkey(key string) bool {
	for _, h := range s.Hotkeys {
		if h == key {
			return true
		}
	}
	return false
}

// HasLanguage reports whether lang is one of the configured languages.
func (s SearchConfig) HasLanguage(lang Language) bool {
	for _, l := range s.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// DefaultLanguage is the first configured language, or "" when none.
func (s SearchConfig) DefaultLanguage() Language {
	if len(s.Languages) == 0 {
		return ""
	}
	return s.Languages[0]
}
