package docsconfig

// RawConfig is the configuration payload as written by the site generator.
// Optional fields that have non-zero defaults are pointers so an explicit
// zero can be told apart from an absent key.
type RawConfig struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
	Key     string `yaml:"key,omitempty"`
	Host    string `yaml:"host,omitempty"`

	Base               string `yaml:"base,omitempty"`
	UseRelativePaths   bool   `yaml:"useRelativePaths,omitempty"`
	DocumentName       string `yaml:"documentName,omitempty"`
	AppendDocumentName bool   `yaml:"appendDocumentName,omitempty"`
	TrailingSlash      bool   `yaml:"trailingSlash,omitempty"`

	CacheBustingToken    string `yaml:"cacheBustingToken,omitempty"`
	CacheBustingStrategy string `yaml:"cacheBustingStrategy,omitempty"`

	SidebarFilterPlaceholder string `yaml:"sidebarFilterPlaceholder,omitempty"`
	ToolbarFilterPlaceholder string `yaml:"toolbarFilterPlaceholder,omitempty"`
	FilterNotFoundMsg        string `yaml:"filterNotFoundMsg,omitempty"`

	ShowSidebarFilter *bool `yaml:"showSidebarFilter,omitempty"`
	PreloadSearch     bool  `yaml:"preloadSearch,omitempty"`
	MaxHistoryItems   *int  `yaml:"maxHistoryItems,omitempty"`

	HomeIcon string `yaml:"homeIcon,omitempty"`

	Access       []RawAccessLevel `yaml:"access,omitempty"`
	ToolbarLinks []RawToolbarLink `yaml:"toolbarLinks,omitempty"`
	Sidebar      []RawSidebarItem `yaml:"sidebar,omitempty"`
	Search       *RawSearch       `yaml:"search,omitempty"`
}

type RawAccessLevel struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type RawToolbarLink struct {
	ID         string `yaml:"id"`
	Label      string `yaml:"label"`
	ShortLabel string `yaml:"shortLabel,omitempty"`
}

// RawSidebarItem uses the generator's one-letter keys.
type RawSidebarItem struct {
	N string           `yaml:"n"`
	L string           `yaml:"l"`
	S string           `yaml:"s,omitempty"`
	A string           `yaml:"a,omitempty"`
	C []RawSidebarItem `yaml:"c,omitempty"`
}

type RawSearch struct {
	Mode              int      `yaml:"mode"`
	MinChars          *int     `yaml:"minChars,omitempty"`
	MaxResults        *int     `yaml:"maxResults,omitempty"`
	Placeholder       string   `yaml:"placeholder,omitempty"`
	NoResultsFoundMsg string   `yaml:"noResultsFoundMsg,omitempty"`
	Hotkeys           []string `yaml:"hotkeys,omitempty"`

	RecognizeLanguages bool `yaml:"recognizeLanguages,omitempty"`
	// Languages may be numeric ids or names.
	Languages []any `yaml:"languages,omitempty"`

	Preload bool `yaml:"preload,omitempty"`
}
