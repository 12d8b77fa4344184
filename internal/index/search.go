package index

import (
	"slices"
	"sort"
	"sync/atomic"
	"unicode/utf8"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Match is one query hit.
type Match struct {
	Document
	Score     float64          `json:"score"`
	MatchKind domain.MatchKind `json:"-"`
	// Order is the document's declaration position, used as tie-break.
	Order int `json:"order"`
}

// Scope narrows a query. The zero Scope searches everything.
type Scope struct {
	// Language restricts results to one language. Ignored unless the
	// configuration recognizes languages.
	Language domain.Language

	// Grant hides documents whose own or inherited access tag is not granted.
	// nil disables access filtering.
	Grant domain.Grant

	// MembersOnly skips page documents (toolbar filtering).
	MembersOnly bool

	// Kinds keeps only documents of these kinds. Empty keeps every kind.
	Kinds []string
}

type entry struct {
	doc    Document
	folded string
	order  int
}

// Index is an immutable in-memory label index.
//
// It is safe for concurrent queries. A configuration reload builds a new Index
// instead of touching this one, so in-flight queries never observe a rebuild.
type Index struct {
	cfg     domain.SearchConfig
	entries []entry
	lookups atomic.Int64
}

// Build indexes docs under cfg. When cfg recognizes languages, documents
// without a configured language are tagged with the first configured one.
func Build(docs []Document, cfg domain.SearchConfig) *Index {
	idx := &Index{
		cfg:     cfg,
		entries: make([]entry, 0, len(docs)),
	}
	for i, d := range docs {
		if cfg.RecognizeLanguages && !cfg.HasLanguage(d.Language) {
			d.Language = cfg.DefaultLanguage()
		}
		idx.entries = append(idx.entries, entry{
			doc:    d,
			folded: domain.Fold(d.Label),
			order:  i,
		})
	}
	return idx
}

// Query searches all languages without access filtering.
func (idx *Index) Query(text string) []Match {
	return idx.QueryScoped(text, Scope{})
}

// QueryScoped returns at most MaxResults matches: label-prefix matches first,
// then interior matches, each tier in declaration order.
//
// Queries shorter than MinChars, and any query when MaxResults is 0, return an
// empty result without scanning the index.
func (idx *Index) QueryScoped(text string, scope Scope) []Match {
	if !idx.Accepts(text) {
		return []Match{}
	}
	q := domain.Fold(text)

	idx.lookups.Add(1)

	var lang domain.Language
	if idx.cfg.RecognizeLanguages {
		lang = scope.Language
	}

	matches := make([]Match, 0)
	for _, e := range idx.entries {
		if lang != "" && e.doc.Language != lang {
			continue
		}
		if scope.MembersOnly && e.doc.Kind == KindPage {
			continue
		}
		if len(scope.Kinds) > 0 && !slices.Contains(scope.Kinds, e.doc.Kind) {
			continue
		}
		if scope.Grant != nil && !allowsAll(scope.Grant, e.doc.Access) {
			continue
		}
		score, kind := domain.ScoreLabel(q, e.folded, idx.cfg.Mode)
		if kind == domain.MatchNone {
			continue
		}
		matches = append(matches, Match{
			Document:  e.doc,
			Score:     score,
			MatchKind: kind,
			Order:     e.order,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > idx.cfg.MaxResults {
		matches = matches[:idx.cfg.MaxResults]
	}
	return matches
}

// Accepts reports whether text would be evaluated at all: it must reach
// MinChars runes once trimmed, and MaxResults must be positive.
func (idx *Index) Accepts(text string) bool {
	return utf8.RuneCountInString(domain.Fold(text)) >= idx.minChars() && idx.cfg.MaxResults > 0
}

// Len is the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Lookups counts queries that actually scanned the index.
func (idx *Index) Lookups() int64 {
	return idx.lookups.Load()
}

func (idx *Index) minChars() int {
	if idx.cfg.MinChars < 1 {
		return 1
	}
	return idx.cfg.MinChars
}

func allowsAll(g domain.Grant, tags []string) bool {
	for _, tag := range tags {
		if !g.Allows(tag) {
			return false
		}
	}
	return true
}
