package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Scoring weights
	ScorePrefixMatch     = 75.0
	ScoreWordPrefixMatch = 60.0
	ScoreSubstringMatch  = 50.0
)

// MatchKind says where in a label the query was found.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchPrefix
	MatchWordPrefix
	MatchSubstring
)

func (k MatchKind) String() string {
	switch k {
	case MatchPrefix:
		return "prefix"
	case MatchWordPrefix:
		return "word-prefix"
	case MatchSubstring:
		return "substring"
	default:
		return "none"
	}
}

// ScoreLabel scores an already case-folded label against an already case-folded query.
//
// In substring mode there are exactly two tiers: label prefix above any interior
// occurrence. In prefix mode interior matches only count at a word boundary.
// Callers break ties by declaration order.
func ScoreLabel(query, label string, mode SearchMode) (float64, MatchKind) {
	if query == "" || label == "" {
		return 0.0, MatchNone
	}

	if strings.HasPrefix(label, query) {
		return ScorePrefixMatch, MatchPrefix
	}

	switch mode {
	case SearchModePrefix:
		if hasWordPrefix(label, query) {
			return ScoreWordPrefixMatch, MatchWordPrefix
		}
	default:
		if strings.Contains(label, query) {
			return ScoreSubstringMatch, MatchSubstring
		}
	}

	return 0.0, MatchNone
}

// hasWordPrefix reports whether query occurs in label right after a non letter/digit rune.
func hasWordPrefix(label, query string) bool {
	offset := 0
	for {
		i := strings.Index(label[offset:], query)
		if i < 0 {
			return false
		}
		at := offset + i
		if at > 0 {
			prev, _ := utf8.DecodeLastRuneInString(label[:at])
			if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
				return true
			}
		}
		_, size := utf8.DecodeRuneInString(label[at:])
		offset = at + size
	}
}

// Fold normalizes text for case-insensitive matching.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
