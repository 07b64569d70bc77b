// Package skills holds the fixed vocabulary of skill keywords recognized in
// listing titles and descriptions.
package skills

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MatchMode selects how a keyword must appear in text to count as a match.
type MatchMode string

const (
	// MatchSubstring accepts any occurrence, so "r" matches inside "car".
	MatchSubstring MatchMode = "substring"
	// MatchWord requires the keyword to be bounded by non-alphanumeric runes.
	MatchWord MatchMode = "word"
)

var defaultKeywords = []string{
	"python", "java", "sql", "javascript", "c++", "c#", "r", "ruby", "php", "swift",
	"machine learning", "ai", "artificial intelligence", "deep learning",
	"data analysis", "data science", "big data", "hadoop", "spark",
	"tableau", "power bi", "excel", "aws", "azure", "google cloud", "docker", "kubernetes",
	"linux", "git", "agile", "scrum", "devops", "ci/cd", "rest api", "graphql",
	"tensorflow", "pytorch", "keras", "numpy", "pandas", "django", "flask", "react",
	"angular", "vue", "node.js", "typescript", "html", "css", "sass", "nosql",
	"mongodb", "postgresql", "mysql", "oracle", "redis", "elasticsearch",
}

// Lexicon is an immutable set of lowercase skill keywords.
type Lexicon struct {
	keywords []string
	mode     MatchMode
}

// Default returns the built-in lexicon with substring matching.
func Default() *Lexicon {
	l, _ := New(defaultKeywords, MatchSubstring)
	return l
}

// New builds a lexicon from keywords. Entries are lowercased and trimmed;
// blanks and duplicates are dropped and the first-seen order is kept.
// An empty keyword list falls back to the built-in vocabulary.
func New(keywords []string, mode MatchMode) (*Lexicon, error) {
	if mode == "" {
		mode = MatchSubstring
	}
	if mode != MatchSubstring && mode != MatchWord {
		return nil, fmt.Errorf("unknown skill match mode %q", mode)
	}
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	seen := make(map[string]struct{}, len(keywords))
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		kws = append(kws, kw)
	}
	return &Lexicon{keywords: kws, mode: mode}, nil
}

// Keywords returns a copy of the vocabulary in lexicon order.
func (l *Lexicon) Keywords() []string {
	out := make([]string, len(l.keywords))
	copy(out, l.keywords)
	return out
}

// Mode reports the lexicon's match mode.
func (l *Lexicon) Mode() MatchMode {
	return l.mode
}

// Matches returns every keyword found in text, in lexicon order. Substring
// mode compares the lowercased text as is; word mode applies NFKC first.
// The result is never nil.
func (l *Lexicon) Matches(text string) []string {
	out := []string{}
	if text == "" {
		return out
	}
	if l.mode == MatchWord {
		// Fold compatibility forms ("ﬂask", fullwidth letters) so word
		// boundaries are judged on plain runes.
		text = norm.NFKC.String(text)
	}
	lower := strings.ToLower(text)
	for _, kw := range l.keywords {
		if l.contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func (l *Lexicon) contains(text, kw string) bool {
	if l.mode == MatchSubstring {
		return strings.Contains(text, kw)
	}
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
