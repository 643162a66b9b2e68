package textutil

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefixes lists the honorific and role markers removed from names.
// Whitespace is removed before prefixes are matched, so "ชื่อ :" and "name :"
// are covered by their compact forms.
var DefaultPrefixes = []string{
	"เด็กชาย",
	"เด็กหญิง",
	"ด.ช.",
	"ด.ญ.",
	"นางสาว",
	"นาย",
	"ชื่อ-สกุล:",
	"ชื่อ-นามสกุล:",
	"นามสกุล:",
	"ชื่อ:",
	"สกุล:",
	"name:",
	"surname:",
	"ชื่อ：",
	"name：",
}

// DefaultStripChars are removed after prefixes.
const DefaultStripChars = ".-_()"

// Normalizer canonicalizes text into matching keys. It is safe for
// concurrent use.
type Normalizer struct {
	prefixes []string
	strip    string
}

// NewNormalizer builds a normalizer with the given prefix removal list and
// punctuation set. Empty arguments fall back to the defaults.
func NewNormalizer(prefixes []string, stripChars string) *Normalizer {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	if stripChars == "" {
		stripChars = DefaultStripChars
	}
	fold := cases.Fold()
	cleaned := make([]string, 0, len(prefixes))
	seen := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		p = compact(norm.NFC.String(fold.String(p)))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		cleaned = append(cleaned, p)
	}
	// Longest first so "นางสาว" is removed before any shorter marker it contains.
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})
	return &Normalizer{prefixes: cleaned, strip: stripChars}
}

var defaultNormalizer = NewNormalizer(nil, "")

// Normalize canonicalizes text with the default prefix list.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize returns the matching key for text. Missing values yield "".
// The result is a fixpoint: Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(text string) string {
	if IsMissing(text) {
		return ""
	}
	// A Caser carries state and must not be shared between goroutines.
	fold := cases.Fold()
	// After the first pass folding is stable and each pass only removes
	// runes, so the loop terminates.
	current := n.pass(fold, text)
	for {
		next := n.pass(fold, current)
		if next == current {
			break
		}
		current = next
	}
	if IsMissing(current) {
		return ""
	}
	return current
}

func (n *Normalizer) pass(fold cases.Caser, text string) string {
	out := compact(text)
	out = fold.String(out)
	out = norm.NFC.String(out)
	for _, prefix := range n.prefixes {
		out = strings.ReplaceAll(out, prefix, "")
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(n.strip, r) {
			return -1
		}
		return r
	}, out)
}

// IsMissing reports whether a cell value stands for "no value". Spreadsheet
// exports commonly carry NaN markers for blank cells.
func IsMissing(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	switch strings.ToLower(trimmed) {
	case "nan", "#n/a", "null", "none":
		return true
	}
	return false
}

// Digits returns only the decimal digits of value, in order. Thai digits are
// mapped to their ASCII equivalents.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '๐' && r <= '๙':
			b.WriteRune('0' + (r - '๐'))
		}
	}
	return b.String()
}

func compact(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}
