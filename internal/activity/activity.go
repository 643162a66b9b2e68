// Package activity describes the fixed range of activity identifiers a
// completion matrix covers.
package activity

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is the ordered set of activity ids "<Prefix>.<n>" for n in First..Last.
type Range struct {
	Prefix string
	First  int
	Last   int
}

// Default returns the "1.1" .. "1.14" range.
func Default() Range {
	return Range{Prefix: "1", First: 1, Last: 14}
}

// ID formats the activity id for n.
func (r Range) ID(n int) string {
	return r.Prefix + "." + strconv.Itoa(n)
}

// IDs returns every activity id in ascending numeric order.
func (r Range) IDs() []string {
	if r.Last < r.First {
		return nil
	}
	ids := make([]string, 0, r.Last-r.First+1)
	for n := r.First; n <= r.Last; n++ {
		ids = append(ids, r.ID(n))
	}
	return ids
}

// Len returns the number of activities in the range.
func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether id belongs to the range.
func (r Range) Contains(id string) bool {
	n, ok := r.Number(id)
	return ok && n >= r.First && n <= r.Last
}

// Number parses the numeric suffix of id when the prefix matches.
func (r Range) Number(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, r.Prefix+".")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.ID(r.First), r.ID(r.Last))
}
