// Package institution reduces free-text institution names of type
// specimens to short codes.
package institution

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// "BMNH - The Natural History Museum, London"
	dashCodeRe = regexp.MustCompile(`^([A-Z][A-Z0-9\-]{1,15})\s+-\s+`)

	// "BMNH The Natural History Museum, London"
	leadCodeRe = regexp.MustCompile(`^([A-Z]{2,10})\s+[A-Z]`)

	// "Smithsonian Institution (USNM)", also mixed case codes as "IAvH".
	tailCodeRe = regexp.MustCompile(`\((\p{Lu}[\p{L}0-9\-]{1,15})\)\s*$`)
)

// Acronym extracts a code from an institution string. The first matching
// pattern wins; without a match the string is returned with surrounding
// quotes and whitespace removed.
func Acronym(raw string) string {
	s := strings.Trim(norm.NFC.String(raw), "\" \t")

	if m := dashCodeRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := leadCodeRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := tailCodeRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// Group is a set of raw institution strings that share an acronym.
type Group struct {
	Acronym string

	// Count is the number of rows that reduced to the Acronym.
	Count int

	// Variants are distinct raw strings in order of appearance.
	Variants []string
}

// Groups accumulates raw institution strings by acronym.
type Groups struct {
	idx    map[string]int
	groups []Group
}

// NewGroups creates an empty accumulator.
func NewGroups() *Groups {
	return &Groups{idx: make(map[string]int)}
}

// Add counts one occurrence of a raw institution string.
func (g *Groups) Add(raw string) {
	acr := Acronym(raw)
	i, ok := g.idx[acr]
	if !ok {
		i = len(g.groups)
		g.idx[acr] = i
		g.groups = append(g.groups, Group{Acronym: acr})
	}
	grp := &g.groups[i]
	grp.Count++
	if !slices.Contains(grp.Variants, raw) {
		grp.Variants = append(grp.Variants, raw)
	}
}

// Len returns the number of distinct acronyms.
func (g *Groups) Len() int {
	return len(g.groups)
}

// Sorted returns groups by count descending, ties by acronym.
func (g *Groups) Sorted() []Group {
	res := slices.Clone(g.groups)
	slices.SortStableFunc(res, func(a, b Group) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Acronym, b.Acronym)
	})
	return res
}
