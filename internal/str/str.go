package str

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ShortTitle truncates a string to width runes if necessary, marking the
// cut with "...".
func ShortTitle(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// Pad left-aligns a string in a column of width runes. Longer strings are
// kept whole and followed by one space.
func Pad(s string, width int) string {
	n := width - utf8.RuneCountInString(s)
	if n < 1 {
		n = 1
	}
	return s + strings.Repeat(" ", n)
}

// Line returns a horizontal rule.
func Line(width int) string {
	return strings.Repeat("-", width)
}

// Pct formats a percentage with one decimal.
func Pct(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
