package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
	bulletMarker    = regexp.MustCompile(`(?m)^•[ \t]*`)
	numberedMarker  = regexp.MustCompile(`(?m)^(\d+\.)[ \t]*([^\d\s])`)
	trailingSpace   = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Format normalises reply spacing: one blank line between sections, one
// space after bullet and numbered-list markers, no trailing whitespace.
func Format(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = trailingSpace.ReplaceAllString(text, "")
	text = extraBlankLines.ReplaceAllString(text, "\n\n")
	text = bulletMarker.ReplaceAllString(text, "• ")
	text = numberedMarker.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

// bullets renders each item as a bullet line.
func bullets(items ...string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}

// numbered renders each item as a numbered line starting at 1.
func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}

// joinOr joins items with sep, or returns fallback for an empty list.
func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}

// firstN returns at most n leading items.
func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
