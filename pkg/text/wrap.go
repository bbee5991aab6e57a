package text

import "strings"

// Wrap breaks s into lines no wider than maxWidth at fontSize.
//
// Newlines in s are hard breaks; within a paragraph, runs of whitespace
// collapse to a single space and lines break greedily between words. A word
// that alone exceeds maxWidth is emitted unsplit on its own line.
//
// The result is never empty: empty or whitespace-only input yields a single
// empty line, which the caller renders as its placeholder.
func Wrap(s string, maxWidth, fontSize float64, m Measurer) []string {
	if s == "" {
		return []string{""}
	}

	paragraphs := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		lines = append(lines, wrapParagraph(p, maxWidth, fontSize, m)...)
	}

	// Blank paragraphs at the edges carry no content.
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 1 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}

func wrapParagraph(p string, maxWidth, fontSize float64, m Measurer) []string {
	words := strings.Fields(p)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if m.StringWidth(candidate, fontSize) <= maxWidth {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// Height returns the block height of n lines at lineHeight, never less than
// one line.
func Height(n int, lineHeight float64) float64 {
	return float64(max(n, 1)) * lineHeight
}
