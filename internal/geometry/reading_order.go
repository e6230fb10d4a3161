package geometry

import (
	"sort"
	"strings"

	"docext/internal/domain"
)

// DefaultLineTolerance is the vertical banding tolerance as a fraction of
// the image height.
const DefaultLineTolerance = 0.015

// ReadingOrder clusters word tokens into lines and orders them the way a
// human reads: lines top-to-bottom, words within a line left-to-right.
//
// Tokens are assigned greedily in discovery order: a token joins the first
// open line whose key is within tolerance*height of its vertical center
// (first-fit, not best-fit), otherwise it opens a new line keyed at its
// center. Lines live in a slice, so iteration order is insertion order and
// the result is fully deterministic for a fixed input.
func ReadingOrder(tokens []domain.WordToken, height, tolerance float64) []domain.Line {
	if tolerance <= 0 {
		tolerance = DefaultLineTolerance
	}
	band := tolerance * height

	var lines []domain.Line
	for _, tok := range tokens {
		yc := tok.Box.CenterY()
		placed := false
		for i := range lines {
			if abs(lines[i].Key-yc) <= band {
				lines[i].Words = append(lines[i].Words, tok)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, domain.Line{Key: yc, Words: []domain.WordToken{tok}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })
	for i := range lines {
		words := lines[i].Words
		sort.SliceStable(words, func(a, b int) bool { return words[a].Box.X1 < words[b].Box.X1 })
	}
	return lines
}

// Flatten returns the word tokens of ordered lines as one sequence in
// reading order.
func Flatten(lines []domain.Line) []domain.WordToken {
	var out []domain.WordToken
	for _, ln := range lines {
		out = append(out, ln.Words...)
	}
	return out
}

// Text renders ordered lines as plain text: words joined by single spaces,
// lines by newlines. This is the text the document-type classifier consumes.
func Text(lines []domain.Line) string {
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, w := range ln.Words {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
		}
	}
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
