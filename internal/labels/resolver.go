// Package labels aligns sub-word model predictions back onto whole words.
package labels

import (
	"strings"

	"docext/internal/domain"
)

// OutsideLabel marks a word that belongs to no field.
const OutsideLabel = "O"

// spanPrefixes are the tag-scheme span-position markers stripped from raw
// labels before use.
var spanPrefixes = []string{"B-", "I-", "E-", "S-"}

// Resolve computes one label per word from sub-word token predictions.
//
// Sub-word tokens are visited in order; the first token seen for a word index
// decides that word's label (first token wins), later tokens for the same
// word are ignored. Predictions with a negative word index are padding or
// special tokens and are skipped. The result is truncated to wordCount when
// alignment produced more labels than words; producing fewer is an accepted
// lossy outcome and callers must treat the tail as unlabeled.
func Resolve(preds []domain.TokenPrediction, wordCount int) []string {
	resolved := make([]string, 0, wordCount)
	seen := make(map[int]struct{}, wordCount)
	for _, p := range preds {
		if p.WordIndex < 0 {
			continue
		}
		if _, ok := seen[p.WordIndex]; ok {
			continue
		}
		seen[p.WordIndex] = struct{}{}
		resolved = append(resolved, Normalize(p.Label))
	}
	if len(resolved) > wordCount {
		resolved = resolved[:wordCount]
	}
	return resolved
}

// Normalize strips a leading span-position prefix and upper-cases the bare
// label name.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	lab := strings.ToUpper(raw)
	for _, prefix := range spanPrefixes {
		if strings.HasPrefix(lab, prefix) {
			lab = lab[len(prefix):]
			break
		}
	}
	return lab
}
