package fields

import (
	"strings"

	"docext/internal/domain"
	"docext/internal/labels"
)

// FieldGroup is the ordered word texts carrying one raw label.
type FieldGroup struct {
	Label string
	Words []string
}

// RawFieldGroups groups words by raw label in first-seen label order; word
// order within a group is reading order.
type RawFieldGroups []FieldGroup

// Get returns the group's words joined by single spaces.
func (g RawFieldGroups) Get(label string) (string, bool) {
	for _, grp := range g {
		if grp.Label == label {
			return strings.Join(grp.Words, " "), true
		}
	}
	return "", false
}

// Aggregate groups reading-ordered word tokens by their resolved labels.
// Unlabeled words (outside the resolved label window) and "O" words are
// skipped. wordLabels may be shorter than tokens after alignment truncation.
func Aggregate(tokens []domain.WordToken, wordLabels []string) RawFieldGroups {
	var groups RawFieldGroups
	index := map[string]int{}
	n := len(wordLabels)
	if len(tokens) < n {
		n = len(tokens)
	}
	for i := 0; i < n; i++ {
		lab := wordLabels[i]
		if lab == "" || lab == labels.OutsideLabel {
			continue
		}
		at, ok := index[lab]
		if !ok {
			at = len(groups)
			index[lab] = at
			groups = append(groups, FieldGroup{Label: lab})
		}
		groups[at].Words = append(groups[at].Words, tokens[i].Text)
	}
	return groups
}
