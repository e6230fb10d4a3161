package classifier

import "docext/internal/domain"

// DefaultMinScore is the score a side must clear to win outright.
const DefaultMinScore = 3

// Heuristic is the deterministic keyword/pattern classifier used when no
// remote classifier is configured or the remote call fails. It is a total
// function: any input, including the empty string, yields one of the three
// document types.
type Heuristic struct {
	MinScore int
}

// NewHeuristic creates a Heuristic with the default threshold.
func NewHeuristic() *Heuristic {
	return &Heuristic{MinScore: DefaultMinScore}
}

// Scores returns the raw invoice and receipt scores for the text.
func (h *Heuristic) Scores(text string) (invoice, receipt int) {
	return ScoreRules(InvoiceRules, text), ScoreRules(ReceiptRules, text)
}

// Classify scores both rule tables and picks a winner. A fuzzy "invoice"
// spelling-variant hit overrides the scores entirely. Otherwise the strictly
// higher score wins when it clears MinScore; below the threshold the raw
// scores are compared directly, and a tie is unknown.
func (h *Heuristic) Classify(text string) domain.DocumentType {
	if fuzzyInvoicePattern.MatchString(text) {
		return domain.DocumentTypeInvoice
	}

	inv, rec := h.Scores(text)
	switch {
	case inv > rec && inv >= h.MinScore:
		return domain.DocumentTypeInvoice
	case rec > inv && rec >= h.MinScore:
		return domain.DocumentTypeReceipt
	case inv > rec:
		return domain.DocumentTypeInvoice
	case rec > inv:
		return domain.DocumentTypeReceipt
	default:
		return domain.DocumentTypeUnknown
	}
}
