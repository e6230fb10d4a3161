// Package classifier decides whether document text is a receipt, an invoice,
// or unknown, combining an optional remote model with a deterministic
// weighted-rule heuristic.
package classifier

import (
	"regexp"
	"strings"
)

// Rule is one weighted scoring signal. A plain rule contributes Weight once
// when its pattern matches anywhere in the text; PerMatch rules contribute
// Weight per match and PerLine rules Weight per line containing a match.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Weight   int
	PerMatch bool
	PerLine  bool
}

// Score evaluates the rule against the text and its non-empty lines.
func (r Rule) Score(text string, lines []string) int {
	switch {
	case r.PerMatch:
		return r.Weight * len(r.Pattern.FindAllStringIndex(text, -1))
	case r.PerLine:
		n := 0
		for _, l := range lines {
			if r.Pattern.MatchString(l) {
				n++
			}
		}
		return r.Weight * n
	case r.Pattern.MatchString(text):
		return r.Weight
	default:
		return 0
	}
}

// ScoreRules sums a rule table over the text.
func ScoreRules(rules []Rule, text string) int {
	lines := nonEmptyLines(text)
	total := 0
	for _, r := range rules {
		total += r.Score(text, lines)
	}
	return total
}

func keyword(name string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name)),
		Weight:  1,
	}
}

// fuzzyInvoicePattern matches "invoice" through common OCR confusions
// (0 for o, 1/l for i). A hit is an absolute override to invoice.
var fuzzyInvoicePattern = regexp.MustCompile(`(?i)\b[i1l]nv[o0][i1l]ce\b`)

// InvoiceRules score invoice-indicating signals.
var InvoiceRules = []Rule{
	keyword("invoice"),
	keyword("bill to"),
	keyword("invoice number"),
	keyword("amount due"),
	keyword("due date"),
	keyword("tax rate"),
	keyword("payment terms"),
	keyword("due upon receipt"),
	{
		Name:    "invoice number pattern",
		Pattern: regexp.MustCompile(`(?i)\binv(?:oice)?\s*(?:#|no\.?|number)?\s*[:#]?\s*\d+`),
		Weight:  2,
	},
	{
		Name:    "payment terms pattern",
		Pattern: regexp.MustCompile(`(?i)\b(?:net\s*\d{1,3}|due\s+upon\s+receipt)\b`),
		Weight:  2,
	},
}

// ReceiptRules score receipt-indicating signals.
var ReceiptRules = []Rule{
	keyword("subtotal"),
	keyword("receipt"),
	keyword("order id"),
	keyword("total"),
	keyword("cash"),
	keyword("card"),
	keyword("tax"),
	keyword("thank you"),
	keyword("qty"),
	{
		Name:     "price tokens",
		Pattern:  regexp.MustCompile(`\$?\d+[.,]\d{2}\b`),
		Weight:   2,
		PerMatch: true,
	},
	{
		Name:    "price lines",
		Pattern: regexp.MustCompile(`\$?\d+[.,]\d{2}\b`),
		Weight:  2,
		PerLine: true,
	},
	{
		Name:    "phone number",
		Pattern: regexp.MustCompile(`\b\d{3}[-\s]?\d{3}[-\s]?\d{4}\b`),
		Weight:  1,
	},
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
