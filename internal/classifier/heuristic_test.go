package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docext/internal/classifier"
	"docext/internal/domain"
)

func TestHeuristic_ReceiptScenario(t *testing.T) {
	text := "SuperMart\n1x Apple $1.00\nSubtotal $1.00\nTax $0.05\nTotal $1.05\n2025-01-10"

	h := classifier.NewHeuristic()
	assert.Equal(t, domain.DocumentTypeReceipt, h.Classify(text))

	inv, rec := h.Scores(text)
	assert.GreaterOrEqual(t, rec, classifier.DefaultMinScore)
	assert.Greater(t, rec, inv)
}

func TestHeuristic_FuzzyInvoiceOverride(t *testing.T) {
	h := classifier.NewHeuristic()

	// even a text whose receipt score would dominate is an invoice when the
	// word invoice (or an OCR-mangled spelling of it) appears
	cases := []string{
		"INVOICE\nInvoice #1234\nBill To: Acme Co.\nAmount Due: $350.00",
		"INV0ICE\nTotal 547.31\nSubtotal 575.00\nTax $22.31\nCash $600.00",
		"1nvoice\nsome noise",
		"lnvoice due upon receipt",
	}
	for _, text := range cases {
		assert.Equal(t, domain.DocumentTypeInvoice, h.Classify(text), "text: %s", text)
	}
}

func TestHeuristic_InvoiceByScore(t *testing.T) {
	// no literal "invoice" spelling: scores must decide
	text := "BILL TO: John Doe\nPAYMENT TERMS: NET 30\nTAX RATE: 5%\nAMOUNT DUE 350"

	h := classifier.NewHeuristic()
	assert.Equal(t, domain.DocumentTypeInvoice, h.Classify(text))
}

func TestHeuristic_TotalFunction(t *testing.T) {
	h := classifier.NewHeuristic()
	valid := map[domain.DocumentType]bool{
		domain.DocumentTypeReceipt: true,
		domain.DocumentTypeInvoice: true,
		domain.DocumentTypeUnknown: true,
	}
	inputs := []string{
		"",
		"   \n \n ",
		"lorem ipsum dolor",
		"\x00\xff garbage",
		"0",
	}
	for _, in := range inputs {
		assert.True(t, valid[h.Classify(in)], "input %q", in)
	}
}

func TestHeuristic_EmptyTextIsUnknown(t *testing.T) {
	h := classifier.NewHeuristic()
	assert.Equal(t, domain.DocumentTypeUnknown, h.Classify(""))
}

func TestHeuristic_Deterministic(t *testing.T) {
	h := classifier.NewHeuristic()
	text := "Corner Cafe\nThank you\nCash 12.50\n555-123-4567"
	first := h.Classify(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, h.Classify(text))
	}
}

func TestScoreRules_PerMatchAndPerLine(t *testing.T) {
	text := "a 1.00\nb 2.00 3.00\nno price here"

	rec := classifier.ScoreRules(classifier.ReceiptRules, text)
	// 3 price tokens x2 + 2 price lines x2 = 10
	assert.Equal(t, 10, rec)
}
