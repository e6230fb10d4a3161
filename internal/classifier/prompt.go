package classifier

import "fmt"

const promptTemplate = `Classify the following document text as exactly one of: receipt, invoice, or unknown.

Rules:
- Receipt: shop/store name at top, list of items/quantities/prices, Subtotal/Tax/Total, date, payment method (cash/card/order id), 'Thank you'.
- Invoice: if the text starts with 'INVOICE' or contains 'BILL TO', 'TAX', 'TOTAL', 'DATE', 'AMOUNT DUE', 'DUE UPON RECEIPT', treat as invoice even if other words are noisy, misspelled, or missing. Issuer/seller name, receiver/bill-to name, or an invoice number also indicate an invoice. Payment terms and tax rate are strong invoice signals.
- Unknown: if neither clearly matches, or ambiguous, return 'unknown'.

Return only a single word: receipt OR invoice OR unknown (no punctuation, no explanation).

Examples (input -> expected):
- "SuperMart\n1x Apple  $1.00\nSubtotal $1.00\nTax $0.05\nTotal $1.05\n2025-01-10" -> receipt
- "INVOICE\nInvoice #1234\nBill To: Acme Co.\nAmount Due: $350.00" -> invoice
- "INVOICE\nBILL TO: John Doe\nDATE: 2023-05-01\nTAX: 10.00\nTOTAL: 100.00" -> invoice
- "INVOICE\nBILL TO: Jane Smith\nDUE UPON RECEIPT\nTAX RATE: 5%%\nTOTAL: 250.00" -> invoice

Now classify the following document text (do not add any extra text):

"%s"`

// BuildClassificationPrompt renders the instruction prompt sent to the
// remote classifier.
func BuildClassificationPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
