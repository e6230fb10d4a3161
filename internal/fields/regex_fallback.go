package fields

import (
	"regexp"
	"strings"

	"docext/internal/domain"
)

// Pattern-based extraction used when model inference is unavailable. It works
// on the classifier's plain-text rendition of the document and is strictly
// weaker than the model path, but it keeps the record contract intact.
var (
	datePattern     = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)
	orderIDPattern  = regexp.MustCompile(`(?i)Order\s*ID[:\s]*(\w+)`)
	subtotalPattern = regexp.MustCompile(`(?i)Subtotal[:\s]*(\$?\d+\.?\d*)`)
	taxPattern      = regexp.MustCompile(`(?i)Tax[:\s]*(\$?\d+\.?\d*)`)
	totalPattern    = regexp.MustCompile(`(?i)Total(?:\s*Price)?[:\s]*(\$?\d+\.?\d*)`)
)

// RegexExtract builds a canonical record for the selected document type from
// plain text alone. Every schema key is present in the result.
func RegexExtract(text string, docType domain.DocumentType) domain.CanonicalRecord {
	legacy := regexExtractLegacy(text)
	if docType != domain.DocumentTypeInvoice {
		return legacy
	}

	rec := EmptyRecord(InvoiceSchema)
	rec[FieldCustomerAddress] = legacy[FieldAddress]
	rec[FieldInvoiceDate] = legacy[FieldDate]
	rec[FieldItemDescription] = legacy[FieldItem]
	rec[FieldInvoiceNumber] = legacy[FieldOrderID]
	rec[FieldInvoiceSubtotal] = legacy[FieldSubtotal]
	rec[FieldTaxAmount] = legacy[FieldTax]
	rec[FieldSupplierName] = legacy[FieldTitle]
	rec[FieldInvoiceTotal] = legacy[FieldTotalPrice]
	return rec
}

func regexExtractLegacy(text string) domain.CanonicalRecord {
	rec := EmptyRecord(ReceiptSchema)

	lines := strings.Split(text, "\n")
	if len(lines) > 0 {
		rec[FieldAddress] = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		rec[FieldTitle] = strings.TrimSpace(lines[1])
	}
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), "title") {
			rec[FieldTitle] = strings.TrimSpace(l)
			break
		}
	}
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), "item") {
			rec[FieldItem] = strings.TrimSpace(l)
			break
		}
	}

	if m := datePattern.FindStringSubmatch(text); m != nil {
		rec[FieldDate] = m[1]
	}
	if m := orderIDPattern.FindStringSubmatch(text); m != nil {
		rec[FieldOrderID] = m[1]
	}
	if m := subtotalPattern.FindStringSubmatch(text); m != nil {
		rec[FieldSubtotal] = m[1]
	}
	if m := taxPattern.FindStringSubmatch(text); m != nil {
		rec[FieldTax] = m[1]
	}
	if m := totalPattern.FindStringSubmatch(text); m != nil {
		rec[FieldTotalPrice] = m[1]
	}
	return rec
}
