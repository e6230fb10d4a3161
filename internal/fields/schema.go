// Package fields turns word-level labels into a fully-keyed canonical record.
package fields

import "docext/internal/domain"

// Canonical field names for the receipt (legacy) schema.
const (
	FieldAddress    = "address"
	FieldDate       = "date"
	FieldItem       = "item"
	FieldOrderID    = "order_id"
	FieldSubtotal   = "subtotal"
	FieldTax        = "tax"
	FieldTitle      = "title"
	FieldTotalPrice = "total_price"
)

// Canonical field names for the extended invoice schema.
const (
	FieldCustomerAddress = "customer_address"
	FieldCustomerName    = "customer_name"
	FieldDueDate         = "due_date"
	FieldInvoiceDate     = "invoice_date"
	FieldInvoiceNumber   = "invoice_number"
	FieldInvoiceSubtotal = "invoice_subtotal"
	FieldInvoiceTotal    = "invoice_total"
	FieldItemDescription = "item_description"
	FieldItemQuantity    = "item_quantity"
	FieldItemTotalPrice  = "item_total_price"
	FieldItemUnitPrice   = "item_unit_price"
	FieldSupplierAddress = "supplier_address"
	FieldSupplierName    = "supplier_name"
	FieldTaxAmount       = "tax_amount"
	FieldTaxRate         = "tax_rate"
)

// ReceiptSchema lists every key of a receipt record.
var ReceiptSchema = []string{
	FieldAddress,
	FieldDate,
	FieldItem,
	FieldOrderID,
	FieldSubtotal,
	FieldTax,
	FieldTitle,
	FieldTotalPrice,
}

// InvoiceSchema lists every key of an invoice record.
var InvoiceSchema = []string{
	FieldCustomerAddress,
	FieldCustomerName,
	FieldDueDate,
	FieldInvoiceDate,
	FieldInvoiceNumber,
	FieldInvoiceSubtotal,
	FieldInvoiceTotal,
	FieldItemDescription,
	FieldItemQuantity,
	FieldItemTotalPrice,
	FieldItemUnitPrice,
	FieldSupplierAddress,
	FieldSupplierName,
	FieldTaxAmount,
	FieldTaxRate,
}

// EmptyRecord returns a record with every schema key present and empty.
func EmptyRecord(schema []string) domain.CanonicalRecord {
	rec := make(domain.CanonicalRecord, len(schema))
	for _, k := range schema {
		rec[k] = ""
	}
	return rec
}

// SchemaFor selects the canonical schema for a document type. Unknown
// documents use the legacy receipt schema.
func SchemaFor(docType domain.DocumentType) []string {
	if docType == domain.DocumentTypeInvoice {
		return InvoiceSchema
	}
	return ReceiptSchema
}
