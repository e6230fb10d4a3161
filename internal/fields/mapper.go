package fields

import "docext/internal/domain"

// MapEntry binds one raw model label to a canonical field. Entries are
// applied in table order and the first present raw label wins a field;
// later matches never overwrite.
type MapEntry struct {
	Raw       string
	Canonical string
}

// receiptTable maps receipt-model labels to the legacy schema.
var receiptTable = []MapEntry{
	{"TITLE", FieldTitle},
	{"ADDRESS", FieldAddress},
	{"DATE", FieldDate},
	{"ITEM", FieldItem},
	{"ORDERID", FieldOrderID},
	{"ORDER_ID", FieldOrderID},
	{"ORDER", FieldOrderID},
	{"SUBTOTAL", FieldSubtotal},
	{"TAX", FieldTax},
	{"TOTAL", FieldTotalPrice},
	{"TOTALPRICE", FieldTotalPrice},
	{"AMOUNT", FieldTotalPrice},
	{"PRICE", FieldTotalPrice},
}

// invoiceLegacyTable maps invoice-model labels onto the legacy schema; it
// backs the fallback tier when the extended labels are absent.
var invoiceLegacyTable = []MapEntry{
	{"INVOICE_NUMBER", FieldOrderID},
	{"INVOICE_NO", FieldOrderID},
	{"INVOICE", FieldOrderID},
	{"DATE", FieldDate},
	{"INVOICE_DATE", FieldDate},
	{"BILL_TO", FieldAddress},
	{"SHIP_TO", FieldAddress},
	{"RECEIVER", FieldAddress},
	{"BILL_FROM", FieldTitle},
	{"VENDOR", FieldTitle},
	{"ISSUER", FieldTitle},
	{"SUBTOTAL", FieldSubtotal},
	{"TAX", FieldTax},
	{"TOTAL", FieldTotalPrice},
	{"AMOUNT_DUE", FieldTotalPrice},
	{"PAID", FieldTotalPrice},
	{"ITEM", FieldItem},
	{"DESCRIPTION", FieldItem},
}

// invoiceModelTable maps each extended invoice field to the model label that
// populates it directly.
var invoiceModelTable = []MapEntry{
	{"SUPPLIER_NAME", FieldSupplierName},
	{"SUPPLIER_ADDRESS", FieldSupplierAddress},
	{"CUSTOMER_NAME", FieldCustomerName},
	{"CUSTOMER_ADDRESS", FieldCustomerAddress},
	{"INVOICE_NUMBER", FieldInvoiceNumber},
	{"INVOICE_DATE", FieldInvoiceDate},
	{"DUE_DATE", FieldDueDate},
	{"ITEM_DESCRIPTION", FieldItemDescription},
	{"ITEM_QUANTITY", FieldItemQuantity},
	{"ITEM_UNIT_PRICE", FieldItemUnitPrice},
	{"ITEM_TOTAL_PRICE", FieldItemTotalPrice},
	{"INVOICE_SUBTOTAL", FieldInvoiceSubtotal},
	{"TAX_RATE", FieldTaxRate},
	{"TAX_AMOUNT", FieldTaxAmount},
	{"INVOICE_TOTAL", FieldInvoiceTotal},
}

// invoiceLegacyBridge fills extended invoice fields from their legacy
// counterparts when the model yielded no extended label for them.
var invoiceLegacyBridge = []MapEntry{
	{FieldOrderID, FieldInvoiceNumber},
	{FieldDate, FieldInvoiceDate},
	{FieldSubtotal, FieldInvoiceSubtotal},
	{FieldTotalPrice, FieldInvoiceTotal},
	{FieldTitle, FieldSupplierName},
}

// Profile bundles the mapping configuration for one document type: the
// record schema, the primary table applied over it, and an optional legacy
// tier whose values bridge into primary fields the model left empty.
type Profile struct {
	DocType domain.DocumentType
	Schema  []string
	Primary []MapEntry
	Legacy  []MapEntry
	Bridge  []MapEntry
}

// ReceiptProfile maps receipt-model labels directly onto the legacy schema.
var ReceiptProfile = Profile{
	DocType: domain.DocumentTypeReceipt,
	Schema:  ReceiptSchema,
	Primary: receiptTable,
}

// InvoiceProfile applies the extended model labels first, then fills the
// remaining gaps through the legacy invoice table and bridge.
var InvoiceProfile = Profile{
	DocType: domain.DocumentTypeInvoice,
	Schema:  InvoiceSchema,
	Primary: invoiceModelTable,
	Legacy:  invoiceLegacyTable,
	Bridge:  invoiceLegacyBridge,
}

// ProfileFor selects the mapping profile for a document type. Unknown
// documents use the receipt profile over the legacy schema.
func ProfileFor(docType domain.DocumentType) Profile {
	if docType == domain.DocumentTypeInvoice {
		return InvoiceProfile
	}
	return ReceiptProfile
}

// applyTable fills empty canonical fields from raw groups in table order.
func applyTable(rec domain.CanonicalRecord, groups RawFieldGroups, table []MapEntry) {
	for _, e := range table {
		if rec[e.Canonical] != "" {
			continue
		}
		if v, ok := groups.Get(e.Raw); ok {
			rec[e.Canonical] = v
		}
	}
}

// Map produces the fully-keyed record for the profile's schema.
func (p Profile) Map(groups RawFieldGroups) domain.CanonicalRecord {
	rec := EmptyRecord(p.Schema)
	applyTable(rec, groups, p.Primary)
	if len(p.Legacy) == 0 {
		return rec
	}
	legacy := EmptyRecord(ReceiptSchema)
	applyTable(legacy, groups, p.Legacy)
	for _, e := range p.Bridge {
		if rec[e.Canonical] == "" {
			rec[e.Canonical] = legacy[e.Raw]
		}
	}
	return rec
}

// MapReceipt maps aggregated raw groups to the fully-keyed receipt record.
func MapReceipt(groups RawFieldGroups) domain.CanonicalRecord {
	return ReceiptProfile.Map(groups)
}

// MapInvoice maps aggregated raw groups to the fully-keyed invoice record.
func MapInvoice(groups RawFieldGroups) domain.CanonicalRecord {
	return InvoiceProfile.Map(groups)
}

// MapToRecord maps raw groups through the profile for the document type.
func MapToRecord(groups RawFieldGroups, docType domain.DocumentType) domain.CanonicalRecord {
	return ProfileFor(docType).Map(groups)
}
