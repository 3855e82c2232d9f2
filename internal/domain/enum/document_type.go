package enum

// DocumentType selects which numbered document a sequence allocation is for.
// All three document families share the same allocator.
type DocumentType string

const (
	DocumentTypeQuote   DocumentType = "quote"
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeJob     DocumentType = "job"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeQuote, DocumentTypeInvoice, DocumentTypeJob:
		return true
	}
	return false
}
