package domain

// DocumentType is the classifier's verdict for a document.
type DocumentType string

const (
	DocumentTypeReceipt DocumentType = "receipt"
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeUnknown DocumentType = "unknown"
)

// ParseDocumentType maps free-form text to a DocumentType, defaulting to
// unknown for anything unrecognized.
func ParseDocumentType(s string) DocumentType {
	switch DocumentType(s) {
	case DocumentTypeReceipt, DocumentTypeInvoice:
		return DocumentType(s)
	default:
		return DocumentTypeUnknown
	}
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
