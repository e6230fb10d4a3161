package domain

import (
	"time"

	"github.com/google/uuid"
)

// Point is a single polygon corner in pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawDetection is one text detection as returned by the OCR engine.
// The detection order carries no meaning.
type RawDetection struct {
	Polygon    [4]Point `json:"polygon"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
}

// BoundingBox is an axis-aligned box in pixel coordinates, clipped to the
// image bounds.
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// CenterY returns the vertical center of the box.
func (b BoundingBox) CenterY() float64 {
	return (b.Y1 + b.Y2) / 2
}

// WordToken is a detection that survived confidence filtering.
type WordToken struct {
	Text string      `json:"text"`
	Box  BoundingBox `json:"box"`
}

// Line is an ordered run of word tokens sharing a vertical band. Key is the
// vertical center the band was opened at.
type Line struct {
	Key   float64
	Words []WordToken
}

// NormalizedBox is an integer box in the model's [0,1000] coordinate space.
type NormalizedBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// TokenPrediction is the model's prediction for a single sub-word token.
// WordIndex is -1 for padding/special tokens that map to no word.
type TokenPrediction struct {
	WordIndex int    `json:"word_index"`
	Label     string `json:"label"`
}

// CanonicalRecord maps canonical field names to extracted string values.
// It is always fully keyed for the schema it was built from: callers never
// have to check for missing keys.
type CanonicalRecord map[string]string

// Clone returns a copy of the record.
func (r CanonicalRecord) Clone() CanonicalRecord {
	out := make(CanonicalRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ExtractionRecord is a persisted extraction result.
type ExtractionRecord struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	SourceFile   string          `db:"source_file" json:"source_file"`
	Fields       CanonicalRecord `db:"-" json:"fields"`
	StorageKey   string          `db:"storage_key" json:"storage_key"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
