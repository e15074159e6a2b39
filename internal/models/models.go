package models

// Metadata is the structured metadata persisted with each embedding record.
// New fields must be additive only; the store file is long-lived.
type Metadata struct {
	Category   string `json:"category"`
	DocID      string `json:"doc_id"`
	FilePath   string `json:"file_path"`
	Title      string `json:"title"`
	UploadTime string `json:"upload_time"`
	Author     string `json:"author,omitempty"`
}

// Chunk is a bounded span of a document's cleaned text with a stable ordinal
// index. Boundaries are fixed before normalization.
type Chunk struct {
	Index      int      `json:"index"`
	Text       string   `json:"text"`       // raw chunk text, boundaries as produced by the chunker
	Normalized string   `json:"normalized"` // lowercased, punctuation stripped, whitespace collapsed
	Keywords   []string `json:"keywords"`
	Stemmed    []string `json:"stemmed"`
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
}
