package parser

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"rfp-assist/internal/apperr"
)

// Info is the subset of the PDF document information dictionary we keep.
type Info struct {
	Title        string
	Author       string
	CreationDate string
}

// Extracted holds raw per-page text plus document metadata read from a PDF.
type Extracted struct {
	Pages []string
	Info  Info
}

// Extractor reads a source file into per-page text plus metadata.
type Extractor interface {
	Extract(path string) (*Extracted, error)
}

// PDFExtractor extracts text from PDF files.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(path string) (*Extracted, error) {
	return ExtractPDF(path)
}

// ExtractPDF reads the PDF at path and returns its per-page text and
// metadata. Fails with an extraction error when the file is not a valid PDF
// or contains no extractable text layer.
func ExtractPDF(path string) (*Extracted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExtraction, "failed to open file", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExtraction, "failed to stat file", err)
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindExtraction, "not a readable PDF", err)
	}

	ext := &Extracted{Info: readInfo(reader)}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Err(err).Int("page", i).Msg("skipping page with unreadable text")
			continue
		}
		ext.Pages = append(ext.Pages, pageText)
	}

	if strings.TrimSpace(strings.Join(ext.Pages, "")) == "" {
		return nil, apperr.New(apperr.KindExtraction, "no extractable text found in the PDF")
	}

	log.Debug().Int("pages", len(ext.Pages)).Str("file", path).Msg("extracted text")
	return ext, nil
}

func readInfo(r *pdf.Reader) Info {
	defer func() {
		// malformed info dictionaries are not worth failing extraction over
		_ = recover()
	}()
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return Info{}
	}
	return Info{
		Title:        info.Key("Title").Text(),
		Author:       info.Key("Author").Text(),
		CreationDate: info.Key("CreationDate").Text(),
	}
}
