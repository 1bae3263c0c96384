package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFReader extracts text page by page using ledongthuc/pdf.
type PDFReader struct{}

// NewPDFReader returns a PDF capability. It is pure Go and always available.
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Name implements DocumentReader.
func (r *PDFReader) Name() string { return "ledongthuc/pdf" }

// Available implements DocumentReader.
func (r *PDFReader) Available() bool { return true }

// ReadText joins the plain text of every page with newlines.
// A page that yields no text contributes an empty string.
func (r *PDFReader) ReadText(data []byte) (text string, err error) {
	// the decoder panics on some truncated xref tables
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf decoder panic: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		pages = append(pages, pageText(reader.Page(i)))
	}
	return strings.Join(pages, "\n"), nil
}

func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}
