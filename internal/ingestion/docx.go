package ingestion

import (
	"bytes"
	"strings"

	"code.sajari.com/docconv"
	"github.com/jonathan/ats-scorer/internal/office"
	"github.com/unidoc/unioffice/document"
)

// UniofficeReader reads DOCX paragraphs with UniOffice.
// It is available only once a UniOffice license has been activated.
type UniofficeReader struct {
	licensed func() bool
}

// NewUniofficeReader returns the primary word-processor capability.
func NewUniofficeReader() *UniofficeReader {
	return &UniofficeReader{licensed: office.Licensed}
}

// Name implements DocumentReader.
func (r *UniofficeReader) Name() string { return "unioffice" }

// Available implements DocumentReader.
func (r *UniofficeReader) Available() bool { return r.licensed() }

// ReadText joins paragraph texts with newlines.
func (r *UniofficeReader) ReadText(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer func() { _ = doc.Close() }()

	paragraphs := doc.Paragraphs()
	runs := make([][]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts := make([]string, 0, len(p.Runs()))
		for _, run := range p.Runs() {
			texts = append(texts, run.Text())
		}
		runs = append(runs, texts)
	}
	return joinParagraphs(runs), nil
}

// joinParagraphs concatenates each paragraph's runs and joins paragraphs with newlines.
func joinParagraphs(paragraphs [][]string) string {
	lines := make([]string, 0, len(paragraphs))
	for _, runs := range paragraphs {
		lines = append(lines, strings.Join(runs, ""))
	}
	return strings.Join(lines, "\n")
}

// DocconvReader is the lighter-weight DOCX fallback built on docconv's XML walker.
type DocconvReader struct{}

// NewDocconvReader returns the fallback word-processor capability.
func NewDocconvReader() *DocconvReader {
	return &DocconvReader{}
}

// Name implements DocumentReader.
func (r *DocconvReader) Name() string { return "docconv" }

// Available implements DocumentReader.
func (r *DocconvReader) Available() bool { return true }

// ReadText implements DocumentReader.
func (r *DocconvReader) ReadText(data []byte) (string, error) {
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return body, nil
}
