package rendering

import (
	"bytes"
	"strings"

	"github.com/jonathan/ats-scorer/internal/office"
	"github.com/unidoc/unioffice/document"
)

// Style IDs looked up in the generated document
const (
	styleHeading    = "Heading2"
	styleListBullet = "ListBullet"
)

// DocxWriter renders blocks with UniOffice.
type DocxWriter struct {
	licensed func() bool
}

// NewDocxWriter returns a writer gated on UniOffice license activation.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{licensed: office.Licensed}
}

// Available implements DocumentWriter.
func (w *DocxWriter) Available() bool {
	return w.licensed()
}

// Write implements DocumentWriter. Missing styles fall back to the default
// paragraph style: headings become bold runs and bullets keep their glyph.
func (w *DocxWriter) Write(blocks []Block) ([]byte, error) {
	doc := document.New()
	defer func() { _ = doc.Close() }()

	styles := make(map[string]bool)
	for _, style := range doc.Styles.Styles() {
		styles[style.StyleID()] = true
	}

	for _, block := range blocks {
		para := doc.AddParagraph()
		if block.Text == "" {
			continue
		}

		f := formatBlock(block, styles)
		if f.style != "" {
			para.SetStyle(f.style)
		}
		run := para.AddRun()
		if f.bold {
			run.Properties().SetBold(true)
		}
		run.AddText(f.text)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockFormat is how one block is written: an optional paragraph style,
// a bold flag for the run and the run text.
type blockFormat struct {
	style string
	bold  bool
	text  string
}

// formatBlock picks the paragraph formatting for block given the style IDs
// the document defines. Headings without Heading2 become bold runs; bullets
// without ListBullet keep their glyph in a default paragraph.
func formatBlock(block Block, styles map[string]bool) blockFormat {
	switch block.Kind {
	case KindHeading:
		if styles[styleHeading] {
			return blockFormat{style: styleHeading, text: block.Text}
		}
		return blockFormat{bold: true, text: block.Text}
	case KindBullet:
		if styles[styleListBullet] {
			return blockFormat{
				style: styleListBullet,
				text:  strings.TrimSpace(strings.TrimPrefix(block.Text, bulletGlyph)),
			}
		}
		return blockFormat{text: block.Text}
	default:
		return blockFormat{text: block.Text}
	}
}
