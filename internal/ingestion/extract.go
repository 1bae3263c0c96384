package ingestion

import (
	"errors"
	"strings"

	"github.com/jonathan/ats-scorer/internal/observability"
	"go.uber.org/zap"
)

// Supported format names, also used as capability names in errors.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatText = "text"
)

// DocumentReader is an external capability that decodes one binary format to plain text.
type DocumentReader interface {
	// Name identifies the reader in logs.
	Name() string
	// Available reports whether the underlying library is installed and usable.
	Available() bool
	// ReadText decodes the payload.
	ReadText(data []byte) (string, error)
}

// Extractor dispatches a document to the right reader based on its filename suffix.
type Extractor struct {
	pdf          DocumentReader
	docx         DocumentReader
	docxFallback DocumentReader
	logger       *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPDFReader sets the PDF capability.
func WithPDFReader(r DocumentReader) Option {
	return func(e *Extractor) { e.pdf = r }
}

// WithDOCXReader sets the primary word-processor capability.
func WithDOCXReader(r DocumentReader) Option {
	return func(e *Extractor) { e.docx = r }
}

// WithDOCXFallback sets the lighter-weight reader tried when the primary DOCX reader fails.
func WithDOCXFallback(r DocumentReader) Option {
	return func(e *Extractor) { e.docxFallback = r }
}

// WithLogger sets the logger used for degraded extractions.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an Extractor. Readers that are not supplied are treated as unavailable.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = observability.OrNop(e.logger)
	return e
}

// ExtractText converts a document payload to plain text.
//
// Dispatch is on the filename suffix only, case-insensitive:
//   - .pdf: the PDF reader; decoder failures are returned as *MalformedInputError
//   - .docx: the DOCX reader, then the fallback reader, then empty text;
//     an unavailable DOCX reader goes straight to the fallback
//   - anything else: the bytes as text, with undecodable sequences dropped
//
// A missing or unavailable reader yields *ConfigurationError.
func (e *Extractor) ExtractText(data []byte, filename string) (string, error) {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return e.extractPDF(data)
	case strings.HasSuffix(lower, ".docx"):
		return e.extractDOCX(data)
	default:
		return DecodeText(data), nil
	}
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	if !available(e.pdf) {
		return "", &ConfigurationError{Capability: FormatPDF}
	}

	text, err := e.pdf.ReadText(data)
	if err != nil {
		return "", &MalformedInputError{Format: FormatPDF, Cause: err}
	}
	return text, nil
}

func (e *Extractor) extractDOCX(data []byte) (string, error) {
	if !available(e.docx) {
		if !available(e.docxFallback) {
			return "", &ConfigurationError{Capability: FormatDOCX}
		}
		e.logger.Debug("primary docx reader unavailable, using fallback",
			zap.String("reader", e.docxFallback.Name()))
		return e.readDOCXFallback(data), nil
	}

	text, err := e.docx.ReadText(data)
	if err == nil {
		return text, nil
	}

	e.logger.Warn("docx reader failed, trying fallback",
		zap.String("reader", e.docx.Name()),
		zap.Error(err))

	if !available(e.docxFallback) {
		observability.ExtractionFallbacks.WithLabelValues(FormatDOCX, "empty").Inc()
		return "", nil
	}
	return e.readDOCXFallback(data), nil
}

// readDOCXFallback never fails: a fallback error degrades to empty text.
func (e *Extractor) readDOCXFallback(data []byte) string {
	text, err := e.docxFallback.ReadText(data)
	if err != nil {
		e.logger.Warn("docx fallback reader failed, returning empty text",
			zap.String("reader", e.docxFallback.Name()),
			zap.Error(err))
		observability.ExtractionFallbacks.WithLabelValues(FormatDOCX, "empty").Inc()
		return ""
	}

	observability.ExtractionFallbacks.WithLabelValues(FormatDOCX, "recovered").Inc()
	return text
}

func available(r DocumentReader) bool {
	return r != nil && r.Available()
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsMalformedInput reports whether err is or wraps a *MalformedInputError.
func IsMalformedInput(err error) bool {
	var malformed *MalformedInputError
	return errors.As(err, &malformed)
}
