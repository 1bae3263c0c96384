package rendering

import (
	"github.com/jonathan/ats-scorer/internal/ingestion"
)

// DocumentWriter is the external capability that turns blocks into a binary document.
type DocumentWriter interface {
	// Available reports whether the writer library is usable.
	Available() bool
	// Write renders the blocks in order.
	Write(blocks []Block) ([]byte, error)
}

// Render plans text into blocks and writes them with w.
// An unavailable writer yields *ingestion.ConfigurationError.
func Render(text string, w DocumentWriter) ([]byte, error) {
	if w == nil || !w.Available() {
		return nil, &ingestion.ConfigurationError{Capability: "docx writer"}
	}

	out, err := w.Write(Plan(text))
	if err != nil {
		return nil, &RenderError{Message: "failed to write document", Cause: err}
	}
	return out, nil
}
