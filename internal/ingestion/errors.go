// Package ingestion converts uploaded résumé documents into plain text.
package ingestion

import "fmt"

// ConfigurationError indicates that the capability needed for a format is not available.
// It is fatal for the call and is surfaced to the caller verbatim.
type ConfigurationError struct {
	Capability string
	Cause      error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s capability unavailable: %v", e.Capability, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s capability unavailable", e.Capability)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// MalformedInputError indicates that a decoder rejected the document payload
type MalformedInputError struct {
	Format string
	Cause  error
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed %s document: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("malformed %s document", e.Format)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}
