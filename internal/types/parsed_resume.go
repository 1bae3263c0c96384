// Package types provides type definitions for structured data used throughout the ats-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Contact info keys recognized by the parser.
const (
	ContactEmail = "email"
	ContactPhone = "phone"
)

// SectionKeywords is the canonical, ordered set of résumé section names.
// Presence is detected by substring containment on the lower-cased text.
var SectionKeywords = []string{
	"summary",
	"objective",
	"experience",
	"employment",
	"work history",
	"education",
	"skills",
	"projects",
	"certifications",
	"awards",
}

// ParsedResume is the structured view of one extracted résumé.
// It is built once per request and never mutated afterwards.
type ParsedResume struct {
	Text            string            `json:"text"`
	SectionsPresent map[string]bool   `json:"sections_present"`
	ContactInfo     map[string]string `json:"contact_info"`
	Words           []string          `json:"words"`
}

// Email returns the extracted email address, if any.
func (p ParsedResume) Email() (string, bool) {
	v, ok := p.ContactInfo[ContactEmail]
	return v, ok
}

// Phone returns the extracted phone number, if any.
func (p ParsedResume) Phone() (string, bool) {
	v, ok := p.ContactInfo[ContactPhone]
	return v, ok
}

// PresentSectionCount returns how many canonical sections were detected.
func (p ParsedResume) PresentSectionCount() int {
	count := 0
	for _, present := range p.SectionsPresent {
		if present {
			count++
		}
	}
	return count
}
