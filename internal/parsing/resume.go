// Package parsing turns extracted résumé text into a structured ParsedResume.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

var (
	// tokenPattern defines a token: a maximal run of ASCII letters
	tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// optional country code, then 3-3-4 digits with loose separators
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[\s-]?)?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{4}`)
)

// ParseResume builds a ParsedResume from extracted text.
// It never fails: absent sections or contact details are simply recorded as absent.
func ParseResume(text string) types.ParsedResume {
	// 1. Lower-case once for section detection and tokenization
	lowerText := strings.ToLower(text)

	// 2. Section presence by substring containment
	sectionsPresent := make(map[string]bool, len(types.SectionKeywords))
	for _, keyword := range types.SectionKeywords {
		sectionsPresent[keyword] = strings.Contains(lowerText, keyword)
	}

	// 3. Tokens
	words := tokenPattern.FindAllString(lowerText, -1)
	if words == nil {
		words = []string{}
	}

	// 4. Contact info, scanned on the original-case text
	return types.ParsedResume{
		Text:            text,
		SectionsPresent: sectionsPresent,
		ContactInfo:     ExtractContactInfo(text),
		Words:           words,
	}
}

// ExtractContactInfo returns the first email and the first phone number found in text.
func ExtractContactInfo(text string) map[string]string {
	contact := make(map[string]string, 2)
	if email := emailPattern.FindString(text); email != "" {
		contact[types.ContactEmail] = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		contact[types.ContactPhone] = phone
	}
	return contact
}

// Tokenize lower-cases text and returns its letter-run tokens in order.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// UniqueTokens returns the distinct tokens of text in order of first appearance.
// Only tokens longer than minLen characters are kept.
func UniqueTokens(text string, minLen int) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, token := range Tokenize(text) {
		if len(token) <= minLen || seen[token] {
			continue
		}
		seen[token] = true
		result = append(result, token)
	}
	return result
}
