package parsing

import (
	"testing"

	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResume_Scenario(t *testing.T) {
	parsed := ParseResume("Experience\nBuilt a cache.\nSkills\nPython")

	assert.Equal(t, []string{"experience", "built", "a", "cache", "skills", "python"}, parsed.Words)
	assert.True(t, parsed.SectionsPresent["experience"])
	assert.True(t, parsed.SectionsPresent["skills"])

	for _, keyword := range types.SectionKeywords {
		if keyword == "experience" || keyword == "skills" {
			continue
		}
		assert.False(t, parsed.SectionsPresent[keyword], keyword)
	}
	assert.Len(t, parsed.SectionsPresent, 10)
	assert.Empty(t, parsed.ContactInfo)
}

func TestParseResume_SectionDetectionIsSubstring(t *testing.T) {
	parsed := ParseResume("Relevant WORK HISTORY and my professional summaryish notes")

	assert.True(t, parsed.SectionsPresent["work history"])
	assert.True(t, parsed.SectionsPresent["summary"])
	assert.False(t, parsed.SectionsPresent["education"])
}

func TestParseResume_TokensAreLettersOnly(t *testing.T) {
	parsed := ParseResume("C++ dev, 5yrs @ ACME_Corp; node.js")

	assert.Equal(t, []string{"c", "dev", "yrs", "acme", "corp", "node", "js"}, parsed.Words)
}

func TestParseResume_EmptyText(t *testing.T) {
	parsed := ParseResume("")

	require.NotNil(t, parsed.Words)
	assert.Empty(t, parsed.Words)
	assert.Empty(t, parsed.ContactInfo)
	assert.Equal(t, 0, parsed.PresentSectionCount())
}

func TestExtractContactInfo(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected map[string]string
	}{
		{
			name:     "email keeps original case",
			text:     "Contact: Jane.Doe@Example.COM",
			expected: map[string]string{"email": "Jane.Doe@Example.COM"},
		},
		{
			name:     "first email wins",
			text:     "a@one.io then b@two.io",
			expected: map[string]string{"email": "a@one.io"},
		},
		{
			name:     "phone with country code",
			text:     "Phone: +1 (555) 123-4567",
			expected: map[string]string{"phone": "+1 (555) 123-4567"},
		},
		{
			name:     "phone with dashes",
			text:     "call 555-123-4567 anytime",
			expected: map[string]string{"phone": "555-123-4567"},
		},
		{
			name:     "bare digits",
			text:     "5551234567",
			expected: map[string]string{"phone": "5551234567"},
		},
		{
			name:     "both",
			text:     "jane@example.com | 555 123 4567",
			expected: map[string]string{"email": "jane@example.com", "phone": "555 123 4567"},
		},
		{
			name:     "neither",
			text:     "no contact details here 12345",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractContactInfo(tt.text))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"python", "caching", "system"}, Tokenize("Python caching-system!"))
	assert.Empty(t, Tokenize("123 !!! ---"))
}

func TestUniqueTokens(t *testing.T) {
	got := UniqueTokens("Go go Kubernetes, AWS and kubernetes; Terraform", 3)
	assert.Equal(t, []string{"kubernetes", "terraform"}, got)

	got = UniqueTokens("Go go AWS", 1)
	assert.Equal(t, []string{"go", "aws"}, got)
}
