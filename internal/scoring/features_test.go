package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestKeywordOverlap_Scenario(t *testing.T) {
	words := []string{"built", "a", "cache", "python"}

	score, missing := KeywordOverlap(words, "python caching system")

	// overlap {python} of 3 job tokens: floor(40 + 60/3) = 60
	assert.Equal(t, 60, score)
	assert.Equal(t, []string{"caching", "system"}, missing)
}

func TestKeywordOverlap_EmptyJobDescriptionIsNeutral(t *testing.T) {
	for _, jd := range []string{"", "   ", "123 -- 456 !!"} {
		score, missing := KeywordOverlap([]string{"python"}, jd)
		assert.Equal(t, 50, score, "jd=%q", jd)
		assert.NotNil(t, missing)
		assert.Empty(t, missing)
	}
}

func TestKeywordOverlap_FullOverlap(t *testing.T) {
	score, missing := KeywordOverlap([]string{"go", "kubernetes"}, "Go, Kubernetes, go")
	assert.Equal(t, 100, score)
	assert.Empty(t, missing)
}

func TestKeywordOverlap_FloorNotRound(t *testing.T) {
	// 2 of 3 matched: 40 + 40 = 80; 1 of 7 matched: 40 + 8.57 -> 48
	score, _ := KeywordOverlap([]string{"a", "b"}, "a b c")
	assert.Equal(t, 80, score)

	score, _ = KeywordOverlap([]string{"a"}, "a b c d e f g")
	assert.Equal(t, 48, score)
}

func TestKeywordOverlap_MissingIsSortedAndTruncated(t *testing.T) {
	jdWords := make([]string, 0, 26)
	for c := 'z'; c >= 'a'; c-- {
		jdWords = append(jdWords, strings.Repeat(string(c), 3))
	}

	score, missing := KeywordOverlap([]string{}, strings.Join(jdWords, " "))

	assert.Equal(t, 40, score)
	assert.Len(t, missing, 20)
	assert.Equal(t, "aaa", missing[0])
	assert.Equal(t, "ttt", missing[19])
}

func TestMatchedKeywords(t *testing.T) {
	words := parsing.Tokenize("Python developer with Docker and AWS")
	assert.Equal(t, []string{"aws", "docker", "python"}, MatchedKeywords(words, "AWS python docker rust"))
	assert.Empty(t, MatchedKeywords(words, ""))
}

func TestFormatting(t *testing.T) {
	longLine := strings.Repeat("x", 80)
	shortLine := "short line"

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "empty", text: "", expected: 40},
		{name: "14 dense lines is sparse", text: repeatLines(longLine, 14), expected: 40},
		{name: "blank lines do not count", text: strings.Repeat(longLine+"\n\n   \n", 10), expected: 40},
		{name: "15 dense lines", text: repeatLines(longLine, 15), expected: 85},
		{name: "many short lines", text: repeatLines(shortLine, 30), expected: 55},
		{name: "crlf line endings", text: strings.Repeat(longLine+"\r\n", 20), expected: 85},
		{name: "mean exactly 25", text: repeatLines(strings.Repeat("y", 25), 15), expected: 85},
		{name: "mean just under 25", text: repeatLines(strings.Repeat("y", 24), 15), expected: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Formatting(tt.text))
		})
	}
}

func TestSections(t *testing.T) {
	for k := 0; k <= len(types.SectionKeywords); k++ {
		present := make(map[string]bool)
		for i, keyword := range types.SectionKeywords {
			present[keyword] = i < k
		}
		assert.Equal(t, min(100, 50+5*k), Sections(present), "k=%d", k)
	}

	all := make(map[string]bool)
	for _, keyword := range types.SectionKeywords {
		all[keyword] = true
	}
	assert.Equal(t, 100, Sections(all))
	assert.Equal(t, 50, Sections(nil))
}

func TestContact(t *testing.T) {
	tests := []struct {
		name     string
		contact  map[string]string
		expected int
	}{
		{name: "both", contact: map[string]string{"email": "a@b.io", "phone": "5551234567"}, expected: 100},
		{name: "email only", contact: map[string]string{"email": "a@b.io"}, expected: 70},
		{name: "phone only", contact: map[string]string{"phone": "5551234567"}, expected: 70},
		{name: "neither", contact: map[string]string{}, expected: 50},
		{name: "nil", contact: nil, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contact(tt.contact))
		})
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		expected int
	}{
		{name: "empty", words: 0, expected: 60},
		{name: "199 words", words: 199, expected: 60},
		{name: "200 words", words: 200, expected: 90},
		{name: "1200 words", words: 1200, expected: 90},
		{name: "1201 words", words: 1201, expected: 65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Length(nWords(tt.words)))
		})
	}
}

func TestLength_CountsDigitsAndUnderscores(t *testing.T) {
	// 150 letter words plus 60 numeric tokens crosses 200 only with the broad definition
	text := nWords(150) + " " + strings.TrimSpace(strings.Repeat("2024 ", 60))
	assert.Equal(t, 90, Length(text))
	assert.Len(t, parsing.Tokenize(text), 150)
}

func TestFeatureScores_AlwaysInRange(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02",
		strings.Repeat("a", 10000),
		strings.Repeat("word ", 5000),
		repeatLines("summary experience education skills projects", 40),
		"jane@example.com 555-123-4567",
	}

	for i, text := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			parsed := parsing.ParseResume(text)
			kw, _ := KeywordOverlap(parsed.Words, "python go rust")
			scores := []int{
				kw,
				Formatting(parsed.Text),
				Sections(parsed.SectionsPresent),
				Contact(parsed.ContactInfo),
				Length(parsed.Text),
			}
			for _, s := range scores {
				assert.GreaterOrEqual(t, s, 0)
				assert.LessOrEqual(t, s, 100)
			}
		})
	}
}

func repeatLines(line string, n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func nWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}
