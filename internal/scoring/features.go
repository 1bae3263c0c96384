// Package scoring computes ATS feature scores, the weighted overall score and suggestions.
package scoring

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-scorer/internal/parsing"
	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// neutralKeywordScore is used when no job description tokens are available
	neutralKeywordScore = 50
	// maxMissingKeywords bounds the reported missing-keyword list
	maxMissingKeywords = 20

	// minDenseLines is the line count below which a résumé is considered sparse
	minDenseLines = 15
	// minAverageLineLength is the mean line length below which density is poor
	minAverageLineLength = 25

	minWords = 200
	maxWords = 1200
)

// lengthWordPattern is broader than the parser's tokens: letters, digits and underscores
var lengthWordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// lineBreaks splits text the way a universal-newline reader does
var lineBreaks = regexp.MustCompile("\r\n|[\n\r\v\f\x1c\x1d\x1e\u0085\u2028\u2029]")

// KeywordOverlap scores résumé tokens against job-description tokens.
// Returns the score and the missing job-description tokens, sorted and truncated to 20.
func KeywordOverlap(words []string, jobDescription string) (int, []string) {
	jdTokens := parsing.Tokenize(jobDescription)
	if len(jdTokens) == 0 {
		return neutralKeywordScore, []string{}
	}

	jdSet := toSet(jdTokens)
	resumeSet := toSet(words)

	overlap := 0
	missing := make([]string, 0)
	for token := range jdSet {
		if resumeSet[token] {
			overlap++
		} else {
			missing = append(missing, token)
		}
	}

	// integer arithmetic keeps floor(40 + ratio*60) exact
	score := 40 + (overlap*60)/len(jdSet)
	score = min(score, 100)

	sort.Strings(missing)
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}
	return score, missing
}

// MatchedKeywords returns the distinct job-description tokens present in the résumé, sorted.
func MatchedKeywords(words []string, jobDescription string) []string {
	resumeSet := toSet(words)
	matched := make([]string, 0)
	for token := range toSet(parsing.Tokenize(jobDescription)) {
		if resumeSet[token] {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)
	return matched
}

// Formatting scores text density from its non-blank lines.
func Formatting(text string) int {
	lines := make([]string, 0)
	for _, line := range lineBreaks.Split(text, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < minDenseLines {
		return 40
	}

	total := 0
	for _, line := range lines {
		total += utf8.RuneCountInString(line)
	}
	if float64(total)/float64(len(lines)) < minAverageLineLength {
		return 55
	}
	return 85
}

// Sections scores section coverage: base 50 plus 5 per present section, capped at 100.
func Sections(sectionsPresent map[string]bool) int {
	present := 0
	for _, ok := range sectionsPresent {
		if ok {
			present++
		}
	}
	return min(100, 50+5*present)
}

// Contact scores contact completeness: both email and phone, one of them, or neither.
func Contact(contactInfo map[string]string) int {
	_, hasEmail := contactInfo[types.ContactEmail]
	_, hasPhone := contactInfo[types.ContactPhone]
	switch {
	case hasEmail && hasPhone:
		return 100
	case hasEmail || hasPhone:
		return 70
	default:
		return 50
	}
}

// Length scores the résumé word count; 200 to 1200 words inclusive is ideal.
func Length(text string) int {
	words := len(lengthWordPattern.FindAllStringIndex(text, -1))
	switch {
	case words < minWords:
		return 60
	case words > maxWords:
		return 65
	default:
		return 90
	}
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}
