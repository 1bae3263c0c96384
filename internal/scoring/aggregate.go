package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// Weights in whole percent; they sum to 100 so the weighted sum is exact in hundredths.
const (
	keywordMatchWeight = 35
	formattingWeight   = 20
	sectionsWeight     = 20
	contactWeight      = 10
	lengthWeight       = 15
)

// Suggestion thresholds
const (
	keywordSuggestionThreshold    = 75
	formattingSuggestionThreshold = 70
	sectionsSuggestionThreshold   = 80
	lengthSuggestionThreshold     = 80
	maxSuggestedKeywords          = 10
)

// Aggregate combines the breakdown into the overall score.
// The weighted sum is rounded to the nearest integer, ties to even.
func Aggregate(b types.ScoreBreakdown) int {
	hundredths := b.KeywordMatch*keywordMatchWeight +
		b.Formatting*formattingWeight +
		b.Sections*sectionsWeight +
		b.Contact*contactWeight +
		b.Length*lengthWeight

	whole, rem := hundredths/100, hundredths%100
	if rem > 50 || (rem == 50 && whole%2 == 1) {
		whole++
	}
	return whole
}

// Suggestions derives improvement hints in fixed priority order:
// keywords, formatting, sections, email, phone, length.
func Suggestions(b types.ScoreBreakdown, missing []string, contactInfo map[string]string) []string {
	suggestions := make([]string, 0)

	if b.KeywordMatch < keywordSuggestionThreshold && len(missing) > 0 {
		listed := missing
		if len(listed) > maxSuggestedKeywords {
			listed = listed[:maxSuggestedKeywords]
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Consider incorporating missing role keywords: %s", strings.Join(listed, ", ")))
	}
	if b.Formatting < formattingSuggestionThreshold {
		suggestions = append(suggestions, "Increase text density; avoid images/tables; prefer standard headings.")
	}
	if b.Sections < sectionsSuggestionThreshold {
		suggestions = append(suggestions, "Add or improve sections: Summary, Experience, Skills, Education, Projects.")
	}
	if _, ok := contactInfo[types.ContactEmail]; !ok {
		suggestions = append(suggestions, "Include a professional email address.")
	}
	if _, ok := contactInfo[types.ContactPhone]; !ok {
		suggestions = append(suggestions, "Include a reachable phone number with country code.")
	}
	if b.Length < lengthSuggestionThreshold {
		suggestions = append(suggestions, "Target 1 page (junior) or 1–2 pages (senior) with concise bullets.")
	}

	return suggestions
}
