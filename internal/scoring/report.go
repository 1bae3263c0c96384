package scoring

import (
	"sort"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// maxResumeTextChars bounds the echoed résumé text
	maxResumeTextChars = 4000
	// topKeywordCount is the number of most frequent tokens reported
	topKeywordCount = 10
	// minTopKeywordLength excludes short tokens from the frequency table
	minTopKeywordLength = 3
)

// BuildReport runs every feature scorer over a parsed résumé and assembles the full report.
func BuildReport(parsed types.ParsedResume, jobDescription string) types.ScoreReport {
	keywordScore, missing := KeywordOverlap(parsed.Words, jobDescription)

	breakdown := types.ScoreBreakdown{
		KeywordMatch: keywordScore,
		Formatting:   Formatting(parsed.Text),
		Sections:     Sections(parsed.SectionsPresent),
		Contact:      Contact(parsed.ContactInfo),
		Length:       Length(parsed.Text),
	}

	extracted := make(map[string]string, len(parsed.ContactInfo))
	for k, v := range parsed.ContactInfo {
		extracted[k] = v
	}
	sections := make(map[string]bool, len(parsed.SectionsPresent))
	for k, v := range parsed.SectionsPresent {
		sections[k] = v
	}

	return types.ScoreReport{
		ATSScore:        Aggregate(breakdown),
		Breakdown:       breakdown,
		Suggestions:     Suggestions(breakdown, missing, parsed.ContactInfo),
		Extracted:       extracted,
		ResumeText:      TruncateText(parsed.Text, maxResumeTextChars),
		MatchedKeywords: MatchedKeywords(parsed.Words, jobDescription),
		MissingKeywords: missing,
		SectionsPresent: sections,
		TopKeywords:     TopKeywords(parsed.Words, topKeywordCount),
		WordCount:       len(parsed.Words),
	}
}

// TopKeywords returns the n most frequent tokens longer than three characters.
// Ties are broken alphabetically so the result is deterministic.
func TopKeywords(words []string, n int) []types.KeywordCount {
	counts := make(map[string]int)
	for _, word := range words {
		if len(word) > minTopKeywordLength {
			counts[word]++
		}
	}

	result := make([]types.KeywordCount, 0, len(counts))
	for word, count := range counts {
		result = append(result, types.KeywordCount{Word: word, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Word < result[j].Word
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

// TruncateText cuts text to limit characters, appending "..." when anything was cut.
func TruncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
