package types

// ScoreBreakdown holds the five independently scored dimensions, each in [0,100].
type ScoreBreakdown struct {
	KeywordMatch int `json:"keyword_match"`
	Formatting   int `json:"formatting"`
	Sections     int `json:"sections"`
	Contact      int `json:"contact"`
	Length       int `json:"length"`
}

// KeywordCount is a résumé token and how often it occurs
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ScoreReport is the full result of scoring one résumé against a job description
type ScoreReport struct {
	ATSScore        int               `json:"ats_score"`
	Breakdown       ScoreBreakdown    `json:"breakdown"`
	Suggestions     []string          `json:"suggestions"`
	Extracted       map[string]string `json:"extracted"`
	ResumeText      string            `json:"resume_text"`
	MatchedKeywords []string          `json:"matched_keywords"`
	MissingKeywords []string          `json:"missing_keywords"`
	SectionsPresent map[string]bool   `json:"sections_present"`
	TopKeywords     []KeywordCount    `json:"top_keywords"`
	WordCount       int               `json:"word_count"`
}
