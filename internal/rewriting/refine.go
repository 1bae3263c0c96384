// Package rewriting restructures free-form résumé text into a canonical section layout.
package rewriting

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/parsing"
	"go.uber.org/zap"
)

// Canonical refined section names
const (
	SectionSummary    = "summary"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
)

const (
	// BulletGlyph starts every bulletized line
	BulletGlyph  = "•"
	bulletPrefix = BulletGlyph + " "

	maxSummaryKeywords = 6
	maxSkills          = 30
	// minKeywordLength excludes short job-description tokens from summaries and skills
	minKeywordLength = 3

	experiencePlaceholder = bulletPrefix + "Add quantified achievements (e.g., Improved X by Y% using Z)."
	skillsPlaceholder     = bulletPrefix + "Add the core skills and tools you use."
	neutralSummary        = "Experienced professional."
)

var (
	whitespaceRunPattern = regexp.MustCompile(`[\t\r]+`)
	skillTokenPattern    = regexp.MustCompile(`[A-Za-z+#.]+`)
)

// headerRules are tried in order; the first rule whose marker appears in a line wins.
var headerRules = []struct {
	section string
	markers []string
}{
	{section: SectionSummary, markers: []string{"summary", "objective"}},
	{section: SectionSkills, markers: []string{"skill"}},
	{section: SectionExperience, markers: []string{"experience", "employment", "work history"}},
	{section: SectionEducation, markers: []string{"education"}},
	{section: SectionProjects, markers: []string{"project"}},
}

// Sections maps a canonical section name to its lines in input order.
type Sections map[string][]string

// Refiner rewrites extracted résumé text into the canonical layout.
type Refiner struct {
	speller Speller
	logger  *zap.Logger
}

// NewRefiner creates a Refiner. A nil speller disables the spelling pass.
func NewRefiner(speller Speller, logger *zap.Logger) *Refiner {
	if speller == nil {
		speller = NoopSpeller{}
	}
	return &Refiner{speller: speller, logger: observability.OrNop(logger)}
}

// Refine produces the refined résumé body for text, tailored to jobDescription.
func (r *Refiner) Refine(text, jobDescription string) string {
	// 1. Normalize into trimmed, non-blank lines
	lines := NormalizeLines(text)

	// 2. Optional spelling pass
	if r.speller.Available() {
		for i, line := range lines {
			lines[i] = CorrectLine(line, r.speller, r.logger)
		}
	}

	// 3. Reclassify lines into sections
	sections := ClassifySections(lines)

	// 4. Summary
	summary := sections[SectionSummary]
	if len(summary) == 0 {
		summary = []string{SynthesizeSummary(jobDescription)}
	}

	// 5. Skills
	skills := MergeSkills(sections[SectionSkills], jobDescription)

	// 6. Bulletize experience and projects
	experience := BulletizeAll(sections[SectionExperience])
	if len(experience) == 0 {
		experience = []string{experiencePlaceholder}
	}
	projects := BulletizeAll(sections[SectionProjects])

	r.logger.Debug("refined resume sections",
		zap.Int("summary_lines", len(summary)),
		zap.Int("experience_lines", len(experience)),
		zap.Int("project_lines", len(projects)),
		zap.Int("education_lines", len(sections[SectionEducation])))

	// 7. Reassemble
	return Assemble(summary, skills, experience, projects, sections[SectionEducation])
}

// NormalizeLines collapses tab and carriage-return runs to a single space and
// returns the trimmed, non-blank lines.
func NormalizeLines(text string) []string {
	text = whitespaceRunPattern.ReplaceAllString(text, " ")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ClassifySections assigns each line to the most recently seen section header.
// Header lines are consumed; lines before the first header are dropped.
func ClassifySections(lines []string) Sections {
	sections := make(Sections)
	current := ""

	for _, line := range lines {
		if section, ok := matchHeader(strings.ToLower(line)); ok {
			current = section
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

func matchHeader(lowerLine string) (string, bool) {
	for _, rule := range headerRules {
		for _, marker := range rule.markers {
			if strings.Contains(lowerLine, marker) {
				return rule.section, true
			}
		}
	}
	return "", false
}

// SynthesizeSummary builds a one-line summary from the first distinct job-description keywords.
func SynthesizeSummary(jobDescription string) string {
	keywords := parsing.UniqueTokens(jobDescription, minKeywordLength)
	if len(keywords) > maxSummaryKeywords {
		keywords = keywords[:maxSummaryKeywords]
	}
	if len(keywords) == 0 {
		return neutralSummary
	}
	return "Experienced professional focusing on " + strings.Join(keywords, ", ") + "."
}

// MergeSkills unions the skills already listed with job-description keywords and
// returns them as a single bullet line: deduplicated, sorted, at most 30.
// With nothing to list it returns a placeholder bullet.
func MergeSkills(existing []string, jobDescription string) string {
	set := make(map[string]bool)
	for _, token := range skillTokenPattern.FindAllString(strings.Join(existing, " "), -1) {
		set[strings.ToLower(token)] = true
	}
	for _, token := range parsing.Tokenize(jobDescription) {
		if len(token) > minKeywordLength {
			set[token] = true
		}
	}

	skills := make([]string, 0, len(set))
	for skill := range set {
		skills = append(skills, skill)
	}
	if len(skills) == 0 {
		return skillsPlaceholder
	}
	sort.Strings(skills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return bulletPrefix + strings.Join(skills, ", ")
}

// Bulletize prefixes a line with the bullet glyph, dropping one trailing period.
// Lines that already start with the glyph are returned unchanged.
func Bulletize(line string) string {
	if strings.HasPrefix(line, BulletGlyph) {
		return line
	}
	return bulletPrefix + strings.TrimSuffix(line, ".")
}

// BulletizeAll applies Bulletize to every line.
func BulletizeAll(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, Bulletize(line))
	}
	return result
}

// Assemble joins the refined sections in canonical order. Empty projects and
// education sections are omitted.
func Assemble(summary []string, skills string, experience, projects, education []string) string {
	var sb strings.Builder

	writeSection := func(heading string, lines []string) {
		sb.WriteString(heading)
		sb.WriteString("\n")
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	writeSection("Summary", summary)
	writeSection("Skills", []string{skills})
	if len(experience) > 0 {
		writeSection("Experience", experience)
	}
	if len(projects) > 0 {
		writeSection("Projects", projects)
	}
	if len(education) > 0 {
		writeSection("Education", education)
	}

	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}
