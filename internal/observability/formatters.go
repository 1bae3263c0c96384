package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, part := range wrapLine(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, part)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProgress outputs a single progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(step, filename, message string) {
	fmt.Fprintf(p.out, "[%s] %s: %s\n", step, filename, message)
}

// PrintScoreReport outputs a human-readable summary of a score report.
func (p *Printer) PrintScoreReport(filename string, report *types.ScoreReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ATS score:  %d / 100\n", report.ATSScore))
	sb.WriteString(fmt.Sprintf("Words:      %d\n", report.WordCount))
	sb.WriteString("\n")

	b := report.Breakdown
	sb.WriteString("Breakdown:\n")
	sb.WriteString(fmt.Sprintf("  Keywords    %3d\n", b.KeywordMatch))
	sb.WriteString(fmt.Sprintf("  Formatting  %3d\n", b.Formatting))
	sb.WriteString(fmt.Sprintf("  Sections    %3d\n", b.Sections))
	sb.WriteString(fmt.Sprintf("  Contact     %3d\n", b.Contact))
	sb.WriteString(fmt.Sprintf("  Length      %3d\n", b.Length))

	if email, ok := report.Extracted[types.ContactEmail]; ok {
		sb.WriteString(fmt.Sprintf("\nEmail: %s\n", email))
	}
	if phone, ok := report.Extracted[types.ContactPhone]; ok {
		sb.WriteString(fmt.Sprintf("Phone: %s\n", phone))
	}

	if len(report.MissingKeywords) > 0 {
		count := min(len(report.MissingKeywords), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("\nMissing keywords: %s\n", strings.Join(report.MissingKeywords[:count], ", ")))
		if len(report.MissingKeywords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  (+%d more)\n", len(report.MissingKeywords)-maxItemsToShow))
		}
	}

	if len(report.TopKeywords) > 0 {
		count := min(len(report.TopKeywords), maxItemsToShow)
		parts := make([]string, 0, count)
		for _, kw := range report.TopKeywords[:count] {
			parts = append(parts, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
		sb.WriteString(fmt.Sprintf("Top keywords: %s\n", strings.Join(parts, ", ")))
	}

	if len(report.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, suggestion := range report.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestion))
		}
	} else {
		sb.WriteString("\n✓ No suggestions\n")
	}

	p.printBox("ATS REPORT: "+filename, strings.TrimSuffix(sb.String(), "\n"))
}

// wrapLine splits line into pieces of at most width runes, breaking at the
// last space that fits and hard-breaking words longer than width.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	parts := make([]string, 0, 1)
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	return append(parts, string(runes))
}
