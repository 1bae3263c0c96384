package rendering

import (
	"strings"

	"github.com/jonathan/ats-scorer/internal/types"
)

// BlockKind is the rendering instruction for one line.
type BlockKind string

// Block kinds understood by a DocumentWriter
const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindBullet    BlockKind = "bullet"
)

// bulletGlyph marks list items in refined text
const bulletGlyph = "•"

// Block is a single rendering instruction.
type Block struct {
	Kind BlockKind
	Text string
}

// headingNames holds every line that renders as a level-2 heading.
var headingNames = func() map[string]bool {
	names := map[string]bool{"summary": true, "skills": true}
	for _, keyword := range types.SectionKeywords {
		names[keyword] = true
	}
	return names
}()

// Plan converts refined text into rendering instructions, one block per line.
// Blank lines become empty paragraphs.
func Plan(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Kind: KindParagraph})
		case headingNames[strings.ToLower(trimmed)]:
			blocks = append(blocks, Block{Kind: KindHeading, Text: trimmed})
		case strings.HasPrefix(trimmed, bulletGlyph):
			blocks = append(blocks, Block{Kind: KindBullet, Text: trimmed})
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Text: trimmed})
		}
	}
	return blocks
}
