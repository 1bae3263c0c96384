package rewriting

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// urlSchemePattern matches a URL scheme or a bare www. host anywhere in a token
var urlSchemePattern = regexp.MustCompile(`(?i)([a-z][a-z0-9+.\-]*://|^\W*www\.)`)

// Speller is a dictionary lookup and correction capability.
type Speller interface {
	// Available reports whether a dictionary is loaded.
	Available() bool
	// Known reports whether the lower-case word is in the dictionary.
	Known(word string) bool
	// Correct returns the best correction for a lower-case word, or "" when there is none.
	Correct(word string) (string, error)
}

// NoopSpeller is the default Speller: it knows nothing and corrects nothing.
type NoopSpeller struct{}

// Available implements Speller.
func (NoopSpeller) Available() bool { return false }

// Known implements Speller.
func (NoopSpeller) Known(string) bool { return true }

// Correct implements Speller.
func (NoopSpeller) Correct(string) (string, error) { return "", nil }

// CorrectLine spell-checks each space-separated token of line.
// Emails, links and tokens with digits pass through untouched, as does
// every token when the speller is unavailable.
func CorrectLine(line string, speller Speller, logger *zap.Logger) string {
	if speller == nil || !speller.Available() {
		return line
	}

	tokens := strings.Split(line, " ")
	for i, token := range tokens {
		tokens[i] = correctToken(token, speller, logger)
	}
	return strings.Join(tokens, " ")
}

func correctToken(token string, speller Speller, logger *zap.Logger) string {
	if strings.Contains(token, "@") || urlSchemePattern.MatchString(token) || strings.IndexFunc(token, unicode.IsDigit) >= 0 {
		return token
	}

	bare := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, token)
	if bare == "" {
		return token
	}

	// the letter core runs from the first to the last letter; a core with
	// inner punctuation ("don't", "e-mail") is left alone
	start := strings.IndexFunc(token, unicode.IsLetter)
	end := strings.LastIndexFunc(token, unicode.IsLetter)
	_, lastSize := utf8.DecodeRuneInString(token[end:])
	core := token[start : end+lastSize]
	if len(core) != len(bare) {
		return token
	}

	lower := strings.ToLower(bare)
	if speller.Known(lower) {
		return token
	}

	correction, err := speller.Correct(lower)
	if err != nil {
		logger.Debug("spelling correction failed", zap.String("word", lower), zap.Error(err))
		return token
	}
	if correction == "" || correction == lower {
		return token
	}

	return token[:start] + matchCase(core, correction) + token[end+lastSize:]
}

// matchCase applies the capitalization pattern of original to replacement.
func matchCase(original, replacement string) string {
	letters := []rune(original)
	if len(letters) > 1 && strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if unicode.IsUpper(letters[0]) {
		r := []rune(replacement)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return replacement
}
