package rewriting

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sajari/fuzzy"
)

// FuzzySpeller is a Speller backed by a sajari/fuzzy model trained on a word list.
type FuzzySpeller struct {
	model *fuzzy.Model
	known map[string]struct{}
}

// NewFuzzySpeller trains a model on the given dictionary words.
func NewFuzzySpeller(words []string) *FuzzySpeller {
	known := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if _, dup := known[word]; dup {
			continue
		}
		known[word] = struct{}{}
		terms = append(terms, word)
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(terms)

	return &FuzzySpeller{model: model, known: known}
}

// LoadFuzzySpeller reads a newline-separated word list and trains a FuzzySpeller on it.
func LoadFuzzySpeller(path string) (*FuzzySpeller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	words := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	return NewFuzzySpeller(words), nil
}

// Available implements Speller.
func (s *FuzzySpeller) Available() bool {
	return s != nil && s.model != nil && len(s.known) > 0
}

// Known implements Speller.
func (s *FuzzySpeller) Known(word string) bool {
	_, ok := s.known[word]
	return ok
}

// Correct implements Speller.
func (s *FuzzySpeller) Correct(word string) (string, error) {
	return s.model.SpellCheck(word), nil
}
