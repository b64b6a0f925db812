// Package sentence splits plain text into sentences with the Punkt algorithm.
package sentence

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter breaks text into an ordered list of sentences.
type Splitter interface {
	Split(text string) []string
}

// PunktSplitter uses the English Punkt model bundled with neurosnap/sentences.
// Abbreviations such as "Dr." and decimal numbers do not end a sentence.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

var _ Splitter = (*PunktSplitter)(nil)

// NewPunktSplitter loads the embedded English training data. No network access is needed.
func NewPunktSplitter() (*PunktSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english sentence model: %w", err)
	}
	return &PunktSplitter{tokenizer: tok}, nil
}

// Split returns the trimmed, non-empty sentences of text in their original order.
func (s *PunktSplitter) Split(text string) []string {
	out := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return out
	}
	for _, sent := range s.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(sent.Text)
		if t == "" {
			continue
		}
		// Punkt reads a lone capital followed by a period as an initial and
		// joins it to what follows; a run made only of such letters is split.
		if fields := strings.Fields(t); len(fields) > 1 && allLetterSentences(fields) {
			out = append(out, fields...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// allLetterSentences reports whether every field is a single letter ending in a period, like "B.".
func allLetterSentences(fields []string) bool {
	for _, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		if !unicode.IsLetter(r) || f[size:] != "." {
			return false
		}
	}
	return true
}
