// Package quiz builds mock multiple-choice quizzes from document text.
package quiz

import (
	"fmt"

	"studyquiz/internal/model"
	"studyquiz/internal/sentence"
)

const (
	// DefaultMaxQuestions is also the upper bound on questions per quiz.
	DefaultMaxQuestions  = 5
	DefaultSnippetLength = 60

	// CorrectOption is the index of the correct answer in every generated question.
	CorrectOption = 0
)

// OptionLabels are the placeholder answers offered for every question.
var OptionLabels = [4]string{"Option A", "Option B", "Option C", "Option D"}

// Generator turns the leading sentences of a document into questions.
type Generator struct {
	splitter      sentence.Splitter
	maxQuestions  int
	snippetLength int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxQuestions caps the number of questions per quiz.
// Values above DefaultMaxQuestions are clamped to it.
func WithMaxQuestions(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxQuestions = min(n, DefaultMaxQuestions)
		}
	}
}

// WithSnippetLength sets how many characters of a sentence are quoted in the question.
func WithSnippetLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.snippetLength = n
		}
	}
}

// NewGenerator creates a Generator with the default limits unless overridden.
func NewGenerator(splitter sentence.Splitter, opts ...Option) *Generator {
	g := &Generator{
		splitter:      splitter,
		maxQuestions:  DefaultMaxQuestions,
		snippetLength: DefaultSnippetLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds one question per sentence for the first sentences of doc, in order.
// A document without sentences yields an empty quiz.
func (g *Generator) Generate(doc *model.Document) model.Quiz {
	quiz := make(model.Quiz, 0, g.maxQuestions)
	if doc == nil {
		return quiz
	}

	sentences := g.splitter.Split(doc.Content)
	if len(sentences) > g.maxQuestions {
		sentences = sentences[:g.maxQuestions]
	}

	for _, s := range sentences {
		quiz = append(quiz, model.Question{
			Question: fmt.Sprintf("What is the main idea of this sentence? \"%s...\"", snippet(s, g.snippetLength)),
			Options:  append([]string(nil), OptionLabels[:]...),
			Correct:  CorrectOption,
		})
	}
	return quiz
}

// snippet returns the first n characters of s, counting runes rather than bytes.
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
