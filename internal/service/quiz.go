package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"studyquiz/internal/model"
	"studyquiz/internal/quiz"
	"studyquiz/internal/repository"
)

// Submission is the /submit_quiz payload. Exactly one of Score or Answers is set;
// Answers must be accompanied by DocID so the quiz can be regenerated for grading.
type Submission struct {
	Score   *float64 `json:"score,omitempty"`
	DocID   *int64   `json:"doc_id,omitempty"`
	Answers []int    `json:"answers,omitempty"`
}

// SubmitResult describes the stored result. Correct and Total are set for graded answers.
type SubmitResult struct {
	ResultID int64   `json:"result_id"`
	Score    float64 `json:"score"`
	Correct  *int    `json:"correct,omitempty"`
	Total    *int    `json:"total,omitempty"`
}

// QuizResultListResult is the service-level DTO for paginated quiz results.
type QuizResultListResult struct {
	Items []model.QuizResult `json:"data"`
	Total int                `json:"total"`
}

// QuizService generates mock quizzes and records submissions.
type QuizService interface {
	// Generate builds the quiz for a stored document.
	Generate(ctx context.Context, docID int64) (model.Quiz, error)

	// Submit validates a submission, computes the score when answers are given, and stores it.
	// The stored result is not linked to the document.
	Submit(ctx context.Context, sub Submission) (*SubmitResult, error)

	// ListResults returns stored results, newest first.
	ListResults(ctx context.Context, limit, offset int) (*QuizResultListResult, error)
}

type quizService struct {
	docs      DocumentService
	results   repository.QuizResultRepository
	generator *quiz.Generator
	now       func() time.Time
}

// NewQuizService constructs a QuizService.
func NewQuizService(docs DocumentService, results repository.QuizResultRepository, generator *quiz.Generator) QuizService {
	return &quizService{docs: docs, results: results, generator: generator, now: time.Now}
}

func (s *quizService) Generate(ctx context.Context, docID int64) (model.Quiz, error) {
	doc, err := s.docs.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(doc), nil
}

func (s *quizService) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	out := &SubmitResult{}

	switch {
	case sub.Score != nil && len(sub.Answers) > 0:
		return nil, invalid(CodeAmbiguousSubmission, "Provide either score or answers, not both")
	case sub.Score != nil:
		score := *sub.Score
		if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
			return nil, invalid(CodeInvalidScore, "Score must be a finite, non-negative number")
		}
		out.Score = score
	case len(sub.Answers) > 0:
		if sub.DocID == nil {
			return nil, invalid(CodeDocIDRequired, "doc_id is required when submitting answers")
		}
		correct, total, err := s.grade(ctx, *sub.DocID, sub.Answers)
		if err != nil {
			return nil, err
		}
		out.Score = percentage(correct, total)
		out.Correct = &correct
		out.Total = &total
	default:
		return nil, invalid(CodeScoreRequired, "Either score or answers is required")
	}

	stored, err := s.results.Create(ctx, &model.QuizResult{
		Score:     out.Score,
		DateTaken: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}
	out.ResultID = stored.ID
	return out, nil
}

// grade regenerates the quiz for docID and counts answers matching the correct option.
// Unanswered trailing questions count as wrong.
func (s *quizService) grade(ctx context.Context, docID int64, answers []int) (correct, total int, err error) {
	q, err := s.Generate(ctx, docID)
	if err != nil {
		return 0, 0, err
	}
	if len(q) == 0 {
		return 0, 0, invalid(CodeEmptyQuiz, "Document has no quiz questions")
	}
	if len(answers) > len(q) {
		return 0, 0, invalid(CodeTooManyAnswers, fmt.Sprintf("Quiz has %d questions but %d answers were given", len(q), len(answers)))
	}
	for i, a := range answers {
		if a < 0 || a >= len(q[i].Options) {
			return 0, 0, invalid(CodeInvalidAnswer, fmt.Sprintf("Answer %d is out of range", i))
		}
		if a == q[i].Correct {
			correct++
		}
	}
	return correct, len(q), nil
}

// percentage returns 100*correct/total rounded to two decimal places.
func percentage(correct, total int) float64 {
	pct := decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
	f, _ := pct.Float64()
	return f
}

func (s *quizService) ListResults(ctx context.Context, limit, offset int) (*QuizResultListResult, error) {
	res, err := s.results.List(ctx, normalizePage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &QuizResultListResult{Items: res.Items, Total: res.Total}, nil
}
