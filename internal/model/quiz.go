package model

import "time"

// Question is one generated multiple-choice item. Correct indexes into Options.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// Quiz is a transient, ordered list of questions. It is never persisted.
type Quiz []Question

// QuizResult records the score of one quiz submission.
type QuizResult struct {
	ID        int64     `json:"id"`
	Score     float64   `json:"score"`
	DateTaken time.Time `json:"date_taken"`
}
