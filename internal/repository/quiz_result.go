package repository

import (
	"context"

	"studyquiz/internal/model"
)

// QuizResultRepository persists quiz scores. Rows are append-only.
type QuizResultRepository interface {
	Create(ctx context.Context, res *model.QuizResult) (*model.QuizResult, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.QuizResult], error)
}
