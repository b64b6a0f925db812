package mocks

import (
	"context"

	"studyquiz/internal/model"
	"studyquiz/internal/repository"

	"github.com/stretchr/testify/mock"
)

var _ repository.QuizResultRepository = (*MockQuizResultRepository)(nil)

type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) Create(ctx context.Context, res *model.QuizResult) (*model.QuizResult, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.QuizResult], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.QuizResult]), args.Error(1)
}
