package mocks

import (
	"context"

	"studyquiz/internal/model"
	"studyquiz/internal/service"

	"github.com/stretchr/testify/mock"
)

var _ service.QuizService = (*MockQuizService)(nil)

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Generate(ctx context.Context, docID int64) (model.Quiz, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Quiz), args.Error(1)
}

func (m *MockQuizService) Submit(ctx context.Context, sub service.Submission) (*service.SubmitResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockQuizService) ListResults(ctx context.Context, limit, offset int) (*service.QuizResultListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuizResultListResult), args.Error(1)
}
