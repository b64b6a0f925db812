package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studyquiz/internal/model"
	"studyquiz/internal/service"
)

type quizResponse struct {
	Quiz model.Quiz `json:"quiz"`
}

// submitResponse flattens the stored result next to the confirmation message.
type submitResponse struct {
	Message string `json:"message"`
	*service.SubmitResult
}

// GenerateQuiz builds mock questions from the first sentences of a document.
//
// @Summary Generate a quiz for a document
// @Tags quiz
// @Produce json
// @Param doc_id path int true "document id"
// @Success 200 {object} quizResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /generate_quiz/{doc_id} [get]
func GenerateQuiz(quizSvc service.QuizService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "doc_id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		q, err := quizSvc.Generate(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		if q == nil {
			q = model.Quiz{}
		}
		return c.JSON(quizResponse{Quiz: q})
	}
}

// SubmitQuiz stores a quiz result. The body carries either a score or
// a doc_id with the chosen option index per question.
//
// @Summary Submit a quiz result
// @Tags quiz
// @Accept json
// @Produce json
// @Param submission body service.Submission true "score, or doc_id with answers"
// @Success 200 {object} submitResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /submit_quiz [post]
func SubmitQuiz(quizSvc service.QuizService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub service.Submission
		if err := json.Unmarshal(c.Body(), &sub); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "request body must be a JSON object")
		}

		res, err := quizSvc.Submit(c.UserContext(), sub)
		if err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		return c.JSON(submitResponse{
			Message:      "Quiz submitted successfully",
			SubmitResult: res,
		})
	}
}

// ListQuizResults returns stored quiz results, newest first.
//
// @Summary List quiz results
// @Tags quiz
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.QuizResultListResult
// @Failure 400 {object} errorPayload
// @Router /quiz_results [get]
func ListQuizResults(quizSvc service.QuizService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, code, msg := parsePage(c)
		if code != "" {
			return writeError(c, fiber.StatusBadRequest, code, msg)
		}

		res, err := quizSvc.ListResults(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, log, err, "resource not found")
		}
		return c.JSON(res)
	}
}
