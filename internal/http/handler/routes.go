package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studyquiz/internal/service"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	DB           *sql.DB
	Documents    service.DocumentService
	Quiz         service.QuizService
	MaxQuestions int
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; validation and persistence live in the services.
func RegisterRoutes(app *fiber.App, svc Services, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	app.Get("/", Index(svc.MaxQuestions, log))

	app.Post("/upload", UploadDocument(svc.Documents, log))
	app.Get("/generate_quiz/:doc_id", GenerateQuiz(svc.Quiz, log))
	app.Post("/submit_quiz", SubmitQuiz(svc.Quiz, log))

	app.Get("/documents", ListDocuments(svc.Documents, log))
	app.Get("/documents/:id", GetDocument(svc.Documents, log))
	app.Get("/documents/:id/download", DownloadDocument(svc.Documents, log))
	app.Delete("/documents/:id", DeleteDocument(svc.Documents, log))

	app.Get("/quiz_results", ListQuizResults(svc.Quiz, log))

	app.Get("/health", HealthCheck(svc.DB))
	app.Get("/healthz", LivenessProbe())
}
