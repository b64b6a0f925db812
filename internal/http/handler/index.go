package handler

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type indexData struct {
	Title        string
	MaxQuestions int
}

// Index renders the landing page with the upload form.
func Index(maxQuestions int, log *zap.Logger) fiber.Handler {
	data := indexData{Title: "Study Quiz", MaxQuestions: maxQuestions}
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := indexTemplate.Execute(&buf, data); err != nil {
			return writeServiceError(c, log, err, "")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}
