package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"studyquiz/internal/service"
)

const documentNotFound = "Document not found"

// uploadResponse is returned after a successful upload.
type uploadResponse struct {
	Message string `json:"message"`
	DocID   int64  `json:"doc_id"`
}

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parsePage reads limit and offset query parameters. Out-of-range values are clamped by the service.
// A non-empty code reports which parameter is malformed.
func parsePage(c *fiber.Ctx) (limit, offset int, code, message string) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, "INVALID_LIMIT", "invalid limit"
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, "INVALID_OFFSET", "invalid offset"
	}
	return limit, offset, "", ""
}

// UploadDocument accepts a multipart .txt upload in the "file" field.
//
// @Summary Upload a text document
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "UTF-8 .txt file"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Router /upload [post]
func UploadDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || fh.Filename == "" {
			return writeError(c, fiber.StatusBadRequest, service.CodeFilenameRequired, "No file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, fh.Header.Get(fiber.HeaderContentType))
		if err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		return c.Status(fiber.StatusOK).JSON(uploadResponse{
			Message: "File uploaded successfully",
			DocID:   doc.ID,
		})
	}
}

// ListDocuments returns stored documents, newest first.
//
// @Summary List documents
// @Tags documents
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, code, msg := parsePage(c)
		if code != "" {
			return writeError(c, fiber.StatusBadRequest, code, msg)
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		return c.JSON(res)
	}
}

// GetDocument returns a single document including its content.
//
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path int true "document id"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its archived upload.
//
// @Summary Delete a document
// @Tags documents
// @Param id path int true "document id"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, log, err, documentNotFound)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument streams the archived raw upload.
//
// @Summary Download the original upload
// @Tags documents
// @Produce plain
// @Param id path int true "document id"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /documents/{id}/download [get]
func DownloadDocument(docSvc service.DocumentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		dl, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err, "Archived file not found")
		}

		c.Attachment(dl.Filename)
		c.Set(fiber.HeaderContentType, dl.ContentType)
		size := int(dl.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes the stream once the body is written
		return c.SendStream(dl.Body, size)
	}
}
