package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"studyquiz/internal/model"
	"studyquiz/internal/repository"
	"studyquiz/internal/storage"
)

const (
	// AllowedExtension is the only accepted upload type.
	AllowedExtension = ".txt"
	// MaxFilenameLength matches the width of the filename column in the original schema.
	MaxFilenameLength = 150
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// Download is an archived raw upload opened for reading. The caller closes Body.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates a plain-text upload, archives the raw bytes, and saves the document.
	// The archive is removed again if the database write fails.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string) (*model.Document, error)

	// Create stores a document from already-decoded content.
	Create(ctx context.Context, filename, content string) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Delete removes a document and its archived upload.
	Delete(ctx context.Context, id int64) error

	// Download opens the archived raw upload of a document.
	Download(ctx context.Context, id int64) (*Download, error)
}

// documentService is a concrete implementation of DocumentService.
// store may be nil, in which case uploads are not archived.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
	now   func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo, now: time.Now}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename string, contentType string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	name, err := validateFilename(filename)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, invalid(CodeInvalidEncoding, "File must be UTF-8 encoded text")
	}
	content := string(bytes.TrimPrefix(raw, utf8BOM))
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var key string
	if s.store != nil {
		key = filepath.ToSlash(filepath.Join("documents", uuid.New().String()+AllowedExtension))
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		if _, err := s.store.Put(ctx, key, bytes.NewReader(raw), storage.PutObjectOptions{
			Size:        int64(len(raw)),
			ContentType: contentType,
			Metadata: map[string]string{
				"original-filename": name,
			},
		}); err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		Filename:    name,
		Content:     content,
		StoragePath: key,
		UploadDate:  s.now().UTC(),
	})
	if err != nil {
		if key == "" {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Create(ctx context.Context, filename, content string) (*model.Document, error) {
	name, err := validateFilename(filename)
	if err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Document{
		Filename:   name,
		Content:    content,
		UploadDate: s.now().UTC(),
	})
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	pq := normalizePage(limit, offset)
	res, err := s.repo.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes the archived upload first, then the record.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// keep the row if the archive cannot be removed so the path is not lost
	if s.store != nil && doc.StoragePath != "" {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Download(ctx context.Context, id int64) (*Download, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.store == nil || doc.StoragePath == "" {
		return nil, ErrNotFound
	}
	body, info, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}
	ct := info.ContentType
	if ct == "" {
		ct = "text/plain; charset=utf-8"
	}
	return &Download{Body: body, Filename: doc.Filename, ContentType: ct, Size: info.Size}, nil
}

func validateFilename(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", invalid(CodeFilenameRequired, "No file uploaded")
	}
	if filepath.Ext(name) != AllowedExtension {
		return "", invalid(CodeUnsupportedFileType, "Only .txt files supported")
	}
	if utf8.RuneCountInString(name) > MaxFilenameLength {
		return "", invalid(CodeFilenameTooLong, fmt.Sprintf("Filename must be at most %d characters", MaxFilenameLength))
	}
	return name, nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return invalid(CodeEmptyContent, "File is empty")
	}
	return nil
}

func normalizePage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
