package sqlrepo

import (
	"context"
	"database/sql"

	"studyquiz/internal/model"
	"studyquiz/internal/repository"
)

// DocumentSQL is a database/sql implementation of repository.DocumentRepository.
// Queries use $n placeholders, which both the pgx and modernc sqlite drivers accept.
type DocumentSQL struct {
	db *sql.DB
}

// NewDocumentSQL creates a new DocumentSQL repository.
func NewDocumentSQL(db *sql.DB) *DocumentSQL {
	return &DocumentSQL{db: db}
}

var _ repository.DocumentRepository = (*DocumentSQL)(nil)

// Create inserts a new document row and returns the stored record with its generated id.
func (r *DocumentSQL) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (filename, content, storage_path, upload_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	out := *doc
	if err := r.db.QueryRowContext(ctx, q,
		doc.Filename,
		doc.Content,
		doc.StoragePath,
		doc.UploadDate,
	).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentSQL) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT id, filename, content, storage_path, upload_date
		FROM documents
		WHERE id = $1
	`
	var d model.Document
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.Filename,
		&d.Content,
		&d.StoragePath,
		&d.UploadDate,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentSQL) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, filename, content, storage_path, upload_date
		FROM documents
		ORDER BY upload_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.Filename,
			&d.Content,
			&d.StoragePath,
			&d.UploadDate,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentSQL) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
