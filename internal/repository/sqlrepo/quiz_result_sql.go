package sqlrepo

import (
	"context"
	"database/sql"

	"studyquiz/internal/model"
	"studyquiz/internal/repository"
)

// QuizResultSQL is a database/sql implementation of repository.QuizResultRepository.
type QuizResultSQL struct {
	db *sql.DB
}

// NewQuizResultSQL creates a new QuizResultSQL repository.
func NewQuizResultSQL(db *sql.DB) *QuizResultSQL {
	return &QuizResultSQL{db: db}
}

var _ repository.QuizResultRepository = (*QuizResultSQL)(nil)

// Create inserts a result row. The score is stored as given.
func (r *QuizResultSQL) Create(ctx context.Context, res *model.QuizResult) (*model.QuizResult, error) {
	const q = `
		INSERT INTO quiz_results (score, date_taken)
		VALUES ($1, $2)
		RETURNING id
	`
	out := *res
	if err := r.db.QueryRowContext(ctx, q, res.Score, res.DateTaken).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns results newest first.
func (r *QuizResultSQL) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.QuizResult], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_results`).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, score, date_taken
		FROM quiz_results
		ORDER BY date_taken DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.QuizResult, 0)
	for rows.Next() {
		var qr model.QuizResult
		if err := rows.Scan(&qr.ID, &qr.Score, &qr.DateTaken); err != nil {
			return nil, err
		}
		items = append(items, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.QuizResult]{Items: items, Total: total}, nil
}
