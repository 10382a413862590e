package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*TaskRepo
	*AnnotationRepo
	*LabelRepo
	*UploadRepo

	// conn is nil for a Repository bound to a transaction
	conn *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	r := bind(db)
	r.conn = db
	return r
}

func bind(db DBTX) *Repository {
	return &Repository{
		ProjectRepo:    &ProjectRepo{db: db},
		TaskRepo:       &TaskRepo{db: db},
		AnnotationRepo: &AnnotationRepo{db: db},
		LabelRepo:      &LabelRepo{db: db},
		UploadRepo:     &UploadRepo{db: db},
	}
}

// WithTx runs fn against a DataStore bound to one transaction. Nested calls
// join the outer transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(DataStore) error) error {
	if r.conn == nil {
		return fn(r)
	}
	return withTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(bind(tx))
	})
}
