package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateEntry(ctx context.Context, entry *Entry) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateEntry(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO audit_logs (id, document_id, user_id, action, ip, created_at)
		VALUES (:id, :document_id, :user_id, :action, :ip, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, entry)
	return err
}

func (r *postgresRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM audit_logs WHERE document_id = $1 ORDER BY created_at DESC", documentID)
	return entries, err
}
