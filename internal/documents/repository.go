package documents

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocumentByID(ctx context.Context, id uuid.UUID) (*Document, error)
	ListDocumentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateDocument(ctx context.Context, doc *Document) error {
	query := `
		INSERT INTO documents (
			id, owner_id, file_name, original_name, path, size, page_width, page_height, uploaded_at
		) VALUES (
			:id, :owner_id, :file_name, :original_name, :path, :size, :page_width, :page_height, :uploaded_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, doc)
	return err
}

func (r *postgresRepository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &doc, err
}

func (r *postgresRepository) ListDocumentsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Document, error) {
	var docs []Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents WHERE owner_id = $1 ORDER BY uploaded_at DESC", ownerID)
	return docs, err
}

func (r *postgresRepository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	// Signatures and audit rows go with the document via ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	return err
}
