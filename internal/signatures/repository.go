package signatures

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateSignature(ctx context.Context, sig *Signature) error
	GetSignatureByID(ctx context.Context, id uuid.UUID) (*Signature, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error)
	UpdateStatus(ctx context.Context, sig *Signature) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateSignature(ctx context.Context, sig *Signature) error {
	query := `
		INSERT INTO signatures (
			id, document_id, user_id, x, y, page, value, font,
			status, reason, signed_at, signer_name, created_at, updated_at
		) VALUES (
			:id, :document_id, :user_id, :x, :y, :page, :value, :font,
			:status, :reason, :signed_at, :signer_name, :created_at, :updated_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, sig)
	return err
}

func (r *postgresRepository) GetSignatureByID(ctx context.Context, id uuid.UUID) (*Signature, error) {
	var sig Signature
	err := r.db.GetContext(ctx, &sig, "SELECT * FROM signatures WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &sig, err
}

func (r *postgresRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error) {
	var sigs []Signature
	err := r.db.SelectContext(ctx, &sigs,
		"SELECT * FROM signatures WHERE document_id = $1 ORDER BY created_at", documentID)
	return sigs, err
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, sig *Signature) error {
	query := `
		UPDATE signatures SET
			status = :status,
			reason = :reason,
			signed_at = :signed_at,
			updated_at = :updated_at
		WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, sig)
	return err
}
