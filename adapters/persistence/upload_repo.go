package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hinderhq/hinder/internal/domain/upload"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type postgresUploadRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUploadRepo(db *pgxpool.Pool) upload.Repository {
	return &postgresUploadRepo{db: db}
}

func (r *postgresUploadRepo) Save(ctx context.Context, u *upload.Upload) error {
	query := `
		INSERT INTO uploads (id, owner_id, public_id, url, file_name, mime, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.OwnerID, u.PublicID, u.URL, u.FileName, u.Mime, u.Size, u.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save upload", err)
	}
	return nil
}

func (r *postgresUploadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete upload", err)
	}
	return nil
}

func (r *postgresUploadRepo) FindByID(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	query := `
		SELECT id, owner_id, public_id, url, file_name, mime, size, created_at
		FROM uploads WHERE id = $1
	`
	u := &upload.Upload{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.OwnerID, &u.PublicID, &u.URL, &u.FileName, &u.Mime, &u.Size, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("upload", id.String())
		}
		return nil, apperror.NewInternal("failed to scan upload row", err)
	}
	return u, nil
}
