package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"id", "owner_id", "name", "headline", "email", "school", "company",
	"seniority", "profile_url", "resume_file_id", "resume_file_name",
	"skills", "interests", "topics", "available_now", "hackathon",
	"source", "status", "enriched_at", "created_at", "updated_at",
}

type postgresProfileRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepo(db *pgxpool.Pool) profile.Repository {
	return &postgresProfileRepo{db: db}
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Headline,
		&p.Email,
		&p.School,
		&p.Company,
		&p.Seniority,
		&p.ProfileURL,
		&p.ResumeFileID,
		&p.ResumeFileName,
		&p.Skills,
		&p.Interests,
		&p.Topics,
		&p.AvailableNow,
		&p.Hackathon,
		&p.Source,
		&p.Status,
		&p.EnrichedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Topics == nil {
		p.Topics = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	query, args, err := psql.Insert("profiles").
		Columns(profileColumns...).
		Values(
			p.ID, p.OwnerID, p.Name, p.Headline, p.Email, p.School, p.Company,
			p.Seniority, p.ProfileURL, p.ResumeFileID, p.ResumeFileName,
			p.Skills, p.Interests, p.Topics, p.AvailableNow, p.Hackathon,
			p.Source, p.Status, p.EnrichedAt, p.CreatedAt, p.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	query, args, err := psql.Update("profiles").
		Set("name", p.Name).
		Set("headline", p.Headline).
		Set("email", p.Email).
		Set("school", p.School).
		Set("company", p.Company).
		Set("seniority", p.Seniority).
		Set("profile_url", p.ProfileURL).
		Set("resume_file_id", p.ResumeFileID).
		Set("resume_file_name", p.ResumeFileName).
		Set("skills", p.Skills).
		Set("interests", p.Interests).
		Set("topics", p.Topics).
		Set("available_now", p.AvailableNow).
		Set("hackathon", p.Hackathon).
		Set("source", p.Source).
		Set("status", p.Status).
		Set("enriched_at", p.EnrichedAt).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", p.ID.String())
	}
	return nil
}

func (r *postgresProfileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status profile.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return apperror.NewInternal("failed to update profile status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", id.String())
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", id.String())
	}
	return nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile select", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*profile.Profile, error) {
	if len(ids) == 0 {
		return []*profile.Profile{}, nil
	}

	query, args, err := psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count profiles", err)
	}
	return count, nil
}
