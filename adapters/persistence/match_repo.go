package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type postgresMatchLogRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMatchLogRepo(db *pgxpool.Pool) match.LogRepository {
	return &postgresMatchLogRepo{db: db}
}

func (r *postgresMatchLogRepo) Save(ctx context.Context, log *match.MatchLog) error {
	query := `
		INSERT INTO match_logs
			(id, user_id, candidate_id, score_vector, score_keyword, score_blended, rationale, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`
	_, err := r.db.Exec(ctx, query,
		log.ID, log.UserID, log.CandidateID,
		log.ScoreVector, log.ScoreKeyword, log.ScoreBlended,
		log.Rationale, string(log.Feedback), log.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save match log", err)
	}
	return nil
}

func (r *postgresMatchLogRepo) CountServed(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM match_logs`).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count match logs", err)
	}
	return count, nil
}

func (r *postgresMatchLogRepo) CountFeedback(ctx context.Context) (match.FeedbackCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE feedback = 'good'),
			COUNT(*) FILTER (WHERE feedback = 'meh'),
			COUNT(*) FILTER (WHERE feedback = 'bad')
		FROM match_logs
	`
	var counts match.FeedbackCounts
	if err := r.db.QueryRow(ctx, query).Scan(&counts.Good, &counts.Meh, &counts.Bad); err != nil {
		return match.FeedbackCounts{}, apperror.NewInternal("failed to count feedback", err)
	}
	return counts, nil
}

func (r *postgresMatchLogRepo) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM match_logs`)
	if err != nil {
		return 0, apperror.NewInternal("failed to clear match logs", err)
	}
	return int(tag.RowsAffected()), nil
}

type postgresIntroRepo struct {
	db *pgxpool.Pool
}

func NewPostgresIntroRepo(db *pgxpool.Pool) match.IntroRepository {
	return &postgresIntroRepo{db: db}
}

func (r *postgresIntroRepo) Save(ctx context.Context, intro *match.Intro) error {
	query := `
		INSERT INTO intros (id, from_id, to_id, message, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		intro.ID, intro.FromID, intro.ToID, intro.Message, intro.Delivered, intro.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save intro", err)
	}
	return nil
}
