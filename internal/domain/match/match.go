package match

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Feedback string

const (
	FeedbackGood Feedback = "good"
	FeedbackMeh  Feedback = "meh"
	FeedbackBad  Feedback = "bad"
)

func (f Feedback) Valid() bool {
	switch f {
	case FeedbackGood, FeedbackMeh, FeedbackBad:
		return true
	}
	return false
}

// MatchLog is an append-only record of a served ranking and any feedback the
// user later gave on it. Records are never mutated; the admin clear operation
// deletes them wholesale.
type MatchLog struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CandidateID  uuid.UUID `json:"candidate_id"`
	ScoreVector  float64   `json:"score_vector"`
	ScoreKeyword float64   `json:"score_keyword"`
	ScoreBlended float64   `json:"score_blended"`
	Rationale    string    `json:"rationale"`
	Feedback     Feedback  `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

type Intro struct {
	ID        uuid.UUID `json:"id"`
	FromID    uuid.UUID `json:"from_id"`
	ToID      uuid.UUID `json:"to_id"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackCounts struct {
	Good int `json:"good"`
	Meh  int `json:"meh"`
	Bad  int `json:"bad"`
}

type LogRepository interface {
	Save(ctx context.Context, log *MatchLog) error
	CountServed(ctx context.Context) (int, error)
	CountFeedback(ctx context.Context) (FeedbackCounts, error)
	DeleteAll(ctx context.Context) (int, error)
}

type IntroRepository interface {
	Save(ctx context.Context, intro *Intro) error
}
