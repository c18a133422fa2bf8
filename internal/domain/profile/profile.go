package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusParsing   Status = "parsing"
	StatusEmbedding Status = "embedding"
	StatusReady     Status = "ready"
	StatusError     Status = "error"
)

var ErrInvalidStatus = errors.New("invalid profile status")

// validTransitions encodes the processing state machine. Any state may reset
// to pending (a re-run replays the full sequence), and error is reachable
// from the two in-flight states.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusParsing},
	StatusParsing:   {StatusEmbedding, StatusError, StatusPending},
	StatusEmbedding: {StatusReady, StatusError, StatusPending},
	StatusReady:     {StatusPending},
	StatusError:     {StatusPending},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusParsing, StatusEmbedding, StatusReady, StatusError:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is a legal step; no
// transition may skip a state.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Profile struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Name           string     `json:"name"`
	Headline       string     `json:"headline"`
	Email          string     `json:"email"`
	School         string     `json:"school"`
	Company        string     `json:"company"`
	Seniority      string     `json:"seniority"`
	ProfileURL     string     `json:"profile_url"`
	ResumeFileID   *uuid.UUID `json:"resume_file_id"`
	ResumeFileName string     `json:"resume_file_name"`
	Skills         []string   `json:"skills"`
	Interests      []string   `json:"interests"`
	Topics         []string   `json:"topics"`
	AvailableNow   bool       `json:"available_now"`
	Hackathon      string     `json:"hackathon"`
	Source         string     `json:"source"` // resume | linkedin | ""
	Status         Status     `json:"status"`
	EnrichedAt     *time.Time `json:"enriched_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p *Profile) Validate() error {
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Summary builds the canonical text that is embedded and indexed for this
// profile. Two profiles with the same fields always produce the same summary.
func (p *Profile) Summary() string {
	return p.Name + " | " + p.Headline + " | " + join(p.Skills) + " | " + join(p.Topics)
}

func join(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

type Repository interface {
	Save(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Profile, error)
	Count(ctx context.Context) (int, error)
}
