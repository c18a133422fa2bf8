package upload

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Upload is a stored resume PDF. Read-only after creation; deletion cascades
// from the owning profile.
type Upload struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	PublicID  string    `json:"public_id"`
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	Mime      string    `json:"mime"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, u *Upload) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Upload, error)
}
