package match

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type RequestIntroUseCase struct {
	profileRepo profile.Repository
	introRepo   match.IntroRepository
	icebreakers *Icebreakers
}

func NewRequestIntroUseCase(profileRepo profile.Repository, introRepo match.IntroRepository, icebreakers *Icebreakers) *RequestIntroUseCase {
	return &RequestIntroUseCase{
		profileRepo: profileRepo,
		introRepo:   introRepo,
		icebreakers: icebreakers,
	}
}

type RequestIntroInput struct {
	CallerID      uuid.UUID
	FromProfileID uuid.UUID
	ToProfileID   uuid.UUID
}

type RequestIntroOutput struct {
	Message   string `json:"message"`
	Rationale string `json:"rationale"`
}

// Execute drafts an icebreaker from the caller's profile to a candidate and
// records the intro.
func (uc *RequestIntroUseCase) Execute(ctx context.Context, input RequestIntroInput) (*RequestIntroOutput, error) {
	if input.FromProfileID == input.ToProfileID {
		return nil, apperror.NewInvalidInput("cannot request an intro to the same profile", nil)
	}

	from, err := uc.profileRepo.FindByID(ctx, input.FromProfileID)
	if err != nil {
		return nil, err
	}
	if from.OwnerID != input.CallerID {
		return nil, apperror.NewPermissionDenied("profile belongs to another user")
	}

	to, err := uc.profileRepo.FindByID(ctx, input.ToProfileID)
	if err != nil {
		return nil, err
	}

	message := uc.icebreakers.Opener(from, to)
	rationale := uc.icebreakers.Rationale(from, to)

	err = uc.introRepo.Save(ctx, &match.Intro{
		ID:        uuid.New(),
		FromID:    from.ID,
		ToID:      to.ID,
		Message:   message,
		Delivered: false,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &RequestIntroOutput{Message: message, Rationale: rationale}, nil
}
