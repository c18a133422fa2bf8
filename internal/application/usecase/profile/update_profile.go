package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type UpdateProfileUseCase struct {
	profileRepo profile.Repository
	runner      service.PipelineRunner
}

func NewUpdateProfileUseCase(repo profile.Repository, runner service.PipelineRunner) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: repo, runner: runner}
}

// UpdateProfileInput carries a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	CallerID  uuid.UUID
	ProfileID uuid.UUID

	Name         *string
	Headline     *string
	Email        *string
	School       *string
	Company      *string
	Seniority    *string
	Skills       *[]string
	Interests    *[]string
	Topics       *[]string
	AvailableNow *bool
	Hackathon    *string
}

// Execute applies the patch and replays the pipeline so the indexed vector
// tracks the edited content.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != input.CallerID {
		return nil, apperror.NewPermissionDenied("profile belongs to another user")
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Headline != nil {
		p.Headline = *input.Headline
	}
	if input.Email != nil {
		p.Email = *input.Email
	}
	if input.School != nil {
		p.School = *input.School
	}
	if input.Company != nil {
		p.Company = *input.Company
	}
	if input.Seniority != nil {
		p.Seniority = *input.Seniority
	}
	if input.Skills != nil {
		p.Skills = normalize.List(*input.Skills)
	}
	if input.Interests != nil {
		p.Interests = normalize.List(*input.Interests)
	}
	if input.Topics != nil {
		p.Topics = normalize.List(*input.Topics)
	}
	if input.AvailableNow != nil {
		p.AvailableNow = *input.AvailableNow
	}
	if input.Hackathon != nil {
		p.Hackathon = *input.Hackathon
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if _, err := uc.runner.Enqueue(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}
