package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

type CreateProfileUseCase struct {
	profileRepo profile.Repository
	runner      service.PipelineRunner
	logger      logger.Logger
}

func NewCreateProfileUseCase(repo profile.Repository, runner service.PipelineRunner, log logger.Logger) *CreateProfileUseCase {
	return &CreateProfileUseCase{profileRepo: repo, runner: runner, logger: log}
}

type CreateProfileInput struct {
	OwnerID        uuid.UUID
	Name           string
	Headline       string
	Email          string
	School         string
	Company        string
	Seniority      string
	ProfileURL     string
	ResumeFileID   *uuid.UUID
	ResumeFileName string
	Skills         []string
	Interests      []string
	Topics         []string
	AvailableNow   bool
	Hackathon      string
}

// Execute stores the profile in pending state and schedules a pipeline run.
// The caller gets the record back immediately; processing happens out of
// band and is observable on the progress stream.
func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "CreateProfile")
	defer span.End()

	if input.Name == "" && input.ResumeFileID == nil && input.ProfileURL == "" {
		return nil, apperror.NewInvalidInput("a name, resume or profile URL is required", nil)
	}

	source := ""
	switch {
	case input.ResumeFileID != nil:
		source = "resume"
	case input.ProfileURL != "":
		source = "linkedin"
	}

	now := time.Now().UTC()
	p := &profile.Profile{
		ID:             uuid.New(),
		OwnerID:        input.OwnerID,
		Name:           input.Name,
		Headline:       input.Headline,
		Email:          input.Email,
		School:         input.School,
		Company:        input.Company,
		Seniority:      input.Seniority,
		ProfileURL:     input.ProfileURL,
		ResumeFileID:   input.ResumeFileID,
		ResumeFileName: input.ResumeFileName,
		Skills:         normalize.List(input.Skills),
		Interests:      normalize.List(input.Interests),
		Topics:         normalize.List(input.Topics),
		AvailableNow:   input.AvailableNow,
		Hackathon:      input.Hackathon,
		Source:         source,
		Status:         profile.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.profileRepo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if _, err := uc.runner.Enqueue(ctx, p.ID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}
