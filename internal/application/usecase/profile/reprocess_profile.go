package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type ReprocessProfileUseCase struct {
	profileRepo profile.Repository
	runner      service.PipelineRunner
}

func NewReprocessProfileUseCase(repo profile.Repository, runner service.PipelineRunner) *ReprocessProfileUseCase {
	return &ReprocessProfileUseCase{profileRepo: repo, runner: runner}
}

// Execute schedules a fresh pipeline run for an existing profile. Running on
// unchanged input is safe: the pipeline is idempotent, only timestamps move.
func (uc *ReprocessProfileUseCase) Execute(ctx context.Context, callerID, profileID uuid.UUID) error {
	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return apperror.NewPermissionDenied("profile belongs to another user")
	}

	_, err = uc.runner.Enqueue(ctx, p.ID)
	return err
}
