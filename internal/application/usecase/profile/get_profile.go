package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
}

func NewGetProfileUseCase(repo profile.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, callerID, profileID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, apperror.NewPermissionDenied("profile belongs to another user")
	}
	return p, nil
}
