package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/domain/user"
)

type GetMeUseCase struct {
	userRepo user.Repository
}

func NewGetMeUseCase(repo user.Repository) *GetMeUseCase {
	return &GetMeUseCase{userRepo: repo}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return uc.userRepo.FindByID(ctx, userID)
}
