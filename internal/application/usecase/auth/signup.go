package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/domain/user"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/auth"
	"github.com/hinderhq/hinder/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

type SignupUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignupUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SignupOutput struct {
	UserID      uuid.UUID
	AccessToken string
}

func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	ctx, span := tracer.Start(ctx, "Signup")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewInvalidInput("a valid email is required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Save(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &SignupOutput{UserID: u.ID, AccessToken: token}, nil
}
