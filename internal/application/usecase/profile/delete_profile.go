package profile

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/domain/upload"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

type DeleteProfileUseCase struct {
	profileRepo profile.Repository
	uploadRepo  upload.Repository
	uploader    service.Uploader
	vectorIndex service.VectorIndex
	logger      logger.Logger
}

func NewDeleteProfileUseCase(
	profileRepo profile.Repository,
	uploadRepo upload.Repository,
	uploader service.Uploader,
	vectorIndex service.VectorIndex,
	log logger.Logger,
) *DeleteProfileUseCase {
	return &DeleteProfileUseCase{
		profileRepo: profileRepo,
		uploadRepo:  uploadRepo,
		uploader:    uploader,
		vectorIndex: vectorIndex,
		logger:      log,
	}
}

// Execute removes the vector entry first, then the relational record, so a
// deleted profile cannot surface in match results through an orphaned vector.
// The resume blob is cleaned up last; a blob-cleanup failure is logged, not
// surfaced, since the profile itself is already gone.
func (uc *DeleteProfileUseCase) Execute(ctx context.Context, callerID, profileID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteProfile")
	defer span.End()

	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return apperror.NewPermissionDenied("profile belongs to another user")
	}

	if err := uc.vectorIndex.Delete(ctx, p.ID); err != nil {
		return err
	}
	if err := uc.profileRepo.Delete(ctx, p.ID); err != nil {
		return err
	}

	if p.ResumeFileID != nil {
		uc.cleanupResume(ctx, *p.ResumeFileID)
	}
	return nil
}

func (uc *DeleteProfileUseCase) cleanupResume(ctx context.Context, uploadID uuid.UUID) {
	rec, err := uc.uploadRepo.FindByID(ctx, uploadID)
	if err != nil {
		uc.logger.Warn("resume record lookup failed during cleanup",
			zap.String("upload_id", uploadID.String()), zap.Error(err))
		return
	}
	if err := uc.uploader.Delete(ctx, rec.PublicID); err != nil {
		uc.logger.Warn("resume blob cleanup failed",
			zap.String("upload_id", uploadID.String()), zap.Error(err))
	}
	if err := uc.uploadRepo.Delete(ctx, uploadID); err != nil {
		uc.logger.Warn("resume record cleanup failed",
			zap.String("upload_id", uploadID.String()), zap.Error(err))
	}
}
