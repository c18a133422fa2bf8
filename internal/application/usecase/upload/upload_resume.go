package upload

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/upload"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

var tracer = otel.Tracer("upload_usecase")

const maxResumeSize = 10 << 20 // 10 MiB

type UploadResumeUseCase struct {
	uploadRepo upload.Repository
	uploader   service.Uploader
	logger     logger.Logger
}

func NewUploadResumeUseCase(repo upload.Repository, uploader service.Uploader, log logger.Logger) *UploadResumeUseCase {
	return &UploadResumeUseCase{uploadRepo: repo, uploader: uploader, logger: log}
}

type UploadResumeInput struct {
	OwnerID  uuid.UUID
	File     io.Reader
	FileName string
	Mime     string
	Size     int64
}

func (uc *UploadResumeUseCase) Execute(ctx context.Context, input UploadResumeInput) (*upload.Upload, error) {
	ctx, span := tracer.Start(ctx, "UploadResume")
	defer span.End()

	if input.Mime != "application/pdf" {
		return nil, apperror.NewInvalidInput("only PDF resumes are accepted", nil)
	}
	if input.Size <= 0 || input.Size > maxResumeSize {
		return nil, apperror.NewInvalidInput("resume must be between 1 byte and 10 MiB", nil)
	}

	id := uuid.New()
	publicID := "resumes/" + id.String()

	url, err := uc.uploader.Upload(ctx, input.File, "resumes", id.String())
	if err != nil {
		uc.logger.Error("Failed to store resume", err, zap.String("owner_id", input.OwnerID.String()))
		return nil, apperror.NewInternal("failed to store resume", err)
	}

	u := &upload.Upload{
		ID:        id,
		OwnerID:   input.OwnerID,
		PublicID:  publicID,
		URL:       url,
		FileName:  input.FileName,
		Mime:      input.Mime,
		Size:      input.Size,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.uploadRepo.Save(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return u, nil
}
