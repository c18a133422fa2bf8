package admin

import (
	"context"

	"github.com/hinderhq/hinder/internal/domain/match"
)

type ClearFeedbackUseCase struct {
	logRepo match.LogRepository
}

func NewClearFeedbackUseCase(logRepo match.LogRepository) *ClearFeedbackUseCase {
	return &ClearFeedbackUseCase{logRepo: logRepo}
}

// Execute deletes every match log record. Profiles are untouched; this is
// the corrective reset, not a data wipe.
func (uc *ClearFeedbackUseCase) Execute(ctx context.Context) (int, error) {
	return uc.logRepo.DeleteAll(ctx)
}
