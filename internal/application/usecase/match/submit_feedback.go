package match

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type SubmitFeedbackUseCase struct {
	logRepo match.LogRepository
}

func NewSubmitFeedbackUseCase(logRepo match.LogRepository) *SubmitFeedbackUseCase {
	return &SubmitFeedbackUseCase{logRepo: logRepo}
}

type SubmitFeedbackInput struct {
	UserID      uuid.UUID
	CandidateID uuid.UUID
	Feedback    match.Feedback
}

// Execute appends a feedback record. Records are never mutated; each
// submission is a fresh row.
func (uc *SubmitFeedbackUseCase) Execute(ctx context.Context, input SubmitFeedbackInput) error {
	if !input.Feedback.Valid() {
		return apperror.NewInvalidInput("feedback must be one of good, meh, bad", nil)
	}

	return uc.logRepo.Save(ctx, &match.MatchLog{
		ID:          uuid.New(),
		UserID:      input.UserID,
		CandidateID: input.CandidateID,
		Feedback:    input.Feedback,
		CreatedAt:   time.Now().UTC(),
	})
}
