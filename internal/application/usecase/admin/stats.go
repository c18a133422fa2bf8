package admin

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/internal/domain/profile"
)

var tracer = otel.Tracer("admin_usecase")

type GetStatsUseCase struct {
	profileRepo profile.Repository
	logRepo     match.LogRepository
}

func NewGetStatsUseCase(profileRepo profile.Repository, logRepo match.LogRepository) *GetStatsUseCase {
	return &GetStatsUseCase{profileRepo: profileRepo, logRepo: logRepo}
}

type StatsOutput struct {
	Profiles      int                  `json:"profiles"`
	MatchesServed int                  `json:"matchesServed"`
	Feedback      match.FeedbackCounts `json:"feedback"`
	PositiveRate  float64              `json:"positiveRate"`
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	ctx, span := tracer.Start(ctx, "GetStats")
	defer span.End()

	profiles, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	served, err := uc.logRepo.CountServed(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := uc.logRepo.CountFeedback(ctx)
	if err != nil {
		return nil, err
	}

	total := feedback.Good + feedback.Meh + feedback.Bad
	rate := 0.0
	if total > 0 {
		rate = float64(feedback.Good) / float64(total)
	}

	return &StatsOutput{
		Profiles:      profiles,
		MatchesServed: served,
		Feedback:      feedback,
		PositiveRate:  rate,
	}, nil
}
