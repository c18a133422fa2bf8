package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/adapters/enrichment"
	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

var tracer = otel.Tracer("enrich_usecase")

const (
	rateLimitWindow      = 24 * time.Hour
	maxSubmissionRetries = 2
)

type EnrichProfileUseCase struct {
	profileRepo profile.Repository
	enricher    service.Enricher
	runner      service.PipelineRunner
	rdb         *redis.Client
	logger      logger.Logger
}

func NewEnrichProfileUseCase(
	profileRepo profile.Repository,
	enricher service.Enricher,
	runner service.PipelineRunner,
	rdb *redis.Client,
	log logger.Logger,
) *EnrichProfileUseCase {
	return &EnrichProfileUseCase{
		profileRepo: profileRepo,
		enricher:    enricher,
		runner:      runner,
		rdb:         rdb,
		logger:      log,
	}
}

type EnrichProfileInput struct {
	CallerID   uuid.UUID
	ProfileID  uuid.UUID
	ProfileURL string
}

// Execute accepts an enrichment request and performs the scrape out of band.
// One enrichment per profile per 24 hours; a second request inside the
// window is rejected with the next-allowed timestamp. The caller observes
// completion through the profile's pipeline run.
func (uc *EnrichProfileUseCase) Execute(ctx context.Context, input EnrichProfileInput) error {
	ctx, span := tracer.Start(ctx, "EnrichProfile")
	defer span.End()

	p, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return err
	}
	if p.OwnerID != input.CallerID {
		return apperror.NewPermissionDenied("profile belongs to another user")
	}

	url := input.ProfileURL
	if url == "" {
		url = p.ProfileURL
	}
	if url == "" {
		return apperror.NewInvalidInput("a profile URL is required", nil)
	}
	// Reject bad URLs before the rate-limit slot is consumed; a typo must
	// not burn the daily window.
	if err := enrichment.ValidateProfileURL(url); err != nil {
		return apperror.NewInvalidInput("invalid profile URL", err)
	}

	key := "enrich:" + p.ID.String()
	set, err := uc.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), rateLimitWindow).Result()
	if err != nil {
		return apperror.NewInternal("failed to check enrichment rate limit", err)
	}
	if !set {
		ttl, ttlErr := uc.rdb.TTL(ctx, key).Result()
		if ttlErr != nil || ttl < 0 {
			ttl = rateLimitWindow
		}
		return apperror.NewRateLimited("profile was enriched recently", time.Now().UTC().Add(ttl))
	}

	go uc.run(context.WithoutCancel(ctx), p.ID, url)
	return nil
}

func (uc *EnrichProfileUseCase) run(ctx context.Context, profileID uuid.UUID, url string) {
	var (
		enriched *service.EnrichedProfile
		err      error
	)
	// Submission failures are transient (throttling, a blip at the API
	// edge) and worth a couple more attempts. Anything past submission ran
	// the remote job; retrying it would double-scrape.
	for attempt := 0; ; attempt++ {
		enriched, err = uc.enricher.Enrich(ctx, url)
		if err == nil || attempt >= maxSubmissionRetries || !errors.Is(err, enrichment.ErrSubmissionFailed) {
			break
		}
		uc.logger.Warn("enrichment submission failed, retrying",
			zap.String("profile_id", profileID.String()),
			zap.Int("attempt", attempt+1), zap.Error(err))
	}
	if err != nil {
		// A failed enrichment is a no-op: existing profile content is
		// never touched. The rate-limit window stands.
		uc.logger.Warn("enrichment failed",
			zap.String("profile_id", profileID.String()), zap.Error(err))
		return
	}

	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		uc.logger.Warn("profile vanished during enrichment",
			zap.String("profile_id", profileID.String()), zap.Error(err))
		return
	}

	mergeEnriched(p, enriched, url)
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		uc.logger.Error("failed to store enriched profile", err,
			zap.String("profile_id", profileID.String()))
		return
	}

	if _, err := uc.runner.Enqueue(ctx, p.ID); err != nil {
		uc.logger.Error("failed to schedule post-enrichment run", err,
			zap.String("profile_id", profileID.String()))
	}
}

// mergeEnriched follows the same rule as extraction merges: scalars keep
// existing values, sets only grow.
func mergeEnriched(p *profile.Profile, e *service.EnrichedProfile, url string) {
	if p.Name == "" {
		p.Name = e.Name
	}
	if p.Headline == "" {
		p.Headline = e.Headline
	}
	if p.Company == "" {
		p.Company = e.Company
	}
	if p.School == "" {
		p.School = e.School
	}
	if p.ProfileURL == "" {
		p.ProfileURL = url
	}
	p.Skills = normalize.Union(p.Skills, e.Skills)
	p.Interests = normalize.Union(p.Interests, e.Interests)

	now := time.Now().UTC()
	p.EnrichedAt = &now
	p.UpdatedAt = now
}
