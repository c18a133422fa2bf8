package match

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

var tracer = otel.Tracer("match_usecase")

const (
	defaultK      = 20
	overFetchMin  = 50
	overFetchMult = 5
)

type GetMatchesUseCase struct {
	profileRepo profile.Repository
	embedder    service.EmbeddingService
	vectorIndex service.VectorIndex
	logRepo     match.LogRepository
	icebreakers *Icebreakers
	logger      logger.Logger
}

func NewGetMatchesUseCase(
	profileRepo profile.Repository,
	embedder service.EmbeddingService,
	vectorIndex service.VectorIndex,
	logRepo match.LogRepository,
	icebreakers *Icebreakers,
	log logger.Logger,
) *GetMatchesUseCase {
	return &GetMatchesUseCase{
		profileRepo: profileRepo,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		logRepo:     logRepo,
		icebreakers: icebreakers,
		logger:      log,
	}
}

type GetMatchesInput struct {
	CallerID  uuid.UUID
	ProfileID uuid.UUID
	K         int
	Topic     string
	Hackathon string
}

type Match struct {
	Candidate    *profile.Profile `json:"candidate"`
	ScoreVector  float64          `json:"score_vector"`
	ScoreKeyword float64          `json:"score_keyword"`
	ScoreBlended float64          `json:"score_blended"`
	Rationale    string           `json:"rationale"`
}

func (uc *GetMatchesUseCase) Execute(ctx context.Context, input GetMatchesInput) ([]Match, error) {
	ctx, span := tracer.Start(ctx, "GetMatches")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", input.ProfileID.String()))

	subject, err := uc.profileRepo.FindByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if subject.OwnerID != input.CallerID {
		return nil, apperror.NewPermissionDenied("profile belongs to another user")
	}

	k := input.K
	if k <= 0 {
		k = defaultK
	}

	queryVec, err := uc.embedder.GenerateEmbeddings(ctx, buildQuerySummary(subject, input.Topic))
	if err != nil {
		return nil, apperror.NewInternal("failed to embed match query", err)
	}

	filters := map[string]any{"available_now": true}
	if input.Hackathon != "" {
		filters["hackathon"] = input.Hackathon
	}

	// Over-fetch to leave room for post-filtering the subject itself.
	overFetch := overFetchMult * k
	if overFetch < overFetchMin {
		overFetch = overFetchMin
	}
	candidates, err := uc.vectorIndex.Query(ctx, queryVec, overFetch, filters)
	if err != nil {
		return nil, err
	}

	kept := make([]service.CandidateMatch, 0, k)
	ids := make([]uuid.UUID, 0, k)
	for _, c := range candidates {
		if c.ID == subject.ID {
			continue
		}
		kept = append(kept, c)
		ids = append(ids, c.ID)
		if len(kept) == k {
			break
		}
	}

	byID := make(map[uuid.UUID]*profile.Profile, len(ids))
	found, err := uc.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range found {
		byID[p.ID] = p
	}

	subjectLabels := append(append([]string{}, subject.Skills...), subject.Topics...)

	// Results keep the index's retrieval order; the blended score annotates
	// but does not re-rank.
	matches := make([]Match, 0, len(kept))
	for _, c := range kept {
		candidate, ok := byID[c.ID]
		if !ok {
			// Vector entry with no relational record: stale index state,
			// reconciled by the owning profile's next run or deletion.
			continue
		}

		candidateLabels := append(append([]string{}, candidate.Skills...), candidate.Topics...)
		scoreVector := VectorScore(c.Distance)
		scoreKeyword := Jaccard(subjectLabels, candidateLabels)

		m := Match{
			Candidate:    candidate,
			ScoreVector:  scoreVector,
			ScoreKeyword: scoreKeyword,
			ScoreBlended: Blend(scoreVector, scoreKeyword),
			Rationale:    uc.icebreakers.Rationale(subject, candidate),
		}
		matches = append(matches, m)

		uc.record(ctx, input.CallerID, m)
	}
	return matches, nil
}

func (uc *GetMatchesUseCase) record(ctx context.Context, userID uuid.UUID, m Match) {
	err := uc.logRepo.Save(ctx, &match.MatchLog{
		ID:           uuid.New(),
		UserID:       userID,
		CandidateID:  m.Candidate.ID,
		ScoreVector:  m.ScoreVector,
		ScoreKeyword: m.ScoreKeyword,
		ScoreBlended: m.ScoreBlended,
		Rationale:    m.Rationale,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("failed to record served match",
			zap.String("candidate_id", m.Candidate.ID.String()), zap.Error(err))
	}
}

// buildQuerySummary assembles the retrieval query text from the subject's
// identity and labels, skipping empty parts.
func buildQuerySummary(p *profile.Profile, topic string) string {
	topics := p.Topics
	if topic != "" {
		topics = append(append([]string{}, p.Topics...), topic)
	}

	parts := []string{
		p.Name,
		p.Headline,
		strings.Join(p.Skills, ", "),
		strings.Join(topics, ", "),
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " | ")
}
