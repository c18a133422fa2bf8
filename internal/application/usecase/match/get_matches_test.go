package match

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/match"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/logger"
)

type stubProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
}

func (r *stubProfileRepo) Save(_ context.Context, p *profile.Profile) error   { return nil }
func (r *stubProfileRepo) Update(_ context.Context, p *profile.Profile) error { return nil }
func (r *stubProfileRepo) UpdateStatus(context.Context, uuid.UUID, profile.Status) error {
	return nil
}
func (r *stubProfileRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, assertNotFound
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProfileRepo) Count(context.Context) (int, error) { return len(r.profiles), nil }

var assertNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "not found" }

type stubVectorIndex struct {
	results []service.CandidateMatch
	gotK    int
	filters map[string]any
}

func (v *stubVectorIndex) Upsert(context.Context, uuid.UUID, pgvector.Vector, map[string]any) error {
	return nil
}

func (v *stubVectorIndex) Query(_ context.Context, _ pgvector.Vector, k int, filters map[string]any) ([]service.CandidateMatch, error) {
	v.gotK = k
	v.filters = filters
	return v.results, nil
}

func (v *stubVectorIndex) Delete(context.Context, uuid.UUID) error { return nil }

type memLogRepo struct {
	mu   sync.Mutex
	logs []*match.MatchLog
}

func (r *memLogRepo) Save(_ context.Context, log *match.MatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *memLogRepo) CountServed(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs), nil
}

func (r *memLogRepo) CountFeedback(context.Context) (match.FeedbackCounts, error) {
	return match.FeedbackCounts{}, nil
}

func (r *memLogRepo) DeleteAll(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.logs)
	r.logs = nil
	return n, nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) GenerateEmbeddings(context.Context, string) (pgvector.Vector, error) {
	return pgvector.NewVector([]float32{1, 0}), nil
}

func ptr(f float64) *float64 { return &f }

func newTestProfile(owner uuid.UUID, name string, skills, topics []string) *profile.Profile {
	return &profile.Profile{
		ID:      uuid.New(),
		OwnerID: owner,
		Name:    name,
		Skills:  skills,
		Topics:  topics,
		Status:  profile.StatusReady,
	}
}

func TestGetMatches_ExcludesSubjectAndKeepsRetrievalOrder(t *testing.T) {
	owner := uuid.New()
	subject := newTestProfile(owner, "Subject", []string{"go"}, []string{"infra"})
	first := newTestProfile(uuid.New(), "First", []string{"go"}, []string{"infra"})
	second := newTestProfile(uuid.New(), "Second", []string{"rust"}, nil)

	repo := &stubProfileRepo{profiles: map[uuid.UUID]*profile.Profile{
		subject.ID: subject,
		first.ID:   first,
		second.ID:  second,
	}}
	// The subject appears in its own neighborhood with the best distance.
	index := &stubVectorIndex{results: []service.CandidateMatch{
		{ID: subject.ID, Distance: ptr(0.0)},
		{ID: first.ID, Distance: ptr(0.1)},
		{ID: second.ID, Distance: ptr(0.05)},
	}}
	logs := &memLogRepo{}

	uc := NewGetMatchesUseCase(repo, fixedEmbedder{}, index, logs, NewIcebreakers(), logger.NewNop())

	matches, err := uc.Execute(context.Background(), GetMatchesInput{
		CallerID:  owner,
		ProfileID: subject.ID,
		K:         20,
	})
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].Candidate.ID)
	assert.Equal(t, second.ID, matches[1].Candidate.ID)

	assert.InDelta(t, 0.9, matches[0].ScoreVector, 1e-9)
	assert.InDelta(t, 1.0, matches[0].ScoreKeyword, 1e-9)
	assert.InDelta(t, Blend(0.9, 1.0), matches[0].ScoreBlended, 1e-9)

	served, err := logs.CountServed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, served)
}

func TestGetMatches_OverFetchFloorAndFilters(t *testing.T) {
	owner := uuid.New()
	subject := newTestProfile(owner, "Subject", nil, nil)

	repo := &stubProfileRepo{profiles: map[uuid.UUID]*profile.Profile{subject.ID: subject}}
	index := &stubVectorIndex{}
	uc := NewGetMatchesUseCase(repo, fixedEmbedder{}, index, &memLogRepo{}, NewIcebreakers(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetMatchesInput{
		CallerID:  owner,
		ProfileID: subject.ID,
		K:         5,
		Hackathon: "spring-2026",
	})
	require.NoError(t, err)

	// 5*5 < 50, so the floor applies.
	assert.Equal(t, 50, index.gotK)
	assert.Equal(t, true, index.filters["available_now"])
	assert.Equal(t, "spring-2026", index.filters["hackathon"])
}

func TestGetMatches_LargeKOverFetchesByFactor(t *testing.T) {
	owner := uuid.New()
	subject := newTestProfile(owner, "Subject", nil, nil)

	repo := &stubProfileRepo{profiles: map[uuid.UUID]*profile.Profile{subject.ID: subject}}
	index := &stubVectorIndex{}
	uc := NewGetMatchesUseCase(repo, fixedEmbedder{}, index, &memLogRepo{}, NewIcebreakers(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetMatchesInput{
		CallerID:  owner,
		ProfileID: subject.ID,
		K:         30,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, index.gotK)
}

func TestGetMatches_ForbiddenForNonOwner(t *testing.T) {
	subject := newTestProfile(uuid.New(), "Subject", nil, nil)
	repo := &stubProfileRepo{profiles: map[uuid.UUID]*profile.Profile{subject.ID: subject}}
	uc := NewGetMatchesUseCase(repo, fixedEmbedder{}, &stubVectorIndex{}, &memLogRepo{}, NewIcebreakers(), logger.NewNop())

	_, err := uc.Execute(context.Background(), GetMatchesInput{
		CallerID:  uuid.New(),
		ProfileID: subject.ID,
	})
	assert.Error(t, err)
}

func TestGetMatches_SkipsCandidatesWithoutRecords(t *testing.T) {
	owner := uuid.New()
	subject := newTestProfile(owner, "Subject", nil, nil)
	orphan := uuid.New()

	repo := &stubProfileRepo{profiles: map[uuid.UUID]*profile.Profile{subject.ID: subject}}
	index := &stubVectorIndex{results: []service.CandidateMatch{
		{ID: orphan, Distance: ptr(0.1)},
	}}
	uc := NewGetMatchesUseCase(repo, fixedEmbedder{}, index, &memLogRepo{}, NewIcebreakers(), logger.NewNop())

	matches, err := uc.Execute(context.Background(), GetMatchesInput{
		CallerID:  owner,
		ProfileID: subject.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}
