package enrich

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinderhq/hinder/adapters/enrichment"
	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"
)

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
	updated  int
}

func newStubProfileRepo(profiles ...*profile.Profile) *stubProfileRepo {
	r := &stubProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *stubProfileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	r.updated++
	return nil
}

func (r *stubProfileRepo) UpdateStatus(context.Context, uuid.UUID, profile.Status) error {
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	cp := *p
	return &cp, nil
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*profile.Profile, error) {
	return nil, nil
}

func (r *stubProfileRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles), nil
}

// flakyEnricher fails the first failures calls, then succeeds.
type flakyEnricher struct {
	mu       sync.Mutex
	failures int
	failWith error
	calls    int
}

func (e *flakyEnricher) Enrich(context.Context, string) (*service.EnrichedProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.calls <= e.failures {
		return nil, fmt.Errorf("%w: status 429", e.failWith)
	}
	return &service.EnrichedProfile{
		Name:   "Scraped Name",
		Skills: []string{"go"},
	}, nil
}

type stubRunner struct {
	mu       sync.Mutex
	enqueued []uuid.UUID
}

func (r *stubRunner) Enqueue(_ context.Context, id uuid.UUID) (<-chan error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueued = append(r.enqueued, id)
	done := make(chan error)
	close(done)
	return done, nil
}

func newEnrichUseCase(repo *stubProfileRepo, enricher service.Enricher, runner *stubRunner) *EnrichProfileUseCase {
	return NewEnrichProfileUseCase(repo, enricher, runner, nil, logger.NewNop())
}

func TestEnrichProfile_RejectsBadURLBeforeRateLimit(t *testing.T) {
	owner := uuid.New()
	p := &profile.Profile{ID: uuid.New(), OwnerID: owner}
	enricher := &flakyEnricher{}
	uc := newEnrichUseCase(newStubProfileRepo(p), enricher, &stubRunner{})

	testCases := []string{
		"not a url",
		"http://linkedin.com/in/ada",
		"https://example.com/in/ada",
		"https://linkedin.com/company/acme",
	}
	for _, raw := range testCases {
		err := uc.Execute(context.Background(), EnrichProfileInput{
			CallerID:   owner,
			ProfileID:  p.ID,
			ProfileURL: raw,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, raw)
	}

	// Rejection is synchronous: the scraper is never reached and no
	// rate-limit slot was consumed (the nil redis client would panic).
	assert.Equal(t, 0, enricher.calls)
}

func TestEnrichRun_RetriesFailedSubmissions(t *testing.T) {
	p := &profile.Profile{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newStubProfileRepo(p)
	enricher := &flakyEnricher{failures: 2, failWith: enrichment.ErrSubmissionFailed}
	runner := &stubRunner{}
	uc := newEnrichUseCase(repo, enricher, runner)

	uc.run(context.Background(), p.ID, "https://linkedin.com/in/ada")

	assert.Equal(t, 3, enricher.calls)

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scraped Name", got.Name)
	require.NotNil(t, got.EnrichedAt)
	assert.Equal(t, []uuid.UUID{p.ID}, runner.enqueued)
}

func TestEnrichRun_GivesUpAfterRetryBudget(t *testing.T) {
	p := &profile.Profile{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newStubProfileRepo(p)
	enricher := &flakyEnricher{failures: 10, failWith: enrichment.ErrSubmissionFailed}
	runner := &stubRunner{}
	uc := newEnrichUseCase(repo, enricher, runner)

	uc.run(context.Background(), p.ID, "https://linkedin.com/in/ada")

	assert.Equal(t, 1+maxSubmissionRetries, enricher.calls)
	assert.Equal(t, 0, repo.updated)
	assert.Empty(t, runner.enqueued)
}

func TestEnrichRun_TerminalFailureIsNotRetried(t *testing.T) {
	p := &profile.Profile{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newStubProfileRepo(p)
	enricher := &flakyEnricher{failures: 10, failWith: enrichment.ErrJobFailed}
	runner := &stubRunner{}
	uc := newEnrichUseCase(repo, enricher, runner)

	uc.run(context.Background(), p.ID, "https://linkedin.com/in/ada")

	assert.Equal(t, 1, enricher.calls)
	assert.Equal(t, 0, repo.updated)
	assert.Empty(t, runner.enqueued)
}
