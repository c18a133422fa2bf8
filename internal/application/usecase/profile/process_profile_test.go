package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (r *fakeProfileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return errors.New("profile not found")
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) UpdateStatus(_ context.Context, id uuid.UUID, status profile.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return errors.New("profile not found")
	}
	p.Status = status
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*profile.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles), nil
}

type fakeVectorIndex struct {
	mu      sync.Mutex
	vectors map[uuid.UUID]pgvector.Vector
	failing bool
}

func newFakeVectorIndex() *fakeVectorIndex {
	return &fakeVectorIndex{vectors: make(map[uuid.UUID]pgvector.Vector)}
}

func (v *fakeVectorIndex) Upsert(_ context.Context, id uuid.UUID, vec pgvector.Vector, _ map[string]any) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failing {
		return errors.New("index unavailable")
	}
	v.vectors[id] = vec
	return nil
}

func (v *fakeVectorIndex) Query(_ context.Context, _ pgvector.Vector, _ int, _ map[string]any) ([]service.CandidateMatch, error) {
	return nil, nil
}

func (v *fakeVectorIndex) Delete(_ context.Context, id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.vectors, id)
	return nil
}

type stubExtractor struct {
	result *service.ParseResult
}

func (e *stubExtractor) Extract(context.Context, string) (*service.ParseResult, error) {
	if e.result == nil {
		return &service.ParseResult{}, nil
	}
	return e.result, nil
}

// stubEmbedder is deterministic: the vector depends only on the text length
// spread over a few buckets, which is enough to compare runs.
type stubEmbedder struct{}

func (stubEmbedder) GenerateEmbeddings(_ context.Context, text string) (pgvector.Vector, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r)
	}
	return pgvector.NewVector(vec), nil
}

func newPipeline(repo *fakeProfileRepo, index *fakeVectorIndex, extractor service.Extractor, bus *progress.Bus) *ProcessProfileUseCase {
	return NewProcessProfileUseCase(
		repo, nil, nil, nil,
		extractor,
		stubEmbedder{},
		index,
		bus,
		logger.NewNop(),
	)
}

func seedProfile(t *testing.T, repo *fakeProfileRepo, p *profile.Profile) *profile.Profile {
	t.Helper()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = profile.StatusPending
	}
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestProcessProfile_EmptyInputReachesReady(t *testing.T) {
	repo := newFakeProfileRepo()
	index := newFakeVectorIndex()
	bus := progress.NewBus()
	uc := newPipeline(repo, index, &stubExtractor{}, bus)

	p := seedProfile(t, repo, &profile.Profile{Skills: []string{}, Topics: []string{}})

	require.NoError(t, uc.Execute(context.Background(), p.ID))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.StatusReady, got.Status)
	assert.Empty(t, got.Skills)

	vec, ok := index.vectors[p.ID]
	require.True(t, ok)
	assert.NotEmpty(t, vec.Slice())
}

func TestProcessProfile_Idempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	index := newFakeVectorIndex()
	extractor := &stubExtractor{result: &service.ParseResult{
		Name:      "Ada",
		Headline:  "Engineer",
		Skills:    service.SkillBuckets{Tech: service.StringList{"Go", "golang", "Postgres"}},
		Interests: service.StringList{"compilers"},
	}}
	uc := newPipeline(repo, index, extractor, progress.NewBus())

	p := seedProfile(t, repo, &profile.Profile{Skills: []string{"python"}})

	require.NoError(t, uc.Execute(context.Background(), p.ID))
	first, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	firstVec := index.vectors[p.ID]

	require.NoError(t, uc.Execute(context.Background(), p.ID))
	second, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Headline, second.Headline)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Interests, second.Interests)
	assert.Equal(t, firstVec.Slice(), index.vectors[p.ID].Slice())

	// golang folds into go, duplicates collapse.
	assert.Equal(t, []string{"python", "go", "postgres"}, second.Skills)
}

func TestProcessProfile_InterestsFeedTopics(t *testing.T) {
	repo := newFakeProfileRepo()
	extractor := &stubExtractor{result: &service.ParseResult{
		Interests: service.StringList{"Robotics", "compilers"},
	}}
	uc := newPipeline(repo, newFakeVectorIndex(), extractor, progress.NewBus())

	p := seedProfile(t, repo, &profile.Profile{Topics: []string{"databases"}})

	require.NoError(t, uc.Execute(context.Background(), p.ID))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"databases", "robotics", "compilers"}, got.Topics)
	assert.Equal(t, []string{"robotics", "compilers"}, got.Interests)
}

func TestProcessProfile_MergeNeverRegresses(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newPipeline(repo, newFakeVectorIndex(), &stubExtractor{}, progress.NewBus())

	p := seedProfile(t, repo, &profile.Profile{
		Name:   "Existing Name",
		Skills: []string{"python"},
	})

	require.NoError(t, uc.Execute(context.Background(), p.ID))

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Existing Name", got.Name)
	assert.Equal(t, []string{"python"}, got.Skills)
}

func TestProcessProfile_IndexFailureSetsError(t *testing.T) {
	repo := newFakeProfileRepo()
	index := newFakeVectorIndex()
	index.failing = true
	bus := progress.NewBus()
	uc := newPipeline(repo, index, &stubExtractor{}, bus)

	p := seedProfile(t, repo, &profile.Profile{})
	events := bus.Subscribe(p.ID.String())

	err := uc.Execute(context.Background(), p.ID)
	require.Error(t, err)

	got, findErr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, findErr)
	assert.Equal(t, profile.StatusError, got.Status)

	var statuses []string
	for len(events) > 0 {
		statuses = append(statuses, (<-events).Status)
	}
	assert.Equal(t, []string{"pending", "parsing", "embedding", "error"}, statuses)
}

func TestProcessProfile_PublishesTransitionsInOrder(t *testing.T) {
	repo := newFakeProfileRepo()
	bus := progress.NewBus()
	uc := newPipeline(repo, newFakeVectorIndex(), &stubExtractor{}, bus)

	p := seedProfile(t, repo, &profile.Profile{})
	events := bus.Subscribe(p.ID.String())

	require.NoError(t, uc.Execute(context.Background(), p.ID))

	var statuses []string
	for len(events) > 0 {
		statuses = append(statuses, (<-events).Status)
	}
	assert.Equal(t, []string{"pending", "parsing", "embedding", "ready"}, statuses)
}
