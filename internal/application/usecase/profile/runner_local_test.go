package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
)

func TestLocalRunner_DoneChannelReportsResult(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newPipeline(repo, newFakeVectorIndex(), &stubExtractor{}, progress.NewBus())
	runner := NewLocalRunner(uc, logger.NewNop())

	p := seedProfile(t, repo, &profile.Profile{})

	done, err := runner.Enqueue(context.Background(), p.ID)
	require.NoError(t, err)

	select {
	case runErr := <-done:
		assert.NoError(t, runErr)
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline run did not finish")
	}

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.StatusReady, got.Status)
}

func TestLocalRunner_SameIDRunsAreSerialized(t *testing.T) {
	repo := newFakeProfileRepo()
	index := newFakeVectorIndex()
	uc := newPipeline(repo, index, &stubExtractor{}, progress.NewBus())
	runner := NewLocalRunner(uc, logger.NewNop())

	p := seedProfile(t, repo, &profile.Profile{Skills: []string{"go"}})

	const runs = 8
	channels := make([]<-chan error, 0, runs)
	for i := 0; i < runs; i++ {
		done, err := runner.Enqueue(context.Background(), p.ID)
		require.NoError(t, err)
		channels = append(channels, done)
	}

	for _, done := range channels {
		select {
		case runErr := <-done:
			assert.NoError(t, runErr)
		case <-time.After(5 * time.Second):
			t.Fatal("pipeline run did not finish")
		}
	}

	got, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.StatusReady, got.Status)
	assert.Equal(t, []string{"go"}, got.Skills)
}

func TestLocalRunner_ErrorSurfacesOnDoneChannel(t *testing.T) {
	repo := newFakeProfileRepo()
	index := newFakeVectorIndex()
	index.failing = true
	uc := newPipeline(repo, index, &stubExtractor{}, progress.NewBus())
	runner := NewLocalRunner(uc, logger.NewNop())

	p := seedProfile(t, repo, &profile.Profile{})

	done, err := runner.Enqueue(context.Background(), p.ID)
	require.NoError(t, err)

	select {
	case runErr := <-done:
		assert.Error(t, runErr)
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline run did not finish")
	}
}
