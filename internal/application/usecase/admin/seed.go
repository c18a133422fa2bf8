package admin

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/logger"
)

var seedTopics = []string{
	"agentic ai", "drones", "llm eval", "rag", "web3", "data infra",
	"ar/vr", "open source", "vc chat",
}

var seedSkills = []string{
	"python", "typescript", "react", "ros", "rust", "go", "rag", "llm",
	"prompting", "sql", "docker", "kubernetes", "solana", "graphql",
	"pytorch", "tensorflow",
}

var seedHackathons = []string{
	"calhacks12.0", "ethglobal-nyc", "hackmit", "treehacks", "la-hacks",
}

type SeedProfilesUseCase struct {
	profileRepo profile.Repository
	embedder    service.EmbeddingService
	vectorIndex service.VectorIndex
	logger      logger.Logger
}

func NewSeedProfilesUseCase(
	profileRepo profile.Repository,
	embedder service.EmbeddingService,
	vectorIndex service.VectorIndex,
	log logger.Logger,
) *SeedProfilesUseCase {
	return &SeedProfilesUseCase{
		profileRepo: profileRepo,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		logger:      log,
	}
}

// Execute inserts count synthetic ready profiles, embedded and indexed, so a
// fresh environment has something to match against.
func (uc *SeedProfilesUseCase) Execute(ctx context.Context, ownerID uuid.UUID, count int) (int, error) {
	ctx, span := tracer.Start(ctx, "SeedProfiles")
	defer span.End()

	if count <= 0 {
		count = 12
	}

	added := 0
	for i := 0; i < count; i++ {
		p := syntheticProfile(ownerID)
		if err := uc.profileRepo.Save(ctx, p); err != nil {
			return added, err
		}

		vec, err := uc.embedder.GenerateEmbeddings(ctx, p.Summary())
		if err != nil {
			return added, err
		}
		metadata := map[string]any{
			"owner_id":      p.OwnerID.String(),
			"name":          p.Name,
			"headline":      p.Headline,
			"available_now": p.AvailableNow,
			"hackathon":     p.Hackathon,
			"skills":        p.Skills,
			"topics":        p.Topics,
		}
		if err := uc.vectorIndex.Upsert(ctx, p.ID, vec, metadata); err != nil {
			return added, err
		}
		added++
	}

	uc.logger.Info("seeded synthetic profiles", zap.Int("added", added))
	return added, nil
}

func syntheticProfile(ownerID uuid.UUID) *profile.Profile {
	id := uuid.New()
	topics := pickMany(seedTopics, 3)
	skills := normalize.List(pickMany(seedSkills, 6))
	now := time.Now().UTC()

	return &profile.Profile{
		ID:           id,
		OwnerID:      ownerID,
		Name:         "Seed " + id.String()[:4],
		Headline:     fmt.Sprintf("Excited about %s", topics[0]),
		Skills:       skills,
		Interests:    topics,
		Topics:       topics,
		AvailableNow: rand.Float64() > 0.4,
		Hackathon:    seedHackathons[rand.Intn(len(seedHackathons))],
		Status:       profile.StatusReady,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func pickMany(src []string, n int) []string {
	if n > len(src) {
		n = len(src)
	}
	idx := rand.Perm(len(src))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, src[i])
	}
	return out
}
