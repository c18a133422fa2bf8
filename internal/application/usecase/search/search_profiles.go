package search

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/apperror"
	"github.com/hinderhq/hinder/pkg/logger"

	"github.com/google/uuid"
)

var tracer = otel.Tracer("search_usecase")

const defaultSearchText = "general candidate search"

type SearchProfilesUseCase struct {
	profileRepo profile.Repository
	embedder    service.EmbeddingService
	vectorIndex service.VectorIndex
	logger      logger.Logger
}

func NewSearchProfilesUseCase(
	profileRepo profile.Repository,
	embedder service.EmbeddingService,
	vectorIndex service.VectorIndex,
	log logger.Logger,
) *SearchProfilesUseCase {
	return &SearchProfilesUseCase{
		profileRepo: profileRepo,
		embedder:    embedder,
		vectorIndex: vectorIndex,
		logger:      log,
	}
}

type SearchProfilesInput struct {
	Query        string
	Skills       []string
	Topics       []string
	AvailableNow *bool
	Hackathon    string
	ExcludeID    uuid.UUID
	Page         int
	PageSize     int
}

type SearchProfilesOutput struct {
	Items     []*profile.Profile `json:"items"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
	QueryText string             `json:"query_text"`
}

// Execute performs a semantic search over the vector index. Primitive
// constraints go in as index filters; skill/topic constraints are applied as
// a post-filter on the over-fetched candidate set.
func (uc *SearchProfilesUseCase) Execute(ctx context.Context, input SearchProfilesInput) (*SearchProfilesOutput, error) {
	ctx, span := tracer.Start(ctx, "SearchProfiles")
	defer span.End()

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	skills := normalize.List(input.Skills)
	topics := normalize.List(input.Topics)

	queryText := buildSearchText(input.Query, skills, topics, input.Hackathon)
	vec, err := uc.embedder.GenerateEmbeddings(ctx, queryText)
	if err != nil {
		return nil, apperror.NewInternal("failed to embed search query", err)
	}

	filters := map[string]any{}
	if input.AvailableNow != nil {
		filters["available_now"] = *input.AvailableNow
	}
	if input.Hackathon != "" {
		filters["hackathon"] = input.Hackathon
	}

	overFetch := pageSize * 5
	if overFetch < 50 {
		overFetch = 50
	}
	candidates, err := uc.vectorIndex.Query(ctx, vec, overFetch, filters)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != input.ExcludeID {
			ids = append(ids, c.ID)
		}
	}

	found, err := uc.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*profile.Profile, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	filtered := make([]*profile.Profile, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if len(skills) > 0 && !anyOverlap(skills, p.Skills) {
			continue
		}
		if len(topics) > 0 && !anyOverlap(topics, p.Topics) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &SearchProfilesOutput{
		Items:     filtered[start:end],
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		QueryText: queryText,
	}, nil
}

func buildSearchText(q string, skills, topics []string, hackathon string) string {
	parts := make([]string, 0, 3+len(skills)+len(topics))
	if q != "" {
		parts = append(parts, q)
	}
	parts = append(parts, skills...)
	parts = append(parts, topics...)
	if hackathon != "" {
		parts = append(parts, hackathon)
	}
	if len(parts) == 0 {
		return defaultSearchText
	}
	return strings.Join(parts, " | ")
}

func anyOverlap(wanted, have []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[strings.ToLower(h)] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := set[strings.ToLower(w)]; ok {
			return true
		}
	}
	return false
}
