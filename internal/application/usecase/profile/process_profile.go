package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/domain/profile"
	"github.com/hinderhq/hinder/internal/domain/upload"
	"github.com/hinderhq/hinder/internal/normalize"
	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
)

var tracer = otel.Tracer("profile_usecase")

// ProcessProfileUseCase drives one profile through the processing pipeline:
// pending, parsing, embedding, then ready or error. Every transition is
// published on the progress bus under the profile id.
type ProcessProfileUseCase struct {
	profileRepo   profile.Repository
	uploadRepo    upload.Repository
	uploader      service.Uploader
	textExtractor service.TextExtractor
	extractor     service.Extractor
	embedder      service.EmbeddingService
	vectorIndex   service.VectorIndex
	publisher     progress.Publisher
	logger        logger.Logger
}

func NewProcessProfileUseCase(
	profileRepo profile.Repository,
	uploadRepo upload.Repository,
	uploader service.Uploader,
	textExtractor service.TextExtractor,
	extractor service.Extractor,
	embedder service.EmbeddingService,
	vectorIndex service.VectorIndex,
	publisher progress.Publisher,
	log logger.Logger,
) *ProcessProfileUseCase {
	return &ProcessProfileUseCase{
		profileRepo:   profileRepo,
		uploadRepo:    uploadRepo,
		uploader:      uploader,
		textExtractor: textExtractor,
		extractor:     extractor,
		embedder:      embedder,
		vectorIndex:   vectorIndex,
		publisher:     publisher,
		logger:        log,
	}
}

func (uc *ProcessProfileUseCase) Execute(ctx context.Context, profileID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "ProcessProfile")
	defer span.End()
	span.SetAttributes(attribute.String("profile_id", profileID.String()))

	p, err := uc.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}

	// A run always replays the full sequence, so a re-run resets first.
	if err := uc.setStatus(ctx, p, profile.StatusPending); err != nil {
		return err
	}

	if err := uc.setStatus(ctx, p, profile.StatusParsing); err != nil {
		return err
	}
	rawText := uc.ingest(ctx, p)

	parsed, err := uc.extractor.Extract(ctx, rawText)
	if err != nil {
		// The extractor degrades internally; reaching here means something
		// harder failed (e.g. cancellation).
		return uc.fail(ctx, p, err)
	}
	merge(p, parsed)

	if err := uc.setStatus(ctx, p, profile.StatusEmbedding); err != nil {
		return err
	}

	vec, err := uc.embedder.GenerateEmbeddings(ctx, p.Summary())
	if err != nil {
		return uc.fail(ctx, p, err)
	}
	if err := uc.vectorIndex.Upsert(ctx, p.ID, vec, indexMetadata(p)); err != nil {
		return uc.fail(ctx, p, err)
	}

	// Merged fields are committed only once embedding and indexing have
	// both succeeded, so an aborted run never promotes partial content.
	p.Status = profile.StatusReady
	p.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return uc.fail(ctx, p, err)
	}
	uc.publisher.Publish(p.ID.String(), progress.Event{Status: string(profile.StatusReady)})
	return nil
}

// ingest gathers whatever raw text is available. Missing or unreadable
// sources are not fatal; an empty string still produces a valid run.
func (uc *ProcessProfileUseCase) ingest(ctx context.Context, p *profile.Profile) string {
	if p.ResumeFileID == nil {
		return ""
	}

	rec, err := uc.uploadRepo.FindByID(ctx, *p.ResumeFileID)
	if err != nil {
		uc.logger.Warn("resume record missing, proceeding without text",
			zap.String("profile_id", p.ID.String()), zap.Error(err))
		return ""
	}

	body, err := uc.uploader.Fetch(ctx, rec.URL)
	if err != nil {
		uc.logger.Warn("resume fetch failed, proceeding without text",
			zap.String("profile_id", p.ID.String()), zap.Error(err))
		return ""
	}
	defer body.Close()

	text, err := uc.textExtractor.ExtractText(ctx, body, rec.Mime)
	if err != nil {
		uc.logger.Warn("resume text extraction failed, proceeding without text",
			zap.String("profile_id", p.ID.String()), zap.Error(err))
		return ""
	}
	return text
}

func (uc *ProcessProfileUseCase) setStatus(ctx context.Context, p *profile.Profile, next profile.Status) error {
	if err := uc.profileRepo.UpdateStatus(ctx, p.ID, next); err != nil {
		return err
	}
	p.Status = next
	uc.publisher.Publish(p.ID.String(), progress.Event{Status: string(next)})
	return nil
}

func (uc *ProcessProfileUseCase) fail(ctx context.Context, p *profile.Profile, cause error) error {
	uc.logger.Error("pipeline run failed", cause, zap.String("profile_id", p.ID.String()))
	if err := uc.profileRepo.UpdateStatus(ctx, p.ID, profile.StatusError); err != nil {
		uc.logger.Error("failed to record error status", err, zap.String("profile_id", p.ID.String()))
	}
	uc.publisher.Publish(p.ID.String(), progress.Event{Status: string(profile.StatusError)})
	return cause
}

// merge folds extracted fields into the profile. Extraction never overwrites
// user-entered values: scalars keep the existing value on conflict and sets
// only grow.
func merge(p *profile.Profile, parsed *service.ParseResult) {
	if p.Name == "" {
		p.Name = parsed.Name
	}
	if p.Headline == "" {
		p.Headline = parsed.Headline
	}
	if p.Headline == "" && len(parsed.Roles) > 0 {
		p.Headline = parsed.Roles[0].Title
	}
	if p.Company == "" && len(parsed.Roles) > 0 {
		p.Company = parsed.Roles[0].Org
	}
	if p.School == "" && len(parsed.Education) > 0 {
		p.School = parsed.Education[0]
	}

	extractedSkills := append([]string{}, parsed.Skills.Tech...)
	extractedSkills = append(extractedSkills, parsed.Skills.Domain...)
	p.Skills = normalize.Union(p.Skills, extractedSkills)
	p.Interests = normalize.Union(p.Interests, parsed.Interests)
	// Interests feed matching through topics: the summary string, the
	// indexed metadata and the keyword score all read Topics.
	p.Topics = normalize.Union(p.Topics, parsed.Interests)
}

// indexMetadata is the primitive-only snapshot stored alongside the vector.
func indexMetadata(p *profile.Profile) map[string]any {
	return map[string]any{
		"owner_id":      p.OwnerID.String(),
		"name":          p.Name,
		"headline":      p.Headline,
		"available_now": p.AvailableNow,
		"hackathon":     p.Hackathon,
		"skills":        p.Skills,
		"topics":        p.Topics,
	}
}
