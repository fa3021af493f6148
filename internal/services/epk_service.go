package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/metrics"
	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/store"
	"github.com/example/epkadmin/internal/utils"
)

// EPKRepository is the storage EPKService needs.
type EPKRepository interface {
	List(ctx context.Context, q store.EPKQuery) ([]models.EPK, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.EPK, error)
	GetBySlug(ctx context.Context, slug string) (*models.EPK, error)
	Create(ctx context.Context, epk *models.EPK) error
	Save(ctx context.Context, epk *models.EPK) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugsByIDs(ctx context.Context, ids []string) ([]string, error)
	BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}, now time.Time) (int64, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	Stats(ctx context.Context) (*store.EPKStats, error)
}

// SlugCache caches EPKs served on the public slug route.
type SlugCache interface {
	Get(ctx context.Context, slug string) (*models.EPK, bool, error)
	Set(ctx context.Context, epk *models.EPK) error
	Invalidate(ctx context.Context, slugs ...string) error
}

// NopSlugCache never stores anything.
type NopSlugCache struct{}

func (NopSlugCache) Get(context.Context, string) (*models.EPK, bool, error) { return nil, false, nil }
func (NopSlugCache) Set(context.Context, *models.EPK) error                 { return nil }
func (NopSlugCache) Invalidate(context.Context, ...string) error            { return nil }

// CreateEPKInput is the body of a create request.
type CreateEPKInput struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	UserID       string          `json:"userId"`
	ArtistName   string          `json:"artistName" validate:"required"`
	ArtistType   string          `json:"artistType" validate:"required"`
	Theme        *models.Theme   `json:"theme"`
	Sections     models.Sections `json:"sections"`
	ArtistMode   string          `json:"artistMode" validate:"omitempty,oneof=solo group duo"`
	ManagedBy    string          `json:"managedBy" validate:"omitempty,oneof=artist manager"`
	ManagerPhone string          `json:"managerPhone"`
}

// EPKService implements the EPK operations of the admin panel.
type EPKService struct {
	epks     EPKRepository
	cache    SlugCache
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewEPKService constructs EPKService. cache and notifier may be nil.
func NewEPKService(epks EPKRepository, cache SlugCache, notifier Notifier, log *zap.Logger) *EPKService {
	if cache == nil {
		cache = NopSlugCache{}
	}
	return &EPKService{epks: epks, cache: cache, notifier: notifier, log: log, now: time.Now}
}

// SetClock replaces the time source.
func (s *EPKService) SetClock(now func() time.Time) { s.now = now }

// List returns one page of EPKs and the total match count.
func (s *EPKService) List(ctx context.Context, q store.EPKQuery) ([]models.EPK, int64, error) {
	return s.epks.List(ctx, q)
}

// Get loads an EPK by id.
func (s *EPKService) Get(ctx context.Context, id string) (*models.EPK, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrEPKNotFound
	}
	epk, err := s.epks.Get(ctx, parsed)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEPKNotFound
		}
		return nil, err
	}
	return epk, nil
}

// GetBySlug loads an EPK by public slug, going through the slug cache.
func (s *EPKService) GetBySlug(ctx context.Context, slug string) (*models.EPK, error) {
	if cached, ok, err := s.cache.Get(ctx, slug); err != nil {
		s.log.Warn("slug cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	epk, err := s.epks.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEPKNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(ctx, epk); err != nil {
		s.log.Warn("slug cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return epk, nil
}

// Create stores a new EPK. Missing id, slug and userId are generated; an EPK without
// sections gets the default skeleton with the hero filled from the artist.
func (s *EPKService) Create(ctx context.Context, in CreateEPKInput) (*models.EPK, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	userID := in.UserID
	if userID == "" {
		var err error
		if userID, err = placeholderUserID(now); err != nil {
			return nil, err
		}
	}

	epk := &models.EPK{
		UserID:           userID,
		ArtistName:       in.ArtistName,
		ArtistType:       in.ArtistType,
		Slug:             in.Slug,
		Theme:            DefaultTheme(),
		Sections:         in.Sections,
		SeoEnabled:       true,
		AnalyticsEnabled: true,
		ArtistMode:       in.ArtistMode,
		ManagedBy:        in.ManagedBy,
		ManagerPhone:     in.ManagerPhone,
		EPKScore:         models.NewEPKScore(now),
	}
	if in.Theme != nil {
		epk.Theme = *in.Theme
	}

	if in.ID != "" {
		id, err := uuid.Parse(in.ID)
		if err != nil {
			return nil, Invalid("field id must be a uuid")
		}
		epk.ID = id
	}
	if epk.Slug == "" {
		slug, err := utils.GenerateSlug(in.ArtistName)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		epk.Slug = slug
	}
	if len(epk.Sections) == 0 {
		epk.Sections = DefaultSections()
		fillHero(epk.Sections, in.ArtistName, in.ArtistType)
	}
	epk.ApplyDefaults()

	if err := epk.Sections.Validate(); err != nil {
		return nil, Invalid(err.Error())
	}
	if err := s.epks.Create(ctx, epk); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return epk, nil
}

func fillHero(sections models.Sections, artistName, artistType string) {
	section, ok := sections.Find(models.SectionHero)
	if !ok {
		return
	}
	hero := section.Data.(*models.HeroData)
	if hero.StageName == "" {
		hero.StageName = artistName
	}
	if hero.ArtForm == "" {
		hero.ArtForm = artistType
	}
	if hero.Image == "" {
		hero.Image = DefaultHeroImage
	}
	if hero.BackgroundImage == "" {
		hero.BackgroundImage = DefaultBackgroundImage
	}
}

// Update replaces the top-level fields present in patch. The id and creation
// time cannot change.
func (s *EPKService) Update(ctx context.Context, id string, patch []byte) (*models.EPK, error) {
	epk, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := epk.Slug

	err = applyPatch(patch, epk, map[string]func(){
		"theme":    func() { epk.Theme = models.Theme{} },
		"sections": func() { epk.Sections = nil },
		"epkScore": func() { epk.EPKScore = models.EPKScore{} },
	})
	if err != nil {
		return nil, err
	}
	epk.ApplyDefaults()

	if err := Validate(epk); err != nil {
		return nil, err
	}
	if err := epk.Sections.Validate(); err != nil {
		return nil, Invalid(err.Error())
	}
	if epk.Slug == "" {
		return nil, Invalid("field slug is a required field")
	}

	if err := s.epks.Save(ctx, epk); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.invalidate(ctx, oldSlug, epk.Slug)
	return epk, nil
}

// Delete removes an EPK.
func (s *EPKService) Delete(ctx context.Context, id string) error {
	epk, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.epks.Delete(ctx, epk.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEPKNotFound
		}
		return err
	}
	s.invalidate(ctx, epk.Slug)
	return nil
}

// TogglePublish flips the published flag. publishedAt is stamped on the first
// publish only.
func (s *EPKService) TogglePublish(ctx context.Context, id string) (*models.EPK, error) {
	epk, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	epk.Publish(!epk.IsPublished, s.now())
	if err := s.epks.Save(ctx, epk); err != nil {
		return nil, err
	}
	s.invalidate(ctx, epk.Slug)
	return epk, nil
}

// BulkUpdate applies updates to every EPK in ids.
func (s *EPKService) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error) {
	slugs, err := s.epks.SlugsByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	n, err := s.epks.BulkUpdate(ctx, ids, updates, s.now())
	if err != nil {
		return 0, bulkError(err)
	}
	s.invalidate(ctx, slugs...)
	return n, nil
}

// BulkDelete removes every EPK in ids.
func (s *EPKService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	slugs, err := s.epks.SlugsByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	n, err := s.epks.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, slugs...)
	return n, nil
}

// Import builds and stores one EPK per row. A failing row is recorded in the
// result and does not stop the rest of the batch.
func (s *EPKService) Import(ctx context.Context, rows []ImportRow) ImportResult {
	result := ImportResult{Errors: []ImportRowError{}}

	for _, row := range rows {
		if err := s.importRow(ctx, row); err != nil {
			name := row.Str("artistName")
			if name == "" {
				name = "Unknown"
			}
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{ArtistName: name, Error: err.Error()})
			continue
		}
		result.Success++
	}

	metrics.ImportRows("success", result.Success)
	metrics.ImportRows("failed", result.Failed)
	s.log.Info("epk import finished", zap.Int("success", result.Success), zap.Int("failed", result.Failed))
	if s.notifier != nil {
		if err := s.notifier.NotifyImport(ctx, result); err != nil {
			s.log.Warn("import notification failed", zap.Error(err))
		}
	}
	return result
}

func (s *EPKService) importRow(ctx context.Context, row ImportRow) error {
	epk, err := BuildEPKFromRow(row, s.now())
	if err != nil {
		return err
	}
	if err := Validate(epk); err != nil {
		return err
	}
	if err := epk.Sections.Validate(); err != nil {
		return err
	}
	if err := s.epks.Create(ctx, epk); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// Stats summarises the EPK collection.
func (s *EPKService) Stats(ctx context.Context) (*store.EPKStats, error) {
	return s.epks.Stats(ctx)
}

// Template returns the bulk import column layout.
func (s *EPKService) Template() ImportTemplate {
	return BuildImportTemplate()
}

func (s *EPKService) invalidate(ctx context.Context, slugs ...string) {
	if len(slugs) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, slugs...); err != nil {
		s.log.Warn("slug cache invalidation failed", zap.Strings("slugs", slugs), zap.Error(err))
	}
}

func bulkError(err error) error {
	if errors.Is(err, store.ErrInvalidUpdate) {
		return Invalid(err.Error())
	}
	return err
}
