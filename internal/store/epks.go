package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/epkadmin/internal/models"
)

const heroStageNameMatch = `EXISTS (SELECT 1 FROM jsonb_array_elements(sections) AS s
	WHERE s->>'type' = 'hero' AND s->'data'->>'stageName' ILIKE ?)`

// EPKs persists press kits.
type EPKs struct {
	db *gorm.DB
}

// NewEPKs constructs EPKs.
func NewEPKs(db *gorm.DB) *EPKs {
	return &EPKs{db: db}
}

// ArtistTypeCount is one bucket of the artist type breakdown.
type ArtistTypeCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

// RecentEPK is the summary row shown for the latest EPKs.
type RecentEPK struct {
	ID         uuid.UUID `json:"id"`
	ArtistName string    `json:"artistName"`
	ArtistType string    `json:"artistType"`
	CreatedAt  time.Time `json:"createdAt"`
	EPKScore   struct {
		Overall int `json:"overall"`
	} `json:"epkScore"`
}

// EPKStats summarises the whole collection.
type EPKStats struct {
	TotalEPKs     int64             `json:"totalEPKs"`
	PublishedEPKs int64             `json:"publishedEPKs"`
	DraftEPKs     int64             `json:"draftEPKs"`
	ArtistTypes   []ArtistTypeCount `json:"artistTypes"`
	AverageScore  float64           `json:"averageScore"`
	RecentEPKs    []RecentEPK       `json:"recentEPKs"`
}

// List returns one page of EPKs matching q and the total match count.
func (s *EPKs) List(ctx context.Context, q EPKQuery) ([]models.EPK, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.EPK{})

	if q.Search != "" {
		pattern := containsPattern(q.Search)
		query = query.Where("artist_name ILIKE ? OR slug ILIKE ? OR "+heroStageNameMatch, pattern, pattern, pattern)
	}
	if q.ArtistType != "" {
		query = query.Where("artist_type = ?", q.ArtistType)
	}
	switch q.Status {
	case "published":
		query = query.Where("is_published = ?", true)
	case "draft":
		query = query.Where("is_published = ?", false)
	}
	if q.ArtistMode != "" {
		query = query.Where("artist_mode = ?", q.ArtistMode)
	}
	if q.MinScore > 0 {
		query = query.Where("(epk_score->>'overall')::int >= ?", q.MinScore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	epks := make([]models.EPK, 0)
	if err := query.
		Order(orderClause(epkSortColumns, q.SortBy, q.SortOrder)).
		Limit(q.Limit).Offset(q.Offset()).
		Find(&epks).Error; err != nil {
		return nil, 0, err
	}
	return epks, total, nil
}

// Get loads an EPK by id.
func (s *EPKs) Get(ctx context.Context, id uuid.UUID) (*models.EPK, error) {
	var epk models.EPK
	if err := s.db.WithContext(ctx).First(&epk, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &epk, nil
}

// GetBySlug loads an EPK by its public slug.
func (s *EPKs) GetBySlug(ctx context.Context, slug string) (*models.EPK, error) {
	var epk models.EPK
	if err := s.db.WithContext(ctx).First(&epk, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &epk, nil
}

// Create inserts epk. A taken slug yields ErrDuplicate.
func (s *EPKs) Create(ctx context.Context, epk *models.EPK) error {
	return translate(s.db.WithContext(ctx).Create(epk).Error)
}

// Save writes every column of epk.
func (s *EPKs) Save(ctx context.Context, epk *models.EPK) error {
	return translate(s.db.WithContext(ctx).Save(epk).Error)
}

// Delete removes an EPK by id.
func (s *EPKs) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.EPK{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugsByIDs returns the slugs of the EPKs in ids.
func (s *EPKs) SlugsByIDs(ctx context.Context, ids []string) ([]string, error) {
	parsed := parseIDs(ids)
	slugs := make([]string, 0, len(parsed))
	if len(parsed) == 0 {
		return slugs, nil
	}
	err := s.db.WithContext(ctx).Model(&models.EPK{}).Where("id IN ?", parsed).Pluck("slug", &slugs).Error
	return slugs, err
}

// BulkUpdate applies updates to every EPK in ids and returns the number changed.
// Publishing through a bulk update stamps publishedAt on rows that never had one.
func (s *EPKs) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}, now time.Time) (int64, error) {
	columns, err := columnUpdates(epkBulkFields, updates, now)
	if err != nil {
		return 0, err
	}
	if published, ok := columns["is_published"].(bool); ok && published {
		columns["published_at"] = gorm.Expr("COALESCE(published_at, ?)", now)
	}

	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Model(&models.EPK{}).Where("id IN ?", parsed).Updates(columns)
	return result.RowsAffected, translate(result.Error)
}

// BulkDelete removes every EPK in ids and returns the number removed.
func (s *EPKs) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", parsed).Delete(&models.EPK{})
	return result.RowsAffected, result.Error
}

// Stats computes collection wide counters, the artist type breakdown and the
// five most recently created EPKs.
func (s *EPKs) Stats(ctx context.Context) (*EPKStats, error) {
	db := s.db.WithContext(ctx)
	stats := &EPKStats{}

	if err := db.Model(&models.EPK{}).Count(&stats.TotalEPKs).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.EPK{}).Where("is_published = ?", true).Count(&stats.PublishedEPKs).Error; err != nil {
		return nil, err
	}
	stats.DraftEPKs = stats.TotalEPKs - stats.PublishedEPKs

	stats.ArtistTypes = make([]ArtistTypeCount, 0)
	if err := db.Model(&models.EPK{}).
		Select("artist_type AS id, COUNT(*) AS count").
		Group("artist_type").
		Order("count DESC").
		Scan(&stats.ArtistTypes).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.EPK{}).
		Select("COALESCE(AVG((epk_score->>'overall')::numeric), 0)").
		Scan(&stats.AverageScore).Error; err != nil {
		return nil, err
	}

	var recent []models.EPK
	if err := db.Select("id", "artist_name", "artist_type", "created_at", "epk_score").
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	stats.RecentEPKs = make([]RecentEPK, 0, len(recent))
	for _, epk := range recent {
		row := RecentEPK{
			ID:         epk.ID,
			ArtistName: epk.ArtistName,
			ArtistType: epk.ArtistType,
			CreatedAt:  epk.CreatedAt,
		}
		row.EPKScore.Overall = epk.EPKScore.Overall
		stats.RecentEPKs = append(stats.RecentEPKs, row)
	}
	return stats, nil
}
