package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/models"
)

type epkFixture struct {
	svc      *EPKService
	repo     *fakeEPKs
	cache    *memorySlugCache
	notifier *mockNotifier
	now      time.Time
}

func newEPKFixture(t *testing.T) *epkFixture {
	t.Helper()
	f := &epkFixture{
		repo:     newFakeEPKs(),
		cache:    newMemorySlugCache(),
		notifier: &mockNotifier{},
		now:      time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewEPKService(f.repo, f.cache, f.notifier, zap.NewNop())
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

func (f *epkFixture) create(t *testing.T, name string) *models.EPK {
	t.Helper()
	epk, err := f.svc.Create(context.Background(), CreateEPKInput{UserID: "u1", ArtistName: name, ArtistType: "DJ"})
	require.NoError(t, err)
	return epk
}

func TestCreateEPKFillsSkeleton(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")

	assert.NotEqual(t, uuid.Nil, epk.ID)
	assert.Regexp(t, `^[0-9a-f]{8}/night-owl$`, epk.Slug)
	assert.Equal(t, "solo", epk.ArtistMode)
	assert.True(t, epk.SeoEnabled)
	assert.Equal(t, DefaultTheme(), epk.Theme)
	assert.Equal(t, f.now, epk.EPKScore.UpdatedAt)
	require.Len(t, epk.Sections, 9)

	hero := epk.Sections[0].Data.(*models.HeroData)
	assert.Equal(t, "Night Owl", hero.StageName)
	assert.Equal(t, "DJ", hero.ArtForm)
	assert.Equal(t, DefaultHeroImage, hero.Image)
}

func TestCreateEPKFromNameAndTypeOnly(t *testing.T) {
	f := newEPKFixture(t)

	epk, err := f.svc.Create(context.Background(), CreateEPKInput{ArtistName: "Test Band", ArtistType: "Music Band"})
	require.NoError(t, err)

	assert.Regexp(t, `^user_\d+_[0-9a-z]{9}$`, epk.UserID)
	assert.Regexp(t, `^[0-9a-f]{8}/test-band$`, epk.Slug)
	assert.Equal(t, 0, epk.EPKScore.Overall)
	require.Len(t, epk.Sections, 9)

	hero, ok := epk.Sections.Find(models.SectionHero)
	require.True(t, ok)
	assert.Equal(t, "Test Band", hero.Data.(*models.HeroData).StageName)
	assert.Equal(t, "Music Band", hero.Data.(*models.HeroData).ArtForm)

	stored, err := f.svc.Get(context.Background(), epk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, epk.UserID, stored.UserID)
}

func TestCreateEPKValidation(t *testing.T) {
	f := newEPKFixture(t)

	_, err := f.svc.Create(context.Background(), CreateEPKInput{ArtistName: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.NotContains(t, err.Error(), "userId")
	assert.Contains(t, err.Error(), "artistType")

	_, err = f.svc.Create(context.Background(), CreateEPKInput{UserID: "u", ArtistName: "x", ArtistType: "y", ArtistMode: "trio"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Create(context.Background(), CreateEPKInput{UserID: "u", ArtistName: "x", ArtistType: "y", ID: "nope"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCreateEPKDuplicateSlug(t *testing.T) {
	f := newEPKFixture(t)
	in := CreateEPKInput{UserID: "u1", ArtistName: "A", ArtistType: "DJ", Slug: "fixed/a"}
	_, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), in)
	assert.Equal(t, ErrSlugTaken, err)
}

func TestGetEPK(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")

	got, err := f.svc.Get(context.Background(), epk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, epk.Slug, got.Slug)

	_, err = f.svc.Get(context.Background(), "not-a-uuid")
	assert.Equal(t, ErrEPKNotFound, err)
	_, err = f.svc.Get(context.Background(), uuid.NewString())
	assert.Equal(t, ErrEPKNotFound, err)
}

func TestGetBySlugUsesCache(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")

	got, err := f.svc.GetBySlug(context.Background(), epk.Slug)
	require.NoError(t, err)
	assert.Equal(t, epk.ID, got.ID)

	_, cached, _ := f.cache.Get(context.Background(), epk.Slug)
	assert.True(t, cached)

	// Served from cache even after the row is gone.
	delete(f.repo.epks, epk.ID)
	got, err = f.svc.GetBySlug(context.Background(), epk.Slug)
	require.NoError(t, err)
	assert.Equal(t, epk.ID, got.ID)

	_, err = f.svc.GetBySlug(context.Background(), "missing/slug")
	assert.Equal(t, ErrEPKNotFound, err)
}

func TestUpdateEPKReplacesTopLevelFields(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")
	_, err := f.svc.GetBySlug(context.Background(), epk.Slug)
	require.NoError(t, err)

	patch := []byte(`{
		"id": "` + uuid.NewString() + `",
		"artistName": "Day Owl",
		"slug": "custom/day-owl",
		"theme": {"primaryColor": "#111111"},
		"sections": [{"id":"hero","type":"hero","order":0,"data":{"stageName":"Day Owl"}}]
	}`)
	updated, err := f.svc.Update(context.Background(), epk.ID.String(), patch)
	require.NoError(t, err)

	assert.Equal(t, epk.ID, updated.ID)
	assert.Equal(t, "Day Owl", updated.ArtistName)
	assert.Equal(t, "DJ", updated.ArtistType)
	assert.Equal(t, "custom/day-owl", updated.Slug)
	assert.Equal(t, models.Theme{PrimaryColor: "#111111"}, updated.Theme)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, "Day Owl", updated.Sections[0].Data.(*models.HeroData).StageName)
	assert.Contains(t, f.cache.invalidated, epk.Slug)
}

func TestUpdateEPKRejectsInvalidPatch(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")

	_, err := f.svc.Update(context.Background(), epk.ID.String(), []byte(`[1,2]`))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Update(context.Background(), epk.ID.String(), []byte(`{"managedBy":"label"}`))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Update(context.Background(), epk.ID.String(), []byte(`{"sections":[{"id":"x","type":"x","data":{}}]}`))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Update(context.Background(), uuid.NewString(), []byte(`{}`))
	assert.Equal(t, ErrEPKNotFound, err)
}

func TestDeleteEPK(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")

	require.NoError(t, f.svc.Delete(context.Background(), epk.ID.String()))
	assert.Equal(t, ErrEPKNotFound, f.svc.Delete(context.Background(), epk.ID.String()))
	assert.Contains(t, f.cache.invalidated, epk.Slug)
}

func TestTogglePublish(t *testing.T) {
	f := newEPKFixture(t)
	epk := f.create(t, "Night Owl")
	first := f.now

	published, err := f.svc.TogglePublish(context.Background(), epk.ID.String())
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, first, *published.PublishedAt)

	f.now = f.now.Add(time.Hour)
	unpublished, err := f.svc.TogglePublish(context.Background(), epk.ID.String())
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
	assert.Equal(t, first, *unpublished.PublishedAt)

	f.now = f.now.Add(time.Hour)
	again, err := f.svc.TogglePublish(context.Background(), epk.ID.String())
	require.NoError(t, err)
	assert.True(t, again.IsPublished)
	assert.Equal(t, first, *again.PublishedAt)
}

func TestBulkOperations(t *testing.T) {
	f := newEPKFixture(t)
	a := f.create(t, "Alpha")
	b := f.create(t, "Beta")
	ids := []string{a.ID.String(), b.ID.String(), "garbage"}

	n, err := f.svc.BulkUpdate(context.Background(), ids, map[string]interface{}{"isPublished": true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.ElementsMatch(t, []string{a.Slug, b.Slug}, f.cache.invalidated)

	_, err = f.svc.BulkUpdate(context.Background(), ids, map[string]interface{}{"bogus": 1})
	assert.True(t, errors.Is(err, ErrValidation))

	n, err = f.svc.BulkDelete(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEPKs)
}

func TestImportCountsSuccessAndFailure(t *testing.T) {
	f := newEPKFixture(t)
	f.notifier.On("NotifyImport", mock.Anything, mock.MatchedBy(func(r ImportResult) bool {
		return r.Success == 2 && r.Failed == 3
	})).Return(errors.New("telegram down")).Once()

	result := f.svc.Import(context.Background(), []ImportRow{
		{"artistName": "Test Band", "artistType": "Music Band"},
		{"artistType": "DJ"},
		{"artistName": "Kay"},
		{"artistName": "Bad Works", "artistType": "DJ", "my_works_1_sampleName": "x", "my_works_1_type": "podcast"},
		{"artistName": "Second", "artistType": "Singer", "isPublished": "true"},
	})

	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "Unknown", result.Errors[0].ArtistName)
	assert.Equal(t, ErrMissingRequiredColumns.Error(), result.Errors[0].Error)
	assert.Equal(t, "Kay", result.Errors[1].ArtistName)
	assert.Equal(t, ErrMissingRequiredColumns.Error(), result.Errors[1].Error)
	assert.Equal(t, "Bad Works", result.Errors[2].ArtistName)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEPKs)
	assert.Equal(t, int64(1), stats.PublishedEPKs)
	f.notifier.AssertExpectations(t)
}

func TestImportEmptyBatch(t *testing.T) {
	f := newEPKFixture(t)
	f.notifier.On("NotifyImport", mock.Anything, mock.Anything).Return(nil).Once()

	result := f.svc.Import(context.Background(), nil)
	assert.Equal(t, 0, result.Success)
	assert.Equal(t, 0, result.Failed)
	assert.NotNil(t, result.Errors)
}

func TestNewEPKServiceWithoutCache(t *testing.T) {
	repo := newFakeEPKs()
	svc := NewEPKService(repo, nil, nil, zap.NewNop())
	epk, err := svc.Create(context.Background(), CreateEPKInput{UserID: "u", ArtistName: "Solo", ArtistType: "DJ"})
	require.NoError(t, err)

	got, err := svc.GetBySlug(context.Background(), epk.Slug)
	require.NoError(t, err)
	assert.Equal(t, epk.ID, got.ID)
	assert.Len(t, svc.Template().Headers, len(BuildImportTemplate().Headers))
}
