package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/store"
)

type fakeAdminUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.AdminUser
}

func newFakeAdminUsers() *fakeAdminUsers {
	return &fakeAdminUsers{users: map[uuid.UUID]*models.AdminUser{}}
}

func (f *fakeAdminUsers) Create(_ context.Context, user *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return store.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeAdminUsers) Save(_ context.Context, user *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeAdminUsers) FindByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdminUsers) find(match func(*models.AdminUser) bool) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAdminUsers) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	email = models.NormalizeEmail(email)
	return f.find(func(u *models.AdminUser) bool { return u.Email == email })
}

func (f *fakeAdminUsers) FindByLogin(_ context.Context, identifier string) (*models.AdminUser, error) {
	email := models.NormalizeEmail(identifier)
	return f.find(func(u *models.AdminUser) bool { return u.Email == email || u.Phone == identifier })
}

func (f *fakeAdminUsers) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	_, err := f.find(func(u *models.AdminUser) bool { return u.Email == email || u.Phone == phone })
	return err == nil, nil
}

func (f *fakeAdminUsers) FindByOTP(_ context.Context, email, otp string, now time.Time) (*models.AdminUser, error) {
	email = models.NormalizeEmail(email)
	return f.find(func(u *models.AdminUser) bool { return u.Email == email && otpMatches(u, otp, now) })
}

// otpMatches is the in-memory form of the store's otp lookup predicate.
func otpMatches(u *models.AdminUser, otp string, now time.Time) bool {
	if u.OTP == nil || u.OTPExpires == nil {
		return false
	}
	return *u.OTP == otp && u.OTPExpires.After(now)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) SendOTP(ctx context.Context, destination, code string, purpose OTPPurpose) error {
	return m.Called(ctx, destination, code, purpose).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifySignup(ctx context.Context, user *models.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockNotifier) NotifyImport(ctx context.Context, result ImportResult) error {
	return m.Called(ctx, result).Error(0)
}

type fakeEPKs struct {
	mu   sync.Mutex
	epks map[uuid.UUID]*models.EPK
	// bulkUpdates records the raw updates passed to BulkUpdate.
	bulkUpdates []map[string]interface{}
}

func newFakeEPKs() *fakeEPKs {
	return &fakeEPKs{epks: map[uuid.UUID]*models.EPK{}}
}

func (f *fakeEPKs) List(_ context.Context, q store.EPKQuery) ([]models.EPK, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.EPK, 0, len(f.epks))
	for _, e := range f.epks {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ArtistName < out[j].ArtistName })
	return out, int64(len(out)), nil
}

func (f *fakeEPKs) Get(_ context.Context, id uuid.UUID) (*models.EPK, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.epks[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeEPKs) GetBySlug(_ context.Context, slug string) (*models.EPK, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.epks {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeEPKs) Create(_ context.Context, epk *models.EPK) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.epks {
		if e.Slug == epk.Slug {
			return store.ErrDuplicate
		}
	}
	if epk.ID == uuid.Nil {
		epk.ID = uuid.New()
	}
	cp := *epk
	f.epks[epk.ID] = &cp
	return nil
}

func (f *fakeEPKs) Save(_ context.Context, epk *models.EPK) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, e := range f.epks {
		if id != epk.ID && e.Slug == epk.Slug {
			return store.ErrDuplicate
		}
	}
	cp := *epk
	f.epks[epk.ID] = &cp
	return nil
}

func (f *fakeEPKs) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.epks[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.epks, id)
	return nil
}

func (f *fakeEPKs) SlugsByIDs(_ context.Context, ids []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slugs []string
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if e, ok := f.epks[id]; ok {
			slugs = append(slugs, e.Slug)
		}
	}
	return slugs, nil
}

func (f *fakeEPKs) BulkUpdate(_ context.Context, ids []string, updates map[string]interface{}, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkUpdates = append(f.bulkUpdates, updates)
	if _, ok := updates["bogus"]; ok {
		return 0, store.ErrInvalidUpdate
	}
	var n int64
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if e, ok := f.epks[id]; ok {
			if v, ok := updates["isPublished"].(bool); ok {
				e.Publish(v, now)
			}
			n++
		}
	}
	return n, nil
}

func (f *fakeEPKs) BulkDelete(_ context.Context, ids []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if _, ok := f.epks[id]; ok {
			delete(f.epks, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeEPKs) Stats(context.Context) (*store.EPKStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &store.EPKStats{TotalEPKs: int64(len(f.epks))}
	for _, e := range f.epks {
		if e.IsPublished {
			stats.PublishedEPKs++
		}
	}
	stats.DraftEPKs = stats.TotalEPKs - stats.PublishedEPKs
	return stats, nil
}

type memorySlugCache struct {
	mu          sync.Mutex
	entries     map[string]*models.EPK
	invalidated []string
}

func newMemorySlugCache() *memorySlugCache {
	return &memorySlugCache{entries: map[string]*models.EPK{}}
}

func (c *memorySlugCache) Get(_ context.Context, slug string) (*models.EPK, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[slug]
	return e, ok, nil
}

func (c *memorySlugCache) Set(_ context.Context, epk *models.EPK) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[epk.Slug] = epk
	return nil
}

func (c *memorySlugCache) Invalidate(_ context.Context, slugs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range slugs {
		delete(c.entries, s)
	}
	c.invalidated = append(c.invalidated, slugs...)
	return nil
}
