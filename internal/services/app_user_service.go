package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/store"
)

// AppUserRepository is the storage AppUserService needs.
type AppUserRepository interface {
	List(ctx context.Context, q store.ListQuery) ([]models.AppUser, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.AppUser, error)
	Create(ctx context.Context, user *models.AppUser) error
	Save(ctx context.Context, user *models.AppUser) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

// AppUserService manages app user profiles on behalf of admins.
type AppUserService struct {
	users AppUserRepository
	log   *zap.Logger
}

// NewAppUserService constructs AppUserService.
func NewAppUserService(users AppUserRepository, log *zap.Logger) *AppUserService {
	return &AppUserService{users: users, log: log}
}

// List returns one page of app users and the total match count.
func (s *AppUserService) List(ctx context.Context, q store.ListQuery) ([]models.AppUser, int64, error) {
	return s.users.List(ctx, q)
}

// Get loads an app user by id.
func (s *AppUserService) Get(ctx context.Context, id string) (*models.AppUser, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrAppUserNotFound
	}
	user, err := s.users.Get(ctx, parsed)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAppUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create stores a new app user decoded from body.
func (s *AppUserService) Create(ctx context.Context, body []byte) (*models.AppUser, error) {
	user := &models.AppUser{}
	if err := applyPatch(body, user, nil); err != nil {
		return nil, err
	}
	if err := Validate(user); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	s.log.Info("app user created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Update replaces the top-level fields present in patch.
func (s *AppUserService) Update(ctx context.Context, id string, patch []byte) (*models.AppUser, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = applyPatch(patch, user, map[string]func(){
		"membership": func() { user.Membership = models.Membership{} },
		"roles":      func() { user.Roles = nil },
	})
	if err != nil {
		return nil, err
	}

	if err := Validate(user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return user, nil
}

// Delete removes an app user.
func (s *AppUserService) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrAppUserNotFound
	}
	if err := s.users.Delete(ctx, parsed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppUserNotFound
		}
		return err
	}
	return nil
}

// BulkUpdate applies updates to every app user in ids.
func (s *AppUserService) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error) {
	n, err := s.users.BulkUpdate(ctx, ids, updates)
	if err != nil {
		return 0, bulkError(err)
	}
	return n, nil
}

// BulkDelete removes every app user in ids.
func (s *AppUserService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	return s.users.BulkDelete(ctx, ids)
}
