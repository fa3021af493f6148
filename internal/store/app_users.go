package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/epkadmin/internal/models"
)

// AppUsers persists end-user profiles.
type AppUsers struct {
	db *gorm.DB
}

// NewAppUsers constructs AppUsers.
func NewAppUsers(db *gorm.DB) *AppUsers {
	return &AppUsers{db: db}
}

// List returns one page of users matching q and the total match count.
func (s *AppUsers) List(ctx context.Context, q ListQuery) ([]models.AppUser, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AppUser{})
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		query = query.Where(
			"name ILIKE ? OR email ILIKE ? OR phone_number ILIKE ? OR stage_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]models.AppUser, 0)
	if err := query.
		Order(orderClause(appUserSortColumns, q.SortBy, q.SortOrder)).
		Limit(q.Limit).Offset(q.Offset()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Get loads a user by id.
func (s *AppUsers) Get(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	var user models.AppUser
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create inserts user.
func (s *AppUsers) Create(ctx context.Context, user *models.AppUser) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

// Save writes every column of user and bumps updatedAt.
func (s *AppUsers) Save(ctx context.Context, user *models.AppUser) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

// Delete removes a user by id.
func (s *AppUsers) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.AppUser{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdate applies updates to every user in ids and returns the number changed.
func (s *AppUsers) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error) {
	columns, err := columnUpdates(appUserBulkFields, updates, time.Now())
	if err != nil {
		return 0, err
	}
	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).Model(&models.AppUser{}).Where("id IN ?", parsed).Updates(columns)
	return result.RowsAffected, translate(result.Error)
}

// BulkDelete removes every user in ids and returns the number removed.
func (s *AppUsers) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	parsed := parseIDs(ids)
	if len(parsed) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Where("id IN ?", parsed).Delete(&models.AppUser{})
	return result.RowsAffected, result.Error
}
