package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/epkadmin/internal/models"
)

// AdminUsers persists admin panel accounts.
type AdminUsers struct {
	db *gorm.DB
}

// NewAdminUsers constructs AdminUsers.
func NewAdminUsers(db *gorm.DB) *AdminUsers {
	return &AdminUsers{db: db}
}

// Create inserts user. A taken email or phone yields ErrDuplicate.
func (s *AdminUsers) Create(ctx context.Context, user *models.AdminUser) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

// Save writes every column of user.
func (s *AdminUsers) Save(ctx context.Context, user *models.AdminUser) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

// FindByID loads a user by primary key.
func (s *AdminUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail loads a user by email.
func (s *AdminUsers) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.WithContext(ctx).First(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByLogin loads the user whose email or phone equals identifier.
func (s *AdminUsers) FindByLogin(ctx context.Context, identifier string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := s.db.WithContext(ctx).
		Where("email = ? OR phone = ?", models.NormalizeEmail(identifier), identifier).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ExistsByEmailOrPhone reports whether either value is already registered.
func (s *AdminUsers) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("email = ? OR phone = ?", models.NormalizeEmail(email), phone).
		Count(&count).Error
	return count > 0, err
}

// FindByOTP loads the user with email whose pending code is otp and expires after now.
func (s *AdminUsers) FindByOTP(ctx context.Context, email, otp string, now time.Time) (*models.AdminUser, error) {
	var user models.AdminUser
	err := s.db.WithContext(ctx).
		Where("email = ? AND otp = ? AND otp_expires > ?", models.NormalizeEmail(email), otp, now).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
