package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// AdminRole is the role value that unlocks bulk operations.
const AdminRole = "admin"

// AdminUser is a staff account that signs in to the admin panel.
type AdminUser struct {
	BaseModel
	Name             string     `gorm:"not null" json:"name"`
	Organization     string     `gorm:"not null" json:"organization"`
	OrganizationSize string     `gorm:"not null" json:"organizationSize"`
	Role             string     `gorm:"not null" json:"role"`
	Phone            string     `gorm:"uniqueIndex;not null" json:"phone"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string     `gorm:"column:password;not null" json:"-"`
	OTP              *string    `gorm:"column:otp" json:"-"`
	OTPExpires       *time.Time `gorm:"column:otp_expires" json:"-"`
	Verified         bool       `gorm:"not null;default:false" json:"verified"`
}

// BeforeSave keeps emails case-folded so lookups stay exact matches.
func (u *AdminUser) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// SetOTP stores a one-time code together with its expiry.
func (u *AdminUser) SetOTP(code string, expires time.Time) {
	u.OTP = &code
	u.OTPExpires = &expires
}

// ClearOTP removes the pending code and its expiry.
func (u *AdminUser) ClearOTP() {
	u.OTP = nil
	u.OTPExpires = nil
}

// IsAdmin compares the free-text role against AdminRole.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == AdminRole
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
