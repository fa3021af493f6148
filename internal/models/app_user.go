package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AppUser is an end-user profile of the artist app.
type AppUser struct {
	BaseModel
	PhoneNumber            string         `gorm:"uniqueIndex;not null" json:"phoneNumber" validate:"required"`
	Name                   string         `json:"name"`
	Email                  string         `json:"email" validate:"omitempty,email"`
	Pronouns               string         `json:"pronouns"`
	Dob                    *time.Time     `json:"dob"`
	IsVerified             bool           `gorm:"not null;default:false" json:"isVerified"`
	Role                   string         `gorm:"not null;default:artist" json:"role" validate:"omitempty,oneof=artist manager"`
	Roles                  pq.StringArray `gorm:"type:text[]" json:"roles"`
	ArtistType             string         `json:"artistType"`
	PerformanceType        string         `json:"performanceType"`
	StageName              string         `json:"stageName"`
	EpkManagementType      string         `json:"epkManagementType"`
	HasCompletedOnboarding bool           `gorm:"not null;default:false" json:"hasCompletedOnboarding"`
	DashboardTourSeen      bool           `gorm:"not null;default:false" json:"dashboardTourSeen"`
	Membership             Membership     `gorm:"embedded;embeddedPrefix:membership_" json:"membership"`
}

// Membership describes the paid plan attached to an app user.
type Membership struct {
	Status        string            `json:"status"`
	StartedAt     *time.Time        `json:"startedAt"`
	ValidTill     *time.Time        `json:"validTill"`
	Amount        float64           `json:"amount"`
	LastOrderID   string            `json:"lastOrderId"`
	LastPaymentID string            `json:"lastPaymentId"`
	JoinOrder     int               `json:"joinOrder"`
	Creator       MembershipCreator `gorm:"embedded;embeddedPrefix:creator_" json:"creator"`
}

// MembershipCreator identifies the creator code a membership was sold under.
type MembershipCreator struct {
	Code   string `json:"code"`
	Number int    `json:"number"`
}

// BeforeSave fills list defaults that Postgres cannot express for arrays.
func (u *AppUser) BeforeSave(tx *gorm.DB) error {
	if u.Roles == nil {
		u.Roles = pq.StringArray{}
	}
	if u.Role == "" {
		u.Role = "artist"
	}
	return nil
}
