package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EPK is an artist's electronic press kit.
type EPK struct {
	BaseModel
	UserID           string     `gorm:"index;not null" json:"userId" validate:"required"`
	ArtistName       string     `gorm:"not null" json:"artistName" validate:"required"`
	ArtistType       string     `gorm:"index;not null" json:"artistType" validate:"required"`
	Slug             string     `gorm:"uniqueIndex;not null" json:"slug"`
	Theme            Theme      `gorm:"type:jsonb" json:"theme"`
	Sections         Sections   `gorm:"type:jsonb" json:"sections"`
	IsPublished      bool       `gorm:"not null;default:false;index" json:"isPublished"`
	PublishedAt      *time.Time `json:"publishedAt"`
	SeoEnabled       bool       `gorm:"not null" json:"seoEnabled"`
	AnalyticsEnabled bool       `gorm:"not null" json:"analyticsEnabled"`
	ArtistMode       string     `gorm:"not null;default:solo" json:"artistMode" validate:"omitempty,oneof=solo group duo"`
	ManagedBy        string     `gorm:"not null;default:artist" json:"managedBy" validate:"omitempty,oneof=artist manager"`
	ManagerPhone     string     `json:"managerPhone"`
	EPKScore         EPKScore   `gorm:"column:epk_score;type:jsonb" json:"epkScore"`
}

// TableName pins the table name.
func (EPK) TableName() string {
	return "epks"
}

// Publish flips the published flag. The publish timestamp is only set on the
// first transition to published and is never cleared.
func (e *EPK) Publish(published bool, now time.Time) {
	e.IsPublished = published
	if published && e.PublishedAt == nil {
		e.PublishedAt = &now
	}
}

// ApplyDefaults fills the enum defaults that zero values leave empty.
func (e *EPK) ApplyDefaults() {
	if e.ArtistMode == "" {
		e.ArtistMode = "solo"
	}
	if e.ManagedBy == "" {
		e.ManagedBy = "artist"
	}
	if e.Sections == nil {
		e.Sections = Sections{}
	}
}

// SectionScores holds one score per section. Nothing in this service computes
// them; they are written by an external scorer.
type SectionScores struct {
	Hero          int `json:"hero"`
	ProfileStats  int `json:"profileStats"`
	GigExperience int `json:"gigExperience"`
	MyWorks       int `json:"myWorks"`
	MediaAssets   int `json:"mediaAssets"`
	ArtistCrew    int `json:"artistCrew"`
	ArtistBand    int `json:"artistBand"`
	Affiliations  int `json:"affiliations"`
	Endorsements  int `json:"endorsements"`
}

// EPKScore is the completeness score of an EPK.
type EPKScore struct {
	Last       int           `json:"last"`
	Overall    int           `json:"overall"`
	PerSection SectionScores `json:"perSection"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// NewEPKScore returns a zero score stamped at now.
func NewEPKScore(now time.Time) EPKScore {
	return EPKScore{UpdatedAt: now}
}

// Value implements driver.Valuer.
func (s EPKScore) Value() (driver.Value, error) {
	return jsonValue(s)
}

// Scan implements sql.Scanner.
func (s *EPKScore) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(value interface{}, dest interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	return nil
}
