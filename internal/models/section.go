package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SectionType names one of the fixed content blocks of an EPK.
type SectionType string

const (
	SectionHero          SectionType = "hero"
	SectionProfileStats  SectionType = "profile-stats"
	SectionGigExperience SectionType = "gig-experience"
	SectionMyWorks       SectionType = "my-works"
	SectionMediaAssets   SectionType = "media-assets"
	SectionArtistCrew    SectionType = "artist-crew"
	SectionArtistBand    SectionType = "artist-band"
	SectionAffiliations  SectionType = "affiliations"
	SectionEndorsements  SectionType = "endorsements"
)

// SectionTypes returns every section type in skeleton order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionProfileStats,
		SectionGigExperience,
		SectionMyWorks,
		SectionMediaAssets,
		SectionArtistCrew,
		SectionArtistBand,
		SectionAffiliations,
		SectionEndorsements,
	}
}

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// SectionData is the payload of a section. Each section type has exactly one
// concrete implementation.
type SectionData interface {
	SectionType() SectionType
}

// Section is one ordered block of an EPK.
type Section struct {
	ID    SectionType `json:"id"`
	Type  SectionType `json:"type"`
	Order int         `json:"order"`
	Data  SectionData `json:"data"`
}

// NewSectionData returns an empty payload for t.
func NewSectionData(t SectionType) (SectionData, error) {
	switch t {
	case SectionHero:
		return &HeroData{}, nil
	case SectionProfileStats:
		return &ProfileStatsData{}, nil
	case SectionGigExperience:
		return &GigExperienceData{}, nil
	case SectionMyWorks:
		return &MyWorksData{}, nil
	case SectionMediaAssets:
		return &MediaAssetsData{}, nil
	case SectionArtistCrew:
		return &ArtistCrewData{}, nil
	case SectionArtistBand:
		return &ArtistBandData{}, nil
	case SectionAffiliations:
		return &AffiliationsData{}, nil
	case SectionEndorsements:
		return &EndorsementsData{}, nil
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// UnmarshalJSON decodes data into the payload type selected by the section type.
func (s *Section) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID    SectionType     `json:"id"`
		Type  SectionType     `json:"type"`
		Order int             `json:"order"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		raw.Type = raw.ID
	}
	if raw.ID == "" {
		raw.ID = raw.Type
	}

	data, err := NewSectionData(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return fmt.Errorf("section %s: %w", raw.Type, err)
		}
	}

	s.ID = raw.ID
	s.Type = raw.Type
	s.Order = raw.Order
	s.Data = data
	return nil
}

// Validate checks the closed enums the payload schemas declare.
func (s Section) Validate() error {
	if !s.ID.Valid() {
		return fmt.Errorf("unknown section id %q", s.ID)
	}
	if !s.Type.Valid() {
		return fmt.Errorf("unknown section type %q", s.Type)
	}
	if s.Data != nil && s.Data.SectionType() != s.Type {
		return fmt.Errorf("section %s carries %s data", s.Type, s.Data.SectionType())
	}

	switch data := s.Data.(type) {
	case *MyWorksData:
		for _, work := range data.Works {
			if !work.Type.Valid() {
				return fmt.Errorf("work %q has unknown type %q", work.SampleName, work.Type)
			}
		}
	case *MediaAssetsData:
		for _, asset := range data.Assets {
			if asset.Type != MediaImage && asset.Type != MediaVideo {
				return fmt.Errorf("media asset %q has unknown type %q", asset.Title, asset.Type)
			}
		}
	}
	return nil
}

// Sections is the ordered section list, stored as a jsonb array.
type Sections []Section

// Validate checks every section.
func (s Sections) Validate() error {
	for _, section := range s {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first section of type t.
func (s Sections) Find(t SectionType) (Section, bool) {
	for _, section := range s {
		if section.Type == t {
			return section, true
		}
	}
	return Section{}, false
}

// Value implements driver.Valuer.
func (s Sections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue(s)
}

// Scan implements sql.Scanner.
func (s *Sections) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Palette holds the resolved colours computed by the editor.
type Palette struct {
	Primary    string `json:"primary,omitempty"`
	Text       string `json:"text,omitempty"`
	BioText    string `json:"bioText,omitempty"`
	Background string `json:"background,omitempty"`
}

// Theme is the colour scheme of an EPK or of one of its sections.
type Theme struct {
	PrimaryColor     string   `json:"primaryColor,omitempty"`
	TextColor        string   `json:"textColor,omitempty"`
	BioTextColor     string   `json:"bioTextColor,omitempty"`
	BackgroundColor  string   `json:"backgroundColor,omitempty"`
	GradientPresetID string   `json:"gradientPresetId,omitempty"`
	UseGradient      bool     `json:"useGradient"`
	Resolved         *Palette `json:"resolved,omitempty"`
}

// Value implements driver.Valuer.
func (t Theme) Value() (driver.Value, error) {
	return jsonValue(t)
}

// Scan implements sql.Scanner.
func (t *Theme) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// SectionStyle holds the colour fields shared by the themed list sections.
type SectionStyle struct {
	PrimaryColor     string `json:"primaryColor,omitempty"`
	BackgroundColor  string `json:"backgroundColor,omitempty"`
	UseGradient      bool   `json:"useGradient"`
	Theme            *Theme `json:"theme,omitempty"`
	TextColor        string `json:"textColor,omitempty"`
	BioTextColor     string `json:"bioTextColor,omitempty"`
	GradientPresetID string `json:"gradientPresetId,omitempty"`
}

// HeroData is the banner at the top of an EPK.
type HeroData struct {
	Mode             string `json:"mode"`
	ImageShape       string `json:"imageShape"`
	UseGradient      bool   `json:"useGradient"`
	GradientPresetID string `json:"gradientPresetId"`
	ButtonLinkMode   string `json:"buttonLinkMode"`
	ButtonSectionID  string `json:"buttonSectionId,omitempty"`
	ButtonTarget     string `json:"buttonTarget"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	StageName        string `json:"stageName"`
	ArtForm          string `json:"artForm"`
	BackgroundColor  string `json:"backgroundColor,omitempty"`
	TextColor        string `json:"textColor,omitempty"`
	ShortBio         string `json:"shortBio"`
	PrimaryColor     string `json:"primaryColor,omitempty"`
	Theme            *Theme `json:"theme,omitempty"`
	ButtonText       string `json:"buttonText,omitempty"`
	ButtonLink       string `json:"buttonLink,omitempty"`
	Image            string `json:"image"`
	BackgroundImage  string `json:"backgroundImage"`
}

func (*HeroData) SectionType() SectionType { return SectionHero }

// SocialLinks lists the profile's social media handles.
type SocialLinks struct {
	Instagram  string `json:"instagram,omitempty"`
	Spotify    string `json:"spotify,omitempty"`
	Youtube    string `json:"youtube,omitempty"`
	Soundcloud string `json:"soundcloud,omitempty"`
	Tiktok     string `json:"tiktok,omitempty"`
	Patreon    string `json:"patreon,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	Linkedin   string `json:"linkedin,omitempty"`
}

// HireRange is the booking fee range. Max is open-ended when nil.
type HireRange struct {
	Min      int    `json:"min"`
	Max      *int   `json:"max"`
	Currency string `json:"currency"`
}

// ProfileStatsData carries the long bio and headline numbers.
type ProfileStatsData struct {
	PrimaryColor            string      `json:"primaryColor,omitempty"`
	BackgroundColor         string      `json:"backgroundColor,omitempty"`
	UseGradient             bool        `json:"useGradient"`
	Theme                   *Theme      `json:"theme,omitempty"`
	ArtStyle                string      `json:"artStyle"`
	LongBio                 string      `json:"longBio"`
	SocialMedia             SocialLinks `json:"socialMedia"`
	Tags                    []string    `json:"tags"`
	Likes                   int         `json:"likes"`
	Sends                   int         `json:"sends"`
	EpkViews                int         `json:"epkViews"`
	ExperienceYears         int         `json:"experienceYears"`
	HireRange               HireRange   `json:"hireRange"`
	GigsCount               int         `json:"gigsCount"`
	CountriesTravelledCount int         `json:"countriesTravelledCount"`
	CitiesTravelledCount    int         `json:"citiesTravelledCount"`
}

func (*ProfileStatsData) SectionType() SectionType { return SectionProfileStats }

// Experience is one past gig.
type Experience struct {
	ID          string `json:"id"`
	EventName   string `json:"eventName"`
	Location    string `json:"location"`
	EventPhoto  string `json:"eventPhoto,omitempty"`
	EventDate   string `json:"eventDate,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// GigExperienceData lists past gigs.
type GigExperienceData struct {
	SectionStyle
	Experiences []Experience `json:"experiences"`
}

func (*GigExperienceData) SectionType() SectionType { return SectionGigExperience }

// WorkType is the medium of a work sample.
type WorkType string

const (
	WorkAudio WorkType = "audio"
	WorkVideo WorkType = "video"
	WorkImage WorkType = "image"
	WorkText  WorkType = "text"
)

// Valid reports whether t is a known work type.
func (t WorkType) Valid() bool {
	switch t {
	case WorkAudio, WorkVideo, WorkImage, WorkText:
		return true
	}
	return false
}

// WorkSample is one released work.
type WorkSample struct {
	ID            string   `json:"id"`
	Type          WorkType `json:"type"`
	SampleName    string   `json:"sampleName"`
	DateOfRelease string   `json:"dateOfRelease,omitempty"`
	Label         string   `json:"label,omitempty"`
	IsTopWork     bool     `json:"isTopWork"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	URL           string   `json:"url,omitempty"`
	Content       string   `json:"content,omitempty"`
}

// MyWorksData lists work samples.
type MyWorksData struct {
	SectionStyle
	Works []WorkSample `json:"works"`
}

func (*MyWorksData) SectionType() SectionType { return SectionMyWorks }

// MediaType is the kind of a media asset.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaAsset is a downloadable press asset.
type MediaAsset struct {
	ID          string    `json:"id"`
	Type        MediaType `json:"type"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
}

// MediaAssetsData lists press assets.
type MediaAssetsData struct {
	SectionStyle
	Title  string       `json:"title"`
	Assets []MediaAsset `json:"assets"`
}

func (*MediaAssetsData) SectionType() SectionType { return SectionMediaAssets }

// CrewMember is a person shown in the crew or band section.
type CrewMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Image       string `json:"image,omitempty"`
	EpkLink     string `json:"epkLink,omitempty"`
	Description string `json:"description,omitempty"`
}

// CrewData is the shared shape of the crew and band sections.
type CrewData struct {
	Title           string       `json:"title"`
	CrewMembers     []CrewMember `json:"crewMembers"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	TextColor       string       `json:"textColor,omitempty"`
	PrimaryColor    string       `json:"primaryColor,omitempty"`
	BioTextColor    string       `json:"bioTextColor,omitempty"`
	UseGradient     bool         `json:"useGradient"`
}

// ArtistCrewData is the off-stage crew.
type ArtistCrewData struct {
	CrewData
}

func (*ArtistCrewData) SectionType() SectionType { return SectionArtistCrew }

// ArtistBandData is the band line-up.
type ArtistBandData struct {
	CrewData
}

func (*ArtistBandData) SectionType() SectionType { return SectionArtistBand }

// Affiliation is a brand, label or organisation the artist works with.
type Affiliation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"type"`
	Image string `json:"image,omitempty"`
}

// AffiliationsData lists affiliations.
type AffiliationsData struct {
	SectionStyle
	Title        string        `json:"title"`
	Affiliations []Affiliation `json:"affiliations"`
	SectionTitle string        `json:"sectionTitle"`
	Heading      string        `json:"heading"`
	HeadingTitle string        `json:"headingTitle"`
}

func (*AffiliationsData) SectionType() SectionType { return SectionAffiliations }

// EndorsementsData has no fields yet; the section only reserves its slot.
type EndorsementsData struct{}

func (*EndorsementsData) SectionType() SectionType { return SectionEndorsements }
