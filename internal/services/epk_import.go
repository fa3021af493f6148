package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/utils"
)

// Per-row caps on the numbered column families.
const (
	maxImportGigs         = 2
	maxImportWorks        = 3
	maxImportMediaAssets  = 3
	maxImportCrew         = 2
	maxImportBand         = 2
	maxImportAffiliations = 3
)

// ErrMissingRequiredColumns is reported for rows without artistName or artistType.
var ErrMissingRequiredColumns = errors.New("artistName and artistType are required")

// ImportRow is one flat spreadsheet row keyed by column header. Values are
// usually strings but numbers and booleans are accepted.
type ImportRow map[string]interface{}

// ImportRowError describes one rejected row.
type ImportRowError struct {
	ArtistName string `json:"artistName"`
	Error      string `json:"error"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

// Str returns the column as a trimmed string. Missing and null columns are "".
func (r ImportRow) Str(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Or returns the column, or fallback when it is empty.
func (r ImportRow) Or(key, fallback string) string {
	if v := r.Str(key); v != "" {
		return v
	}
	return fallback
}

// Int parses the leading integer of the column. ok is false when the column
// does not start with a number.
func (r ImportRow) Int(key string) (n int, ok bool) {
	return leadingInt(r.Str(key))
}

// IntOr returns the column as an integer, or fallback when it is missing, not
// numeric, or zero.
func (r ImportRow) IntOr(key string, fallback int) int {
	if n, ok := r.Int(key); ok && n != 0 {
		return n
	}
	return fallback
}

// True reports whether the column is true or "true".
func (r ImportRow) True(key string) bool {
	return strings.EqualFold(r.Str(key), "true")
}

// FlagDefaultTrue is true unless the column is explicitly false or "false".
func (r ImportRow) FlagDefaultTrue(key string) bool {
	return !strings.EqualFold(r.Str(key), "false")
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BuildEPKFromRow maps one spreadsheet row onto a complete EPK: a fresh id and
// slug, the nine default sections filled from the row's columns, and sample
// content for any list section the row leaves empty.
func BuildEPKFromRow(row ImportRow, now time.Time) (*models.EPK, error) {
	artistName := row.Str("artistName")
	artistType := row.Str("artistType")
	if artistName == "" || artistType == "" {
		return nil, ErrMissingRequiredColumns
	}

	slug, err := utils.GenerateSlug(artistName)
	if err != nil {
		return nil, fmt.Errorf("generate slug: %w", err)
	}

	userID := row.Str("userId")
	if userID == "" {
		if userID, err = placeholderUserID(now); err != nil {
			return nil, err
		}
	}

	sections := DefaultSections()
	for i := range sections {
		fillSectionFromRow(&sections[i], row)
	}

	epk := &models.EPK{
		UserID:     userID,
		ArtistName: artistName,
		ArtistType: artistType,
		Slug:       slug,
		Theme: models.Theme{
			PrimaryColor:     row.Or("theme_primaryColor", "#000000"),
			TextColor:        row.Or("theme_textColor", "#FFFFFF"),
			BioTextColor:     row.Or("theme_bioTextColor", "#FFFFFF"),
			BackgroundColor:  row.Or("theme_backgroundColor", "#5C5C5C"),
			GradientPresetID: row.Or("theme_gradientPresetId", "mono-dark"),
			UseGradient:      row.FlagDefaultTrue("theme_useGradient"),
		},
		Sections:         sections,
		SeoEnabled:       row.FlagDefaultTrue("seoEnabled"),
		AnalyticsEnabled: row.FlagDefaultTrue("analyticsEnabled"),
		ArtistMode:       row.Or("artistMode", "solo"),
		ManagedBy:        row.Or("managedBy", "artist"),
		ManagerPhone:     row.Str("managerPhone"),
		EPKScore:         models.NewEPKScore(now),
	}
	epk.ID = uuid.New()
	epk.Publish(row.True("isPublished"), now)
	return epk, nil
}

// placeholderUserID stands in for the owner of an EPK created without one.
func placeholderUserID(now time.Time) (string, error) {
	suffix, err := utils.RandomBase36(9)
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), suffix), nil
}

func fillSectionFromRow(section *models.Section, row ImportRow) {
	artistName := row.Str("artistName")
	artistType := row.Str("artistType")

	switch data := section.Data.(type) {
	case *models.HeroData:
		data.StageName = row.Or("stageName", artistName)
		data.ArtForm = row.Or("artForm", artistType)
		data.ShortBio = row.Or("shortBio", artistName+" - "+artistType)
		data.Image = row.Or("hero_image", DefaultHeroImage)
		data.BackgroundImage = row.Or("hero_backgroundImage", DefaultBackgroundImage)

	case *models.ProfileStatsData:
		data.ArtStyle = row.Str("artStyle")
		data.LongBio = row.Str("longBio")
		data.ExperienceYears = row.IntOr("experienceYears", 0)
		data.HireRange = models.HireRange{
			Min:      row.IntOr("hireRange_min", 20000),
			Currency: row.Or("hireRange_currency", "INR"),
		}
		if upper := row.IntOr("hireRange_max", 0); upper != 0 {
			data.HireRange.Max = &upper
		}
		data.GigsCount = row.IntOr("gigsCount", 0)
		data.CountriesTravelledCount = row.IntOr("countriesTravelledCount", 0)
		data.CitiesTravelledCount = row.IntOr("citiesTravelledCount", 0)
		data.Tags = splitTags(row.Str("tags"))

	case *models.GigExperienceData:
		for i := 1; i <= maxImportGigs; i++ {
			prefix := fmt.Sprintf("gig_experience_%d_", i)
			name := row.Str(prefix + "eventName")
			if name == "" {
				continue
			}
			data.Experiences = append(data.Experiences, models.Experience{
				ID:          uuid.NewString(),
				EventName:   name,
				Location:    row.Or(prefix+"location", "Not specified"),
				EventPhoto:  row.Or(prefix+"eventPhoto", DefaultEventPhoto),
				EventDate:   row.Str(prefix + "eventDate"),
				StartDate:   row.Str(prefix + "startDate"),
				EndDate:     row.Str(prefix + "endDate"),
				Description: row.Str(prefix + "description"),
			})
		}
		if len(data.Experiences) == 0 {
			data.Experiences = sampleExperiences()
		}

	case *models.MyWorksData:
		for i := 1; i <= maxImportWorks; i++ {
			prefix := fmt.Sprintf("my_works_%d_", i)
			name := row.Str(prefix + "sampleName")
			if name == "" {
				continue
			}
			data.Works = append(data.Works, models.WorkSample{
				ID:            uuid.NewString(),
				Type:          models.WorkType(row.Or(prefix+"type", string(models.WorkAudio))),
				SampleName:    name,
				DateOfRelease: row.Str(prefix + "dateOfRelease"),
				Label:         row.Or(prefix+"label", "Independent"),
				IsTopWork:     row.True(prefix + "isTopWork"),
				Thumbnail:     row.Or(prefix+"thumbnail", DefaultWorkThumbnail),
				URL:           row.Str(prefix + "url"),
				Content:       row.Str(prefix + "content"),
			})
		}
		if len(data.Works) == 0 {
			data.Works = sampleWorks()
		}

	case *models.MediaAssetsData:
		for i := 1; i <= maxImportMediaAssets; i++ {
			prefix := fmt.Sprintf("media_assets_%d_", i)
			title := row.Str(prefix + "title")
			if title == "" {
				continue
			}
			data.Assets = append(data.Assets, models.MediaAsset{
				ID:          uuid.NewString(),
				Type:        models.MediaType(row.Or(prefix+"type", string(models.MediaImage))),
				URL:         row.Or(prefix+"url", DefaultMediaAsset),
				Thumbnail:   row.Or(prefix+"thumbnail", DefaultMediaAsset),
				Title:       title,
				Description: row.Str(prefix + "description"),
			})
		}
		if len(data.Assets) == 0 {
			data.Assets = sampleMediaAssets()
		}
		data.Title = row.Or("media_assets_title", "Media Assets")

	case *models.ArtistCrewData:
		data.CrewMembers = crewFromRow(row, "artist_crew", "Crew Member", maxImportCrew)
		if len(data.CrewMembers) == 0 {
			data.CrewMembers = sampleCrewMembers()
		}
		data.Title = row.Or("artist_crew_title", "Dream Crew")

	case *models.ArtistBandData:
		data.CrewMembers = crewFromRow(row, "artist_band", "Band Member", maxImportBand)
		if len(data.CrewMembers) == 0 {
			data.CrewMembers = sampleBandMembers()
		}
		data.Title = row.Or("artist_band_title", "Dream Band")

	case *models.AffiliationsData:
		for i := 1; i <= maxImportAffiliations; i++ {
			prefix := fmt.Sprintf("affiliations_%d_", i)
			name := row.Str(prefix + "name")
			if name == "" {
				continue
			}
			data.Affiliations = append(data.Affiliations, models.Affiliation{
				ID:    uuid.NewString(),
				Name:  name,
				Role:  row.Str(prefix + "role"),
				Type:  row.Or(prefix+"type", "other"),
				Image: row.Or(prefix+"image", DefaultAffiliation),
			})
		}
		if len(data.Affiliations) == 0 {
			data.Affiliations = sampleAffiliations()
		}
		data.Title = row.Or("affiliations_title", "Affiliations")
		data.SectionTitle = row.Or("affiliations_sectionTitle", "Our Partners")
		data.Heading = row.Or("affiliations_heading", "Affiliations & Endorsements")
		data.HeadingTitle = row.Or("affiliations_headingTitle", "Brand Associations")
	}
}

func crewFromRow(row ImportRow, family, defaultRole string, limit int) []models.CrewMember {
	members := make([]models.CrewMember, 0, limit)
	for i := 1; i <= limit; i++ {
		prefix := fmt.Sprintf("%s_%d_", family, i)
		name := row.Str(prefix + "name")
		if name == "" {
			continue
		}
		members = append(members, models.CrewMember{
			ID:          uuid.NewString(),
			Name:        name,
			Role:        row.Or(prefix+"role", defaultRole),
			Image:       row.Or(prefix+"image", DefaultCrewMember),
			EpkLink:     row.Str(prefix + "epkLink"),
			Description: row.Str(prefix + "description"),
		})
	}
	return members
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
