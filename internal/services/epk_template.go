package services

import (
	"fmt"
	"strconv"
)

// ImportTemplate lists the import columns in order and one example row.
type ImportTemplate struct {
	Headers    []string          `json:"headers"`
	SampleData map[string]string `json:"sampleData"`
}

var (
	gigColumns         = []string{"eventName", "location", "eventPhoto", "eventDate", "startDate", "endDate", "description"}
	workColumns        = []string{"type", "sampleName", "dateOfRelease", "label", "isTopWork", "thumbnail", "url", "content"}
	mediaColumns       = []string{"type", "url", "thumbnail", "title", "description"}
	crewColumns        = []string{"name", "role", "image", "epkLink", "description"}
	affiliationColumns = []string{"name", "role", "type", "image"}
)

// BuildImportTemplate returns the column layout accepted by the bulk import,
// with a sample row for "The Monsoon Drifters".
func BuildImportTemplate() ImportTemplate {
	t := ImportTemplate{SampleData: map[string]string{}}
	add := func(column, sample string) {
		t.Headers = append(t.Headers, column)
		if sample != "" {
			t.SampleData[column] = sample
		}
	}

	add("artistName", "The Monsoon Drifters")
	add("artistType", "Music Band")
	add("artistMode", "group")
	add("managedBy", "manager")
	add("managerPhone", "+449098087076")
	add("seoEnabled", "true")
	add("analyticsEnabled", "true")
	add("isPublished", "true")
	add("userId", "")

	add("stageName", "The Monsoon Drifters")
	add("artForm", "Music Band")
	add("shortBio", "A contemporary folk-rock band from Bangalore...")
	add("hero_image", DefaultHeroImage)
	add("hero_backgroundImage", DefaultBackgroundImage)

	add("artStyle", "Folk-inspired Rock")
	add("longBio", "Born in the creative streets of Bangalore in 2018...")
	add("experienceYears", "7")
	add("hireRange_min", "20000")
	add("hireRange_max", "50000")
	add("hireRange_currency", "INR")
	add("gigsCount", "50")
	add("countriesTravelledCount", "3")
	add("citiesTravelledCount", "15")
	add("tags", "FolkRock,Indie,Storytelling,Soulful,Indian Fusion")

	for i, gig := range sampleExperiences() {
		values := []string{gig.EventName, gig.Location, gig.EventPhoto, gig.EventDate, gig.StartDate, gig.EndDate, gig.Description}
		addNumbered(add, "gig_experience", i+1, gigColumns, values)
	}

	for i, work := range sampleWorks() {
		values := []string{string(work.Type), work.SampleName, work.DateOfRelease, work.Label,
			strconv.FormatBool(work.IsTopWork), work.Thumbnail, work.URL, work.Content}
		addNumbered(add, "my_works", i+1, workColumns, values)
	}

	add("media_assets_title", "Media Assets")
	for i, asset := range sampleMediaAssets() {
		values := []string{string(asset.Type), asset.URL, asset.Thumbnail, asset.Title, asset.Description}
		addNumbered(add, "media_assets", i+1, mediaColumns, values)
	}

	add("artist_crew_title", "Dream Crew")
	for i, member := range sampleCrewMembers() {
		values := []string{member.Name, member.Role, member.Image, member.EpkLink, member.Description}
		addNumbered(add, "artist_crew", i+1, crewColumns, values)
	}

	add("artist_band_title", "Dream Band")
	for i, member := range sampleBandMembers() {
		values := []string{member.Name, member.Role, member.Image, member.EpkLink, member.Description}
		addNumbered(add, "artist_band", i+1, crewColumns, values)
	}

	add("affiliations_title", "Affiliations")
	add("affiliations_sectionTitle", "Our Partners")
	add("affiliations_heading", "Affiliations & Endorsements")
	add("affiliations_headingTitle", "Brand Associations")
	for i, affiliation := range sampleAffiliations() {
		values := []string{affiliation.Name, affiliation.Role, affiliation.Type, affiliation.Image}
		addNumbered(add, "affiliations", i+1, affiliationColumns, values)
	}

	theme := DefaultTheme()
	add("theme_primaryColor", theme.PrimaryColor)
	add("theme_textColor", theme.TextColor)
	add("theme_bioTextColor", theme.BioTextColor)
	add("theme_backgroundColor", theme.BackgroundColor)
	add("theme_gradientPresetId", theme.GradientPresetID)
	add("theme_useGradient", strconv.FormatBool(theme.UseGradient))

	return t
}

func addNumbered(add func(column, sample string), family string, n int, columns, values []string) {
	for i, column := range columns {
		add(fmt.Sprintf("%s_%d_%s", family, n, column), values[i])
	}
}
