package services

import (
	"github.com/google/uuid"

	"github.com/example/epkadmin/internal/models"
)

// Placeholder images used when an EPK leaves an image empty.
const (
	DefaultHeroImage       = "https://app.dreamstage.tech/defaults/hero-image.webp"
	DefaultBackgroundImage = "https://app.dreamstage.tech/defaults/background-image.webp"
	DefaultEventPhoto      = "https://app.dreamstage.tech/defaults/event-photo.webp"
	DefaultWorkThumbnail   = "https://app.dreamstage.tech/defaults/work-thumbnail.webp"
	DefaultMediaAsset      = "https://app.dreamstage.tech/defaults/media-asset.webp"
	DefaultCrewMember      = "https://app.dreamstage.tech/defaults/crew-member.webp"
	DefaultAffiliation     = "https://app.dreamstage.tech/defaults/affiliation.webp"
)

// DefaultTheme is the page theme of a new EPK.
func DefaultTheme() models.Theme {
	return models.Theme{
		PrimaryColor:     "#000000",
		TextColor:        "#FFFFFF",
		BioTextColor:     "#FFFFFF",
		BackgroundColor:  "#5C5C5C",
		GradientPresetID: "mono-dark",
		UseGradient:      true,
	}
}

func lightStyle() models.SectionStyle {
	return models.SectionStyle{
		PrimaryColor:    "#8B5CF6",
		BackgroundColor: "#ffffff",
		Theme: &models.Theme{
			PrimaryColor:    "#8B5CF6",
			BackgroundColor: "#ffffff",
			Resolved: &models.Palette{
				Primary:    "#0A8293",
				Text:       "#000000",
				BioText:    "#000000",
				Background: "#FFFFFF",
			},
		},
	}
}

func darkStyle() models.SectionStyle {
	return models.SectionStyle{
		PrimaryColor:     "#000000",
		BackgroundColor:  "#5C5C5C",
		UseGradient:      true,
		TextColor:        "#FFFFFF",
		BioTextColor:     "#FFFFFF",
		GradientPresetID: "mono-dark",
		Theme: &models.Theme{
			PrimaryColor:     "#000000",
			TextColor:        "#FFFFFF",
			BioTextColor:     "#FFFFFF",
			BackgroundColor:  "#5C5C5C",
			GradientPresetID: "mono-dark",
			UseGradient:      true,
			Resolved: &models.Palette{
				Primary:    "#000000",
				Text:       "#FFFFFF",
				BioText:    "#FFFFFF",
				Background: "#5C5C5C",
			},
		},
	}
}

func crewDefaults(title string) models.CrewData {
	return models.CrewData{
		Title:           title,
		CrewMembers:     []models.CrewMember{},
		BackgroundColor: "#C7DEE2",
		TextColor:       "#000000",
		PrimaryColor:    "#9CAEC6",
		BioTextColor:    "#000000",
	}
}

func defaultHero() *models.HeroData {
	light := lightStyle()
	return &models.HeroData{
		Mode:             "left-image",
		ImageShape:       "square",
		GradientPresetID: "teal-sunset",
		ButtonLinkMode:   "section",
		ButtonSectionID:  string(models.SectionGigExperience),
		ButtonTarget:     "internal",
		BackgroundColor:  "#ffffff",
		TextColor:        "#000000",
		PrimaryColor:     "#8B5CF6",
		Theme:            light.Theme,
		ButtonText:       "View Gigs",
		ButtonLink:       "#gig-experience",
		Image:            DefaultHeroImage,
		BackgroundImage:  DefaultBackgroundImage,
	}
}

func defaultProfileStats() *models.ProfileStatsData {
	light := lightStyle()
	return &models.ProfileStatsData{
		PrimaryColor:    light.PrimaryColor,
		BackgroundColor: light.BackgroundColor,
		Theme:           light.Theme,
		Tags:            []string{},
		HireRange:       models.HireRange{Min: 20000, Currency: "INR"},
	}
}

// DefaultSections returns the nine section skeleton of a new EPK, in order.
// Every call returns freshly allocated data.
func DefaultSections() models.Sections {
	data := []models.SectionData{
		defaultHero(),
		defaultProfileStats(),
		&models.GigExperienceData{SectionStyle: darkStyle(), Experiences: []models.Experience{}},
		&models.MyWorksData{SectionStyle: darkStyle(), Works: []models.WorkSample{}},
		&models.MediaAssetsData{SectionStyle: darkStyle(), Assets: []models.MediaAsset{}},
		&models.ArtistCrewData{CrewData: crewDefaults("Dream Crew")},
		&models.ArtistBandData{CrewData: crewDefaults("Dream Band")},
		&models.AffiliationsData{SectionStyle: darkStyle(), Affiliations: []models.Affiliation{}},
		&models.EndorsementsData{},
	}

	sections := make(models.Sections, len(data))
	for i, d := range data {
		sections[i] = models.Section{ID: d.SectionType(), Type: d.SectionType(), Order: i, Data: d}
	}
	return sections
}

func sampleExperiences() []models.Experience {
	return []models.Experience{
		{
			ID:          uuid.NewString(),
			EventName:   "Monsoon Festival 2023",
			Location:    "Bangalore, India",
			EventPhoto:  DefaultEventPhoto,
			EventDate:   "2023-07-15",
			StartDate:   "2023-07-15",
			EndDate:     "2023-07-17",
			Description: "Headlined the main stage at India's largest independent music festival.",
		},
		{
			ID:          uuid.NewString(),
			EventName:   "NH7 Weekender",
			Location:    "Pune, India",
			EventPhoto:  DefaultEventPhoto,
			EventDate:   "2022-12-03",
			StartDate:   "2022-12-03",
			EndDate:     "2022-12-04",
			Description: "Performed on the Bacardi Arena to a crowd of 5000+ music enthusiasts.",
		},
	}
}

func sampleWorks() []models.WorkSample {
	return []models.WorkSample{
		{
			ID:            uuid.NewString(),
			Type:          models.WorkAudio,
			SampleName:    "Monsoon Melodies",
			DateOfRelease: "2023-06-15",
			Label:         "Independent",
			IsTopWork:     true,
			Thumbnail:     DefaultWorkThumbnail,
			URL:           "https://example.com/monsoon-melodies",
			Content:       "Our debut EP featuring 5 original tracks inspired by the Indian monsoon.",
		},
		{
			ID:            uuid.NewString(),
			Type:          models.WorkVideo,
			SampleName:    "Live at Blue Frog",
			DateOfRelease: "2023-03-22",
			Label:         "Independent",
			IsTopWork:     true,
			Thumbnail:     DefaultWorkThumbnail,
			URL:           "https://example.com/live-bluefrog",
			Content:       "Full length live performance video from our sold-out show.",
		},
		{
			ID:            uuid.NewString(),
			Type:          models.WorkAudio,
			SampleName:    "Urban Echoes",
			DateOfRelease: "2022-11-10",
			Label:         "Independent",
			Thumbnail:     DefaultWorkThumbnail,
			URL:           "https://example.com/urban-echoes",
			Content:       "Single exploring the sounds of city life through folk instrumentation.",
		},
	}
}

func sampleMediaAssets() []models.MediaAsset {
	return []models.MediaAsset{
		{
			ID:          uuid.NewString(),
			Type:        models.MediaImage,
			URL:         DefaultMediaAsset,
			Thumbnail:   DefaultMediaAsset,
			Title:       "Stage Performance",
			Description: "High quality stage photo from our recent concert.",
		},
		{
			ID:          uuid.NewString(),
			Type:        models.MediaImage,
			URL:         DefaultMediaAsset,
			Thumbnail:   DefaultMediaAsset,
			Title:       "Band Portrait",
			Description: "Professional band portrait for media use.",
		},
		{
			ID:          uuid.NewString(),
			Type:        models.MediaVideo,
			URL:         DefaultMediaAsset,
			Thumbnail:   DefaultMediaAsset,
			Title:       "Behind the Scenes",
			Description: "Exclusive behind-the-scenes footage from our studio session.",
		},
	}
}

func sampleCrewMembers() []models.CrewMember {
	return []models.CrewMember{
		{
			ID:          uuid.NewString(),
			Name:        "Alex Johnson",
			Role:        "Guitarist & Vocalist",
			Image:       DefaultCrewMember,
			EpkLink:     "https://dreamstage.tech/alexjohnson",
			Description: "Lead guitarist and founding member with 10+ years of experience.",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Maya Sharma",
			Role:        "Bassist & Backing Vocals",
			Image:       DefaultCrewMember,
			EpkLink:     "https://dreamstage.tech/mayasharma",
			Description: "Versatile bassist with background in jazz and classical music.",
		},
	}
}

func sampleBandMembers() []models.CrewMember {
	return []models.CrewMember{
		{
			ID:          uuid.NewString(),
			Name:        "Raj Malhotra",
			Role:        "Drummer & Percussionist",
			Image:       DefaultCrewMember,
			EpkLink:     "https://dreamstage.tech/rajmalhotra",
			Description: "Session drummer with expertise in multiple percussion instruments.",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Priya Patel",
			Role:        "Keyboardist & Synth Artist",
			Image:       DefaultCrewMember,
			EpkLink:     "https://dreamstage.tech/priyapatel",
			Description: "Classically trained pianist with modern electronic influences.",
		},
	}
}

func sampleAffiliations() []models.Affiliation {
	return []models.Affiliation{
		{ID: uuid.NewString(), Name: "Fender Musical Instruments", Role: "Endorsed Artist", Type: "brand", Image: DefaultAffiliation},
		{ID: uuid.NewString(), Name: "Independent Music Association", Role: "Member", Type: "organization", Image: DefaultAffiliation},
		{ID: uuid.NewString(), Name: "Universal Music India", Role: "Collaborating Partner", Type: "label", Image: DefaultAffiliation},
	}
}
