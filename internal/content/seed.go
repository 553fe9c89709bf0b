package content

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// SeedIfEmpty populates the store with placeholder portfolio content when no
// pages exist yet. It reports whether seeding ran, so callers can tell a
// fresh bootstrap from a skipped one. The admin migration endpoint goes
// through this same check to avoid duplicating seed entities on repeat calls.
func SeedIfEmpty(ctx context.Context, repo Repository, logger *logrus.Logger) (bool, error) {
	count, err := repo.CountPages(ctx)
	if err != nil {
		return false, eris.Wrap(err, "checking store emptiness")
	}

	if count > 0 {
		if logger != nil {
			logger.WithField("pages", count).Info("content store already populated, skipping seed")
		}
		return false, nil
	}

	if err := Seed(ctx, repo, logger); err != nil {
		return false, err
	}

	return true, nil
}

// Seed populates the store with the placeholder portfolio content: the four
// site pages with typed sections and elements, social settings, the research
// status dropdown, and the section/element type catalogs.
func Seed(ctx context.Context, repo Repository, logger *logrus.Logger) error {
	if repo == nil {
		return eris.New("content repository is required")
	}

	if logger != nil {
		logger.WithField("component", "content.seed").Info("seeding placeholder content")
	}

	if err := seedCatalogs(ctx, repo); err != nil {
		return err
	}
	if err := seedSettings(ctx, repo); err != nil {
		return err
	}
	if err := seedPages(ctx, repo); err != nil {
		return err
	}

	if logger != nil {
		logger.WithField("component", "content.seed").Info("seed content in place")
	}

	return nil
}

func seedCatalogs(ctx context.Context, repo Repository) error {
	sectionTypes := []SectionTypeInput{
		{Name: "hero", DisplayName: "Hero", Description: "Large introductory banner", AllowedElementTypes: []string{"paragraph"}},
		{Name: "bio", DisplayName: "Biography", Description: "Personal background", AllowedElementTypes: []string{"paragraph"}},
		{Name: "skills", DisplayName: "Skills", Description: "Skill card grid", AllowedElementTypes: []string{"skill_card"}},
		{Name: "experience", DisplayName: "Experience", Description: "Work history timeline", AllowedElementTypes: []string{"experience_entry"}},
		{Name: "projects", DisplayName: "Projects", Description: "Project card grid", AllowedElementTypes: []string{"project_card"}},
		{Name: "research", DisplayName: "Research", Description: "Research publications and works in progress", AllowedElementTypes: []string{"paragraph", "project_card"}},
	}
	for _, input := range sectionTypes {
		if _, err := repo.CreateSectionType(ctx, input); err != nil {
			return eris.Wrapf(err, "seeding section type: %s", input.Name)
		}
	}

	elementTypes := []ElementTypeInput{
		{Name: "paragraph", DisplayName: "Paragraph", Description: "Free-form text block"},
		{Name: "skill_card", DisplayName: "Skill Card", Description: "A single skill with proficiency", MetadataShape: json.RawMessage(`{"level":"string","years":"number"}`)},
		{Name: "experience_entry", DisplayName: "Experience Entry", Description: "One position in the work history", MetadataShape: json.RawMessage(`{"company":"string","period":"string","location":"string"}`)},
		{Name: "project_card", DisplayName: "Project Card", Description: "A project with links and stack", MetadataShape: json.RawMessage(`{"technologies":"string[]","links":"object"}`)},
	}
	for _, input := range elementTypes {
		if _, err := repo.CreateElementType(ctx, input); err != nil {
			return eris.Wrapf(err, "seeding element type: %s", input.Name)
		}
	}

	statuses := []DropdownOptionInput{
		{FieldName: "research_status", Value: "in_progress", Label: "In Progress", SortOrder: intPtr(0)},
		{FieldName: "research_status", Value: "under_review", Label: "Under Review", SortOrder: intPtr(1)},
		{FieldName: "research_status", Value: "published", Label: "Published", SortOrder: intPtr(2)},
	}
	for _, input := range statuses {
		if _, err := repo.CreateDropdownOption(ctx, input); err != nil {
			return eris.Wrapf(err, "seeding dropdown option: %s", input.Value)
		}
	}

	return nil
}

func seedSettings(ctx context.Context, repo Repository) error {
	settings := []SettingInput{
		{Key: "social_github", Value: "https://github.com/username", Description: "GitHub profile URL"},
		{Key: "social_linkedin", Value: "https://linkedin.com/in/username", Description: "LinkedIn profile URL"},
		{Key: "contact_email", Value: "hello@example.com", Description: "Public contact address"},
	}
	for _, input := range settings {
		if _, err := repo.UpsertSetting(ctx, input); err != nil {
			return eris.Wrapf(err, "seeding setting: %s", input.Key)
		}
	}

	return nil
}

type seedElement struct {
	Type     string
	Title    string
	Content  string
	Metadata json.RawMessage
}

type seedSection struct {
	Type     string
	Title    string
	Elements []seedElement
}

type seedPage struct {
	Slug            string
	Title           string
	MetaDescription string
	Sections        []seedSection
}

func seedPages(ctx context.Context, repo Repository) error {
	pages := []seedPage{
		{
			Slug:            "home",
			Title:           "Home",
			MetaDescription: "Personal portfolio and research notes",
			Sections: []seedSection{
				{
					Type:  "hero",
					Title: "Welcome",
					Elements: []seedElement{
						{Type: "paragraph", Title: "Intro", Content: "Software engineer and researcher. This site collects my projects, writing, and work in progress."},
					},
				},
				{
					Type:  "skills",
					Title: "Skills",
					Elements: []seedElement{
						{Type: "skill_card", Title: "Distributed Systems", Metadata: json.RawMessage(`{"level":"advanced","years":8}`)},
						{Type: "skill_card", Title: "Data Engineering", Metadata: json.RawMessage(`{"level":"advanced","years":6}`)},
					},
				},
			},
		},
		{
			Slug:            "about",
			Title:           "About",
			MetaDescription: "Background and experience",
			Sections: []seedSection{
				{
					Type:  "bio",
					Title: "About Me",
					Elements: []seedElement{
						{Type: "paragraph", Content: "Placeholder biography. Replace this text from the admin panel."},
					},
				},
				{
					Type:  "experience",
					Title: "Experience",
					Elements: []seedElement{
						{Type: "experience_entry", Title: "Senior Engineer", Content: "Led the platform team.", Metadata: json.RawMessage(`{"company":"Example Corp","period":"2021 - present","location":"Remote"}`)},
						{Type: "experience_entry", Title: "Engineer", Content: "Built data pipelines.", Metadata: json.RawMessage(`{"company":"Previous Inc","period":"2017 - 2021","location":"Berlin"}`)},
					},
				},
			},
		},
		{
			Slug:            "projects",
			Title:           "Projects",
			MetaDescription: "Selected projects",
			Sections: []seedSection{
				{
					Type:  "projects",
					Title: "Selected Projects",
					Elements: []seedElement{
						{Type: "project_card", Title: "Example Project", Content: "A placeholder project card.", Metadata: json.RawMessage(`{"technologies":["Go","SQLite"],"links":{"repo":"https://github.com/username/example"}}`)},
					},
				},
			},
		},
		{
			Slug:            "research",
			Title:           "Research",
			MetaDescription: "Publications and works in progress",
			Sections: []seedSection{
				{
					Type:  "research",
					Title: "Research",
					Elements: []seedElement{
						{Type: "paragraph", Content: "Placeholder research overview."},
						{Type: "project_card", Title: "Working Paper", Content: "A placeholder research entry.", Metadata: json.RawMessage(`{"technologies":[],"links":{},"status":"in_progress"}`)},
					},
				},
			},
		},
	}

	for _, pageSeed := range pages {
		page, err := repo.CreatePage(ctx, PageInput{
			Slug:            pageSeed.Slug,
			Title:           pageSeed.Title,
			MetaDescription: pageSeed.MetaDescription,
		})
		if err != nil {
			return eris.Wrapf(err, "seeding page: %s", pageSeed.Slug)
		}

		for sectionIdx, sectionSeed := range pageSeed.Sections {
			section, err := repo.CreateSection(ctx, SectionInput{
				PageID:    page.ID,
				Type:      sectionSeed.Type,
				Title:     sectionSeed.Title,
				SortOrder: intPtr(sectionIdx),
			})
			if err != nil {
				return eris.Wrapf(err, "seeding section %s on page %s", sectionSeed.Type, pageSeed.Slug)
			}

			for elementIdx, elementSeed := range sectionSeed.Elements {
				_, err := repo.CreateElement(ctx, ElementInput{
					SectionID: section.ID,
					Type:      elementSeed.Type,
					Title:     elementSeed.Title,
					Content:   elementSeed.Content,
					Metadata:  elementSeed.Metadata,
					SortOrder: intPtr(elementIdx),
				})
				if err != nil {
					return eris.Wrapf(err, "seeding element %s in section %s", elementSeed.Type, sectionSeed.Type)
				}
			}
		}
	}

	return nil
}

func intPtr(v int) *int {
	return &v
}
