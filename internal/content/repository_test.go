package content

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/db"
)

func TestNewRepositoryRequiresDatabase(t *testing.T) {
	t.Parallel()

	if _, err := NewRepository(nil, nil); err == nil {
		t.Fatalf("expected error when database is nil")
	}
}

func TestCreatePageRequiresSlug(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)

	_, err := repo.CreatePage(context.Background(), PageInput{Title: "No Slug"})
	if !eris.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePageAppliesDefaults(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page, err := repo.CreatePage(ctx, PageInput{Slug: " home ", Title: "Home"})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}

	if page.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if page.Slug != "home" {
		t.Fatalf("expected slug trimmed to 'home', got %q", page.Slug)
	}
	if !page.IsPublished {
		t.Fatalf("expected new page to default to published")
	}
	if page.CreatedAt.IsZero() || page.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCreateSectionRequiresExistingPage(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)

	_, err := repo.CreateSection(context.Background(), SectionInput{PageID: "missing", Type: "hero"})
	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for orphan section, got %v", err)
	}
}

func TestCreateElementRequiresExistingSection(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)

	_, err := repo.CreateElement(context.Background(), ElementInput{SectionID: "missing", Type: "paragraph"})
	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for orphan element, got %v", err)
	}
}

func TestUpdatePageMergesFields(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page, err := repo.CreatePage(ctx, PageInput{Slug: "about", Title: "About"})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}

	newTitle := "About Me"
	unpublished := false
	updated, err := repo.UpdatePage(ctx, page.ID, PageUpdate{Title: &newTitle, IsPublished: &unpublished})
	if err != nil {
		t.Fatalf("UpdatePage returned error: %v", err)
	}

	if updated.Title != "About Me" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Slug != "about" {
		t.Fatalf("expected slug untouched, got %q", updated.Slug)
	}
	if updated.IsPublished {
		t.Fatalf("expected page to be unpublished after update")
	}
}

func TestUpdatePageNotFound(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)

	title := "Ghost"
	_, err := repo.UpdatePage(context.Background(), "missing", PageUpdate{Title: &title})
	if !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePageCascades(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page := mustCreatePage(t, repo, "cascade", "Cascade")
	sectionA := mustCreateSection(t, repo, page.ID, "hero", 0)
	sectionB := mustCreateSection(t, repo, page.ID, "bio", 1)
	elementA := mustCreateElement(t, repo, sectionA.ID, "paragraph", 0)
	elementB := mustCreateElement(t, repo, sectionB.ID, "paragraph", 0)

	if err := repo.DeletePage(ctx, page.ID); err != nil {
		t.Fatalf("DeletePage returned error: %v", err)
	}

	if _, err := repo.GetPage(ctx, page.ID); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected page gone, got %v", err)
	}
	for _, id := range []string{sectionA.ID, sectionB.ID} {
		if _, err := repo.GetSection(ctx, id); !eris.Is(err, ErrNotFound) {
			t.Fatalf("expected section %s gone, got %v", id, err)
		}
	}
	for _, id := range []string{elementA.ID, elementB.ID} {
		if _, err := repo.GetElement(ctx, id); !eris.Is(err, ErrNotFound) {
			t.Fatalf("expected element %s gone, got %v", id, err)
		}
	}
}

func TestDeleteSectionCascadesToElements(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page := mustCreatePage(t, repo, "sec-cascade", "Section Cascade")
	section := mustCreateSection(t, repo, page.ID, "skills", 0)
	element := mustCreateElement(t, repo, section.ID, "skill_card", 0)

	if err := repo.DeleteSection(ctx, section.ID); err != nil {
		t.Fatalf("DeleteSection returned error: %v", err)
	}

	if _, err := repo.GetElement(ctx, element.ID); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected element gone, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	if err := repo.DeletePage(ctx, "never-existed"); err != nil {
		t.Fatalf("expected deleting unknown page to be a no-op, got %v", err)
	}
	if err := repo.DeleteSection(ctx, "never-existed"); err != nil {
		t.Fatalf("expected deleting unknown section to be a no-op, got %v", err)
	}
	if err := repo.DeleteElement(ctx, "never-existed"); err != nil {
		t.Fatalf("expected deleting unknown element to be a no-op, got %v", err)
	}
}

func TestListPublishedPagesSortsByTitle(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	mustCreatePage(t, repo, "zulu", "Zulu")
	mustCreatePage(t, repo, "alpha", "Alpha")
	draft := false
	if _, err := repo.CreatePage(ctx, PageInput{Slug: "hidden", Title: "Hidden", IsPublished: &draft}); err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}

	pages, err := repo.ListPublishedPages(ctx)
	if err != nil {
		t.Fatalf("ListPublishedPages returned error: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("expected 2 published pages, got %d", len(pages))
	}
	if pages[0].Title != "Alpha" || pages[1].Title != "Zulu" {
		t.Fatalf("expected alphabetical order, got %q then %q", pages[0].Title, pages[1].Title)
	}
}

func TestGetPublishedPageBySlugBuildsTree(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page := mustCreatePage(t, repo, "home", "Home")
	section := mustCreateSection(t, repo, page.ID, "intro", 0)
	if _, err := repo.CreateElement(ctx, ElementInput{
		SectionID: section.ID,
		Type:      "paragraph",
		Content:   "Hello",
	}); err != nil {
		t.Fatalf("CreateElement returned error: %v", err)
	}

	tree, err := repo.GetPublishedPageBySlug(ctx, "home")
	if err != nil {
		t.Fatalf("GetPublishedPageBySlug returned error: %v", err)
	}

	if len(tree.Sections) != 1 {
		t.Fatalf("expected exactly one section, got %d", len(tree.Sections))
	}
	if tree.Sections[0].Type != "intro" {
		t.Fatalf("expected section type 'intro', got %q", tree.Sections[0].Type)
	}
	if len(tree.Sections[0].Elements) != 1 {
		t.Fatalf("expected exactly one element, got %d", len(tree.Sections[0].Elements))
	}
	if tree.Sections[0].Elements[0].Content != "Hello" {
		t.Fatalf("expected element content 'Hello', got %q", tree.Sections[0].Elements[0].Content)
	}
}

func TestPublishFilteringHidesDraftsAtEveryLevel(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()
	draft := false

	page := mustCreatePage(t, repo, "filtered", "Filtered")
	visible := mustCreateSection(t, repo, page.ID, "hero", 0)
	if _, err := repo.CreateSection(ctx, SectionInput{PageID: page.ID, Type: "bio", IsPublished: &draft}); err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	mustCreateElement(t, repo, visible.ID, "paragraph", 0)
	if _, err := repo.CreateElement(ctx, ElementInput{SectionID: visible.ID, Type: "paragraph", IsPublished: &draft}); err != nil {
		t.Fatalf("CreateElement returned error: %v", err)
	}

	tree, err := repo.GetPublishedPageBySlug(ctx, "filtered")
	if err != nil {
		t.Fatalf("GetPublishedPageBySlug returned error: %v", err)
	}

	if len(tree.Sections) != 1 {
		t.Fatalf("expected the draft section to be hidden, got %d sections", len(tree.Sections))
	}
	if len(tree.Sections[0].Elements) != 1 {
		t.Fatalf("expected the draft element to be hidden, got %d elements", len(tree.Sections[0].Elements))
	}
}

func TestUnpublishedParentHidesPublishedChildren(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()
	draft := false

	page, err := repo.CreatePage(ctx, PageInput{Slug: "draft-page", Title: "Draft", IsPublished: &draft})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}
	section := mustCreateSection(t, repo, page.ID, "hero", 0)
	mustCreateElement(t, repo, section.ID, "paragraph", 0)

	if _, err := repo.GetPublishedPageBySlug(ctx, "draft-page"); !eris.Is(err, ErrNotFound) {
		t.Fatalf("expected unpublished page to be unreachable, got %v", err)
	}

	hiddenSection, err := repo.CreateSection(ctx, SectionInput{PageID: page.ID, Type: "bio", IsPublished: &draft})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	mustCreateElement(t, repo, hiddenSection.ID, "paragraph", 0)

	published := true
	if _, err := repo.UpdatePage(ctx, page.ID, PageUpdate{IsPublished: &published}); err != nil {
		t.Fatalf("UpdatePage returned error: %v", err)
	}

	tree, err := repo.GetPublishedPageBySlug(ctx, "draft-page")
	if err != nil {
		t.Fatalf("GetPublishedPageBySlug returned error: %v", err)
	}
	for _, s := range tree.Sections {
		if s.ID == hiddenSection.ID {
			t.Fatalf("expected children of the draft section to stay unreachable")
		}
	}
}

func TestOrderingStability(t *testing.T) {
	t.Parallel()

	repo := setupRepository(t)
	ctx := context.Background()

	page := mustCreatePage(t, repo, "ordered", "Ordered")
	section := mustCreateSection(t, repo, page.ID, "projects", 0)

	first := mustCreateElement(t, repo, section.ID, "project_card", 2)
	second := mustCreateElement(t, repo, section.ID, "project_card", 2)
	third := mustCreateElement(t, repo, section.ID, "project_card", 0)

	elements, err := repo.ListElements(ctx, section.ID)
	if err != nil {
		t.Fatalf("ListElements returned error: %v", err)
	}

	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}
	if elements[0].ID != third.ID {
		t.Fatalf("expected the order-0 element first")
	}
	if elements[1].ID != first.ID || elements[2].ID != second.ID {
		t.Fatalf("expected tied elements in insertion order, got %q then %q", elements[1].ID, elements[2].ID)
	}
}

func mustCreatePage(t *testing.T, repo *GormRepository, slug, title string) *Page {
	t.Helper()

	page, err := repo.CreatePage(context.Background(), PageInput{Slug: slug, Title: title})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}
	return page
}

func mustCreateSection(t *testing.T, repo *GormRepository, pageID, sectionType string, order int) *Section {
	t.Helper()

	section, err := repo.CreateSection(context.Background(), SectionInput{
		PageID:    pageID,
		Type:      sectionType,
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	return section
}

func mustCreateElement(t *testing.T, repo *GormRepository, sectionID, elementType string, order int) *Element {
	t.Helper()

	element, err := repo.CreateElement(context.Background(), ElementInput{
		SectionID: sectionID,
		Type:      elementType,
		SortOrder: &order,
	})
	if err != nil {
		t.Fatalf("CreateElement returned error: %v", err)
	}
	return element
}

func setupRepository(t *testing.T) *GormRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "repo.db")
	gormDB, err := db.Open(db.Options{Path: path})
	if err != nil {
		t.Fatalf("db.Open returned error: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(gormDB); closeErr != nil {
			t.Fatalf("closing database failed: %v", closeErr)
		}
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if err := Migrate(context.Background(), gormDB, logger); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	repo, err := NewRepository(gormDB, logger)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}

	return repo
}
