package content

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PageInput carries the fields accepted when creating a page. IsPublished
// defaults to true when omitted.
type PageInput struct {
	Slug            string
	Title           string
	MetaDescription string
	IsPublished     *bool
}

// PageUpdate carries a partial page update; nil fields are left unchanged.
type PageUpdate struct {
	Slug            *string
	Title           *string
	MetaDescription *string
	IsPublished     *bool
}

// ListPublishedPages returns all published pages sorted alphabetically by title.
func (r *GormRepository) ListPublishedPages(ctx context.Context) ([]Page, error) {
	var pages []Page

	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("title ASC").
		Find(&pages).Error
	if err != nil {
		r.logError(nil, err, "listing published pages")
		return nil, eris.Wrap(err, "listing published pages")
	}

	return pages, nil
}

// GetPublishedPageBySlug returns the published page matching slug with its
// full tree attached: sections filtered to published and sorted by order,
// each with its published elements sorted by order. An unpublished section
// hides all of its elements regardless of their own flags.
func (r *GormRepository) GetPublishedPageBySlug(ctx context.Context, slug string) (*Page, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, eris.Wrap(ErrInvalidInput, "slug is required")
	}

	var page Page
	err := r.db.WithContext(ctx).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_published = ?", true).Order(siblingOrder)
		}).
		Preload("Sections.Elements", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_published = ?", true).Order(siblingOrder)
		}).
		First(&page, "slug = ? AND is_published = ?", trimmed, true).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "page with slug %s", trimmed)
		}
		r.logError(logrus.Fields{"slug": trimmed}, err, "fetching page by slug")
		return nil, eris.Wrapf(err, "fetching page by slug: %s", trimmed)
	}

	return &page, nil
}

// ListPages returns every page regardless of publish state, sorted by title.
func (r *GormRepository) ListPages(ctx context.Context) ([]Page, error) {
	var pages []Page

	if err := r.db.WithContext(ctx).Order("title ASC").Find(&pages).Error; err != nil {
		r.logError(nil, err, "listing pages")
		return nil, eris.Wrap(err, "listing pages")
	}

	return pages, nil
}

// GetPage returns the page with the given id regardless of publish state.
func (r *GormRepository) GetPage(ctx context.Context, id string) (*Page, error) {
	var page Page

	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "page %s", id)
		}
		r.logError(logrus.Fields{"page_id": id}, err, "fetching page")
		return nil, eris.Wrapf(err, "fetching page: %s", id)
	}

	return &page, nil
}

// GetPageWithTree returns the page with its entire section/element tree,
// drafts included, for the admin editing surface.
func (r *GormRepository) GetPageWithTree(ctx context.Context, id string) (*Page, error) {
	var page Page

	err := r.db.WithContext(ctx).
		Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Order(siblingOrder)
		}).
		Preload("Sections.Elements", func(tx *gorm.DB) *gorm.DB {
			return tx.Order(siblingOrder)
		}).
		First(&page, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "page %s", id)
		}
		r.logError(logrus.Fields{"page_id": id}, err, "fetching page tree")
		return nil, eris.Wrapf(err, "fetching page tree: %s", id)
	}

	return &page, nil
}

// CreatePage validates the input, assigns a fresh identifier and stores the
// new page. Publish state defaults to true.
func (r *GormRepository) CreatePage(ctx context.Context, input PageInput) (*Page, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, eris.Wrap(ErrInvalidInput, "page slug is required")
	}

	page := Page{
		ID:              uuid.NewString(),
		Slug:            slug,
		Title:           strings.TrimSpace(input.Title),
		MetaDescription: input.MetaDescription,
		IsPublished:     true,
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}

	if err := r.db.WithContext(ctx).Create(&page).Error; err != nil {
		r.logError(logrus.Fields{"slug": slug}, err, "creating page")
		return nil, eris.Wrapf(err, "creating page: %s", slug)
	}

	return &page, nil
}

// UpdatePage merges the provided fields onto the stored page and refreshes
// its updated timestamp.
func (r *GormRepository) UpdatePage(ctx context.Context, id string, update PageUpdate) (*Page, error) {
	page, err := r.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Slug != nil {
		trimmed := strings.TrimSpace(*update.Slug)
		if trimmed == "" {
			return nil, eris.Wrap(ErrInvalidInput, "page slug cannot be empty")
		}
		fields["slug"] = trimmed
	}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.MetaDescription != nil {
		fields["meta_description"] = *update.MetaDescription
	}
	if update.IsPublished != nil {
		fields["is_published"] = *update.IsPublished
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(page).Updates(fields).Error; err != nil {
			r.logError(logrus.Fields{"page_id": id}, err, "updating page")
			return nil, eris.Wrapf(err, "updating page: %s", id)
		}
	}

	return r.GetPage(ctx, id)
}

// DeletePage removes the page and cascades to its sections and their
// elements. Deleting a nonexistent id is a no-op.
func (r *GormRepository) DeletePage(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sectionIDs []string
		if err := tx.Model(&Section{}).Where("page_id = ?", id).Pluck("id", &sectionIDs).Error; err != nil {
			return eris.Wrap(err, "collecting section ids")
		}

		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&Element{}).Error; err != nil {
				return eris.Wrap(err, "deleting descendant elements")
			}
			if err := tx.Where("page_id = ?", id).Delete(&Section{}).Error; err != nil {
				return eris.Wrap(err, "deleting descendant sections")
			}
		}

		if err := tx.Where("id = ?", id).Delete(&Page{}).Error; err != nil {
			return eris.Wrap(err, "deleting page")
		}

		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"page_id": id}, err, "deleting page")
		return eris.Wrapf(err, "deleting page: %s", id)
	}

	return nil
}

// CountPages returns the total number of pages regardless of publish state.
func (r *GormRepository) CountPages(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&Page{}).Count(&count).Error; err != nil {
		r.logError(nil, err, "counting pages")
		return 0, eris.Wrap(err, "counting pages")
	}

	return count, nil
}
