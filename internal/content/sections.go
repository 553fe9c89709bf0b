package content

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SectionInput carries the fields accepted when creating a section. The
// parent page must exist. IsPublished defaults to true, SortOrder to 0.
type SectionInput struct {
	PageID      string
	Type        string
	Title       string
	Layout      json.RawMessage
	SortOrder   *int
	IsPublished *bool
}

// SectionUpdate carries a partial section update; nil fields are left unchanged.
type SectionUpdate struct {
	Type        *string
	Title       *string
	Layout      json.RawMessage
	SortOrder   *int
	IsPublished *bool
}

// ListSections returns all sections of a page regardless of publish state,
// in sibling order.
func (r *GormRepository) ListSections(ctx context.Context, pageID string) ([]Section, error) {
	var sections []Section

	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order(siblingOrder).
		Find(&sections).Error
	if err != nil {
		r.logError(logrus.Fields{"page_id": pageID}, err, "listing sections")
		return nil, eris.Wrapf(err, "listing sections of page: %s", pageID)
	}

	return sections, nil
}

// GetSection returns the section with the given id regardless of publish state.
func (r *GormRepository) GetSection(ctx context.Context, id string) (*Section, error) {
	var section Section

	err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "section %s", id)
		}
		r.logError(logrus.Fields{"section_id": id}, err, "fetching section")
		return nil, eris.Wrapf(err, "fetching section: %s", id)
	}

	return &section, nil
}

// CreateSection validates the input and parent page existence, then stores
// the new section.
func (r *GormRepository) CreateSection(ctx context.Context, input SectionInput) (*Section, error) {
	sectionType := strings.TrimSpace(input.Type)
	if sectionType == "" {
		return nil, eris.Wrap(ErrInvalidInput, "section type is required")
	}
	if strings.TrimSpace(input.PageID) == "" {
		return nil, eris.Wrap(ErrInvalidInput, "section page id is required")
	}

	if _, err := r.GetPage(ctx, input.PageID); err != nil {
		return nil, err
	}

	section := Section{
		ID:          uuid.NewString(),
		PageID:      input.PageID,
		Type:        sectionType,
		Title:       strings.TrimSpace(input.Title),
		Layout:      input.Layout,
		IsPublished: true,
	}
	if input.SortOrder != nil {
		if *input.SortOrder < 0 {
			return nil, eris.Wrap(ErrInvalidInput, "section order must not be negative")
		}
		section.SortOrder = *input.SortOrder
	}
	if input.IsPublished != nil {
		section.IsPublished = *input.IsPublished
	}

	if err := r.db.WithContext(ctx).Create(&section).Error; err != nil {
		r.logError(logrus.Fields{"page_id": input.PageID}, err, "creating section")
		return nil, eris.Wrapf(err, "creating section on page: %s", input.PageID)
	}

	return &section, nil
}

// UpdateSection merges the provided fields onto the stored section and
// refreshes its updated timestamp.
func (r *GormRepository) UpdateSection(ctx context.Context, id string, update SectionUpdate) (*Section, error) {
	section, err := r.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Type != nil {
		trimmed := strings.TrimSpace(*update.Type)
		if trimmed == "" {
			return nil, eris.Wrap(ErrInvalidInput, "section type cannot be empty")
		}
		fields["type"] = trimmed
	}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Layout != nil {
		fields["layout"] = []byte(update.Layout)
	}
	if update.SortOrder != nil {
		if *update.SortOrder < 0 {
			return nil, eris.Wrap(ErrInvalidInput, "section order must not be negative")
		}
		fields["sort_order"] = *update.SortOrder
	}
	if update.IsPublished != nil {
		fields["is_published"] = *update.IsPublished
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(section).Updates(fields).Error; err != nil {
			r.logError(logrus.Fields{"section_id": id}, err, "updating section")
			return nil, eris.Wrapf(err, "updating section: %s", id)
		}
	}

	return r.GetSection(ctx, id)
}

// DeleteSection removes the section and cascades to its elements. Deleting a
// nonexistent id is a no-op.
func (r *GormRepository) DeleteSection(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&Element{}).Error; err != nil {
			return eris.Wrap(err, "deleting descendant elements")
		}
		if err := tx.Where("id = ?", id).Delete(&Section{}).Error; err != nil {
			return eris.Wrap(err, "deleting section")
		}
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"section_id": id}, err, "deleting section")
		return eris.Wrapf(err, "deleting section: %s", id)
	}

	return nil
}

// ReorderSections rewrites the order values of a page's sections so the
// listed ids take their position in the sequence and unlisted siblings
// follow, keeping their prior relative order.
func (r *GormRepository) ReorderSections(ctx context.Context, pageID string, orderedIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []siblingRow
		err := tx.Model(&Section{}).
			Select("id", "sort_order").
			Where("page_id = ?", pageID).
			Order(siblingOrder).
			Scan(&rows).Error
		if err != nil {
			return eris.Wrap(err, "loading section order")
		}

		for id, order := range computeReorder(rows, orderedIDs) {
			err := tx.Model(&Section{}).
				Where("id = ?", id).
				Update("sort_order", order).Error
			if err != nil {
				return eris.Wrapf(err, "writing order for section: %s", id)
			}
		}

		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"page_id": pageID}, err, "reordering sections")
		return eris.Wrapf(err, "reordering sections of page: %s", pageID)
	}

	return nil
}

// BulkDeleteSections deletes each listed section through the cascading
// single-delete path. Best effort: unknown ids are silently skipped and a
// failure partway through leaves prior deletions applied.
func (r *GormRepository) BulkDeleteSections(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := r.DeleteSection(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateSection clones a section as a draft, appended after the last
// sibling of the target page. When targetPageID is empty the clone stays on
// the source page. Every child element is cloned into the new section,
// keeping its own order value and forced unpublished as well.
func (r *GormRepository) DuplicateSection(ctx context.Context, id, targetPageID string) (*Section, error) {
	source, err := r.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}

	pageID := source.PageID
	if strings.TrimSpace(targetPageID) != "" {
		if _, err := r.GetPage(ctx, targetPageID); err != nil {
			return nil, err
		}
		pageID = targetPageID
	}

	elements, err := r.ListElements(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := Section{
		ID:          uuid.NewString(),
		PageID:      pageID,
		Type:        source.Type,
		Title:       copyTitle(source.Title),
		Layout:      source.Layout,
		IsPublished: false,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := maxSiblingOrder(tx, &Section{}, "page_id", pageID)
		if err != nil {
			return err
		}
		clone.SortOrder = maxOrder + 1

		if err := tx.Create(&clone).Error; err != nil {
			return eris.Wrap(err, "creating section copy")
		}

		for _, element := range elements {
			child := Element{
				ID:          uuid.NewString(),
				SectionID:   clone.ID,
				Type:        element.Type,
				Title:       element.Title,
				Content:     element.Content,
				Metadata:    element.Metadata,
				SortOrder:   element.SortOrder,
				IsPublished: false,
			}
			if err := tx.Create(&child).Error; err != nil {
				return eris.Wrap(err, "creating element copy")
			}
		}

		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"section_id": id}, err, "duplicating section")
		return nil, eris.Wrapf(err, "duplicating section: %s", id)
	}

	return r.GetSection(ctx, clone.ID)
}

// copyTitle suffixes a duplicate's title, leaving untitled entities untitled.
func copyTitle(title string) string {
	if title == "" {
		return ""
	}
	return title + " (Copy)"
}

// maxSiblingOrder returns the highest sort order among the siblings sharing
// the given parent, or -1 when there are none.
func maxSiblingOrder(tx *gorm.DB, model any, parentColumn, parentID string) (int, error) {
	var max *int

	err := tx.Model(model).
		Select("MAX(sort_order)").
		Where(parentColumn+" = ?", parentID).
		Scan(&max).Error
	if err != nil {
		return 0, eris.Wrap(err, "finding max sibling order")
	}

	if max == nil {
		return -1, nil
	}
	return *max, nil
}
