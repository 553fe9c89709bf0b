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

// ElementInput carries the fields accepted when creating an element. The
// parent section must exist. IsPublished defaults to true, SortOrder to 0.
type ElementInput struct {
	SectionID   string
	Type        string
	Title       string
	Content     string
	Metadata    json.RawMessage
	SortOrder   *int
	IsPublished *bool
}

// ElementUpdate carries a partial element update; nil fields are left unchanged.
type ElementUpdate struct {
	Type        *string
	Title       *string
	Content     *string
	Metadata    json.RawMessage
	SortOrder   *int
	IsPublished *bool
}

// ListElements returns all elements of a section regardless of publish
// state, in sibling order.
func (r *GormRepository) ListElements(ctx context.Context, sectionID string) ([]Element, error) {
	var elements []Element

	err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order(siblingOrder).
		Find(&elements).Error
	if err != nil {
		r.logError(logrus.Fields{"section_id": sectionID}, err, "listing elements")
		return nil, eris.Wrapf(err, "listing elements of section: %s", sectionID)
	}

	return elements, nil
}

// GetElement returns the element with the given id regardless of publish state.
func (r *GormRepository) GetElement(ctx context.Context, id string) (*Element, error) {
	var element Element

	err := r.db.WithContext(ctx).First(&element, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "element %s", id)
		}
		r.logError(logrus.Fields{"element_id": id}, err, "fetching element")
		return nil, eris.Wrapf(err, "fetching element: %s", id)
	}

	return &element, nil
}

// CreateElement validates the input and parent section existence, then
// stores the new element.
func (r *GormRepository) CreateElement(ctx context.Context, input ElementInput) (*Element, error) {
	elementType := strings.TrimSpace(input.Type)
	if elementType == "" {
		return nil, eris.Wrap(ErrInvalidInput, "element type is required")
	}
	if strings.TrimSpace(input.SectionID) == "" {
		return nil, eris.Wrap(ErrInvalidInput, "element section id is required")
	}

	if _, err := r.GetSection(ctx, input.SectionID); err != nil {
		return nil, err
	}

	element := Element{
		ID:          uuid.NewString(),
		SectionID:   input.SectionID,
		Type:        elementType,
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		Metadata:    input.Metadata,
		IsPublished: true,
	}
	if input.SortOrder != nil {
		if *input.SortOrder < 0 {
			return nil, eris.Wrap(ErrInvalidInput, "element order must not be negative")
		}
		element.SortOrder = *input.SortOrder
	}
	if input.IsPublished != nil {
		element.IsPublished = *input.IsPublished
	}

	if err := r.db.WithContext(ctx).Create(&element).Error; err != nil {
		r.logError(logrus.Fields{"section_id": input.SectionID}, err, "creating element")
		return nil, eris.Wrapf(err, "creating element in section: %s", input.SectionID)
	}

	return &element, nil
}

// UpdateElement merges the provided fields onto the stored element and
// refreshes its updated timestamp.
func (r *GormRepository) UpdateElement(ctx context.Context, id string, update ElementUpdate) (*Element, error) {
	element, err := r.GetElement(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Type != nil {
		trimmed := strings.TrimSpace(*update.Type)
		if trimmed == "" {
			return nil, eris.Wrap(ErrInvalidInput, "element type cannot be empty")
		}
		fields["type"] = trimmed
	}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Metadata != nil {
		fields["metadata"] = []byte(update.Metadata)
	}
	if update.SortOrder != nil {
		if *update.SortOrder < 0 {
			return nil, eris.Wrap(ErrInvalidInput, "element order must not be negative")
		}
		fields["sort_order"] = *update.SortOrder
	}
	if update.IsPublished != nil {
		fields["is_published"] = *update.IsPublished
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(element).Updates(fields).Error; err != nil {
			r.logError(logrus.Fields{"element_id": id}, err, "updating element")
			return nil, eris.Wrapf(err, "updating element: %s", id)
		}
	}

	return r.GetElement(ctx, id)
}

// DeleteElement removes the element. Deleting a nonexistent id is a no-op.
func (r *GormRepository) DeleteElement(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Element{}).Error; err != nil {
		r.logError(logrus.Fields{"element_id": id}, err, "deleting element")
		return eris.Wrapf(err, "deleting element: %s", id)
	}

	return nil
}

// ReorderElements rewrites the order values of a section's elements so the
// listed ids take their position in the sequence and unlisted siblings
// follow, keeping their prior relative order.
func (r *GormRepository) ReorderElements(ctx context.Context, sectionID string, orderedIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []siblingRow
		err := tx.Model(&Element{}).
			Select("id", "sort_order").
			Where("section_id = ?", sectionID).
			Order(siblingOrder).
			Scan(&rows).Error
		if err != nil {
			return eris.Wrap(err, "loading element order")
		}

		for id, order := range computeReorder(rows, orderedIDs) {
			err := tx.Model(&Element{}).
				Where("id = ?", id).
				Update("sort_order", order).Error
			if err != nil {
				return eris.Wrapf(err, "writing order for element: %s", id)
			}
		}

		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"section_id": sectionID}, err, "reordering elements")
		return eris.Wrapf(err, "reordering elements of section: %s", sectionID)
	}

	return nil
}

// BulkDeleteElements deletes each listed element. Best effort: unknown ids
// are silently skipped and a failure partway through leaves prior deletions
// applied.
func (r *GormRepository) BulkDeleteElements(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := r.DeleteElement(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateElement clones an element as a draft into the same section,
// appended after the last sibling.
func (r *GormRepository) DuplicateElement(ctx context.Context, id string) (*Element, error) {
	source, err := r.GetElement(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := Element{
		ID:          uuid.NewString(),
		SectionID:   source.SectionID,
		Type:        source.Type,
		Title:       copyTitle(source.Title),
		Content:     source.Content,
		Metadata:    source.Metadata,
		IsPublished: false,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		maxOrder, err := maxSiblingOrder(tx, &Element{}, "section_id", source.SectionID)
		if err != nil {
			return err
		}
		clone.SortOrder = maxOrder + 1

		if err := tx.Create(&clone).Error; err != nil {
			return eris.Wrap(err, "creating element copy")
		}
		return nil
	})
	if err != nil {
		r.logError(logrus.Fields{"element_id": id}, err, "duplicating element")
		return nil, eris.Wrapf(err, "duplicating element: %s", id)
	}

	return r.GetElement(ctx, clone.ID)
}
