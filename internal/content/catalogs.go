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

// DropdownOptionInput carries the fields accepted when creating a dropdown
// option for a named form field.
type DropdownOptionInput struct {
	FieldName string
	Value     string
	Label     string
	SortOrder *int
	IsActive  *bool
}

// DropdownOptionUpdate carries a partial dropdown option update.
type DropdownOptionUpdate struct {
	Value     *string
	Label     *string
	SortOrder *int
	IsActive  *bool
}

// SectionTypeInput carries the fields accepted when cataloguing a section type.
type SectionTypeInput struct {
	Name                string
	DisplayName         string
	Description         string
	AllowedElementTypes []string
	IsActive            *bool
}

// SectionTypeUpdate carries a partial section type update.
type SectionTypeUpdate struct {
	DisplayName         *string
	Description         *string
	AllowedElementTypes []string
	IsActive            *bool
}

// ElementTypeInput carries the fields accepted when cataloguing an element type.
type ElementTypeInput struct {
	Name          string
	DisplayName   string
	Description   string
	MetadataShape json.RawMessage
	IsActive      *bool
}

// ElementTypeUpdate carries a partial element type update.
type ElementTypeUpdate struct {
	DisplayName   *string
	Description   *string
	MetadataShape json.RawMessage
	IsActive      *bool
}

// ListDropdownOptions returns the active options of a field sorted by their
// sort order. This is the public read path for form widgets.
func (r *GormRepository) ListDropdownOptions(ctx context.Context, fieldName string) ([]DropdownOption, error) {
	trimmed := strings.TrimSpace(fieldName)
	if trimmed == "" {
		return nil, eris.Wrap(ErrInvalidInput, "field name is required")
	}

	var options []DropdownOption
	err := r.db.WithContext(ctx).
		Where("field_name = ? AND is_active = ?", trimmed, true).
		Order(siblingOrder).
		Find(&options).Error
	if err != nil {
		r.logError(logrus.Fields{"field_name": trimmed}, err, "listing dropdown options")
		return nil, eris.Wrapf(err, "listing dropdown options for field: %s", trimmed)
	}

	return options, nil
}

// ListAllDropdownOptions returns every option of every field, inactive ones
// included, for the admin surface.
func (r *GormRepository) ListAllDropdownOptions(ctx context.Context) ([]DropdownOption, error) {
	var options []DropdownOption

	err := r.db.WithContext(ctx).
		Order("field_name ASC, sort_order ASC, created_at ASC, id ASC").
		Find(&options).Error
	if err != nil {
		r.logError(nil, err, "listing all dropdown options")
		return nil, eris.Wrap(err, "listing all dropdown options")
	}

	return options, nil
}

// CreateDropdownOption stores a new option for the stated field.
func (r *GormRepository) CreateDropdownOption(ctx context.Context, input DropdownOptionInput) (*DropdownOption, error) {
	fieldName := strings.TrimSpace(input.FieldName)
	if fieldName == "" {
		return nil, eris.Wrap(ErrInvalidInput, "dropdown field name is required")
	}
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, eris.Wrap(ErrInvalidInput, "dropdown option value is required")
	}

	option := DropdownOption{
		ID:        uuid.NewString(),
		FieldName: fieldName,
		Value:     value,
		Label:     strings.TrimSpace(input.Label),
		IsActive:  true,
	}
	if option.Label == "" {
		option.Label = value
	}
	if input.SortOrder != nil {
		option.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}

	if err := r.db.WithContext(ctx).Create(&option).Error; err != nil {
		r.logError(logrus.Fields{"field_name": fieldName}, err, "creating dropdown option")
		return nil, eris.Wrapf(err, "creating dropdown option for field: %s", fieldName)
	}

	return &option, nil
}

// UpdateDropdownOption merges the provided fields onto the stored option.
func (r *GormRepository) UpdateDropdownOption(ctx context.Context, id string, update DropdownOptionUpdate) (*DropdownOption, error) {
	var option DropdownOption
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "dropdown option %s", id)
		}
		r.logError(logrus.Fields{"option_id": id}, err, "fetching dropdown option")
		return nil, eris.Wrapf(err, "fetching dropdown option: %s", id)
	}

	fields := map[string]any{}
	if update.Value != nil {
		trimmed := strings.TrimSpace(*update.Value)
		if trimmed == "" {
			return nil, eris.Wrap(ErrInvalidInput, "dropdown option value cannot be empty")
		}
		fields["value"] = trimmed
	}
	if update.Label != nil {
		fields["label"] = strings.TrimSpace(*update.Label)
	}
	if update.SortOrder != nil {
		fields["sort_order"] = *update.SortOrder
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&option).Updates(fields).Error; err != nil {
			r.logError(logrus.Fields{"option_id": id}, err, "updating dropdown option")
			return nil, eris.Wrapf(err, "updating dropdown option: %s", id)
		}
	}

	err = r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if err != nil {
		return nil, eris.Wrapf(err, "reloading dropdown option: %s", id)
	}
	return &option, nil
}

// DeleteDropdownOption removes the option. Deleting a nonexistent id is a no-op.
func (r *GormRepository) DeleteDropdownOption(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DropdownOption{}).Error; err != nil {
		r.logError(logrus.Fields{"option_id": id}, err, "deleting dropdown option")
		return eris.Wrapf(err, "deleting dropdown option: %s", id)
	}
	return nil
}

// ListSectionTypes returns the active section type definitions sorted by
// display name.
func (r *GormRepository) ListSectionTypes(ctx context.Context) ([]SectionType, error) {
	var types []SectionType

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_name ASC").
		Find(&types).Error
	if err != nil {
		r.logError(nil, err, "listing section types")
		return nil, eris.Wrap(err, "listing section types")
	}

	return types, nil
}

// ListElementTypes returns the active element type definitions sorted by
// display name.
func (r *GormRepository) ListElementTypes(ctx context.Context) ([]ElementType, error) {
	var types []ElementType

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_name ASC").
		Find(&types).Error
	if err != nil {
		r.logError(nil, err, "listing element types")
		return nil, eris.Wrap(err, "listing element types")
	}

	return types, nil
}

// CreateSectionType stores a new section type definition.
func (r *GormRepository) CreateSectionType(ctx context.Context, input SectionTypeInput) (*SectionType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, eris.Wrap(ErrInvalidInput, "section type name is required")
	}

	definition := SectionType{
		ID:                  uuid.NewString(),
		Name:                name,
		DisplayName:         strings.TrimSpace(input.DisplayName),
		Description:         input.Description,
		AllowedElementTypes: input.AllowedElementTypes,
		IsActive:            true,
	}
	if definition.DisplayName == "" {
		definition.DisplayName = name
	}
	if input.IsActive != nil {
		definition.IsActive = *input.IsActive
	}

	if err := r.db.WithContext(ctx).Create(&definition).Error; err != nil {
		r.logError(logrus.Fields{"name": name}, err, "creating section type")
		return nil, eris.Wrapf(err, "creating section type: %s", name)
	}

	return &definition, nil
}

// UpdateSectionType merges the provided fields onto the stored definition.
func (r *GormRepository) UpdateSectionType(ctx context.Context, id string, update SectionTypeUpdate) (*SectionType, error) {
	var definition SectionType
	err := r.db.WithContext(ctx).First(&definition, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "section type %s", id)
		}
		r.logError(logrus.Fields{"type_id": id}, err, "fetching section type")
		return nil, eris.Wrapf(err, "fetching section type: %s", id)
	}

	if update.DisplayName != nil {
		definition.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Description != nil {
		definition.Description = *update.Description
	}
	if update.AllowedElementTypes != nil {
		definition.AllowedElementTypes = update.AllowedElementTypes
	}
	if update.IsActive != nil {
		definition.IsActive = *update.IsActive
	}

	if err := r.db.WithContext(ctx).Save(&definition).Error; err != nil {
		r.logError(logrus.Fields{"type_id": id}, err, "updating section type")
		return nil, eris.Wrapf(err, "updating section type: %s", id)
	}

	return &definition, nil
}

// DeleteSectionType removes the definition. Deleting a nonexistent id is a no-op.
func (r *GormRepository) DeleteSectionType(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&SectionType{}).Error; err != nil {
		r.logError(logrus.Fields{"type_id": id}, err, "deleting section type")
		return eris.Wrapf(err, "deleting section type: %s", id)
	}
	return nil
}

// CreateElementType stores a new element type definition.
func (r *GormRepository) CreateElementType(ctx context.Context, input ElementTypeInput) (*ElementType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, eris.Wrap(ErrInvalidInput, "element type name is required")
	}

	definition := ElementType{
		ID:            uuid.NewString(),
		Name:          name,
		DisplayName:   strings.TrimSpace(input.DisplayName),
		Description:   input.Description,
		MetadataShape: input.MetadataShape,
		IsActive:      true,
	}
	if definition.DisplayName == "" {
		definition.DisplayName = name
	}
	if input.IsActive != nil {
		definition.IsActive = *input.IsActive
	}

	if err := r.db.WithContext(ctx).Create(&definition).Error; err != nil {
		r.logError(logrus.Fields{"name": name}, err, "creating element type")
		return nil, eris.Wrapf(err, "creating element type: %s", name)
	}

	return &definition, nil
}

// UpdateElementType merges the provided fields onto the stored definition.
func (r *GormRepository) UpdateElementType(ctx context.Context, id string, update ElementTypeUpdate) (*ElementType, error) {
	var definition ElementType
	err := r.db.WithContext(ctx).First(&definition, "id = ?", id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "element type %s", id)
		}
		r.logError(logrus.Fields{"type_id": id}, err, "fetching element type")
		return nil, eris.Wrapf(err, "fetching element type: %s", id)
	}

	if update.DisplayName != nil {
		definition.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Description != nil {
		definition.Description = *update.Description
	}
	if update.MetadataShape != nil {
		definition.MetadataShape = update.MetadataShape
	}
	if update.IsActive != nil {
		definition.IsActive = *update.IsActive
	}

	if err := r.db.WithContext(ctx).Save(&definition).Error; err != nil {
		r.logError(logrus.Fields{"type_id": id}, err, "updating element type")
		return nil, eris.Wrapf(err, "updating element type: %s", id)
	}

	return &definition, nil
}

// DeleteElementType removes the definition. Deleting a nonexistent id is a no-op.
func (r *GormRepository) DeleteElementType(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ElementType{}).Error; err != nil {
		r.logError(logrus.Fields{"type_id": id}, err, "deleting element type")
		return eris.Wrapf(err, "deleting element type: %s", id)
	}
	return nil
}

// ElementTypesForSection resolves the section type's allow-list and returns
// the active element type definitions named there, sorted by display name.
// Unknown section types and types with an empty allow-list yield an empty
// result rather than an error.
func (r *GormRepository) ElementTypesForSection(ctx context.Context, sectionTypeName string) ([]ElementType, error) {
	trimmed := strings.TrimSpace(sectionTypeName)
	if trimmed == "" {
		return nil, eris.Wrap(ErrInvalidInput, "section type name is required")
	}

	var sectionType SectionType
	err := r.db.WithContext(ctx).First(&sectionType, "name = ? AND is_active = ?", trimmed, true).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return []ElementType{}, nil
		}
		r.logError(logrus.Fields{"name": trimmed}, err, "fetching section type by name")
		return nil, eris.Wrapf(err, "fetching section type by name: %s", trimmed)
	}

	if len(sectionType.AllowedElementTypes) == 0 {
		return []ElementType{}, nil
	}

	var types []ElementType
	err = r.db.WithContext(ctx).
		Where("name IN ? AND is_active = ?", sectionType.AllowedElementTypes, true).
		Order("display_name ASC").
		Find(&types).Error
	if err != nil {
		r.logError(logrus.Fields{"name": trimmed}, err, "listing element types for section type")
		return nil, eris.Wrapf(err, "listing element types for section type: %s", trimmed)
	}

	return types, nil
}
