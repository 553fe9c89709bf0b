package content

import (
	"encoding/json"
	"time"
)

// Page is a top-level content unit addressed by its slug. It owns an
// ordered list of sections.
type Page struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Slug            string    `gorm:"size:255;uniqueIndex:idx_pages_slug;not null" json:"slug"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	MetaDescription string    `gorm:"type:text" json:"metaDescription,omitempty"`
	IsPublished     bool      `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Sections []Section `gorm:"foreignKey:PageID" json:"sections,omitempty"`
}

// TableName defines the table name for the Page model.
func (Page) TableName() string {
	return "pages"
}

// Section groups elements of a single kind within a page. Siblings are
// ordered by SortOrder with insertion order breaking ties.
type Section struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	PageID      string          `gorm:"size:36;index;not null" json:"pageId"`
	Type        string          `gorm:"size:100;not null" json:"type"`
	Title       string          `gorm:"size:255" json:"title,omitempty"`
	Layout      json.RawMessage `gorm:"type:text" json:"layout,omitempty"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsPublished bool            `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Elements []Element `gorm:"foreignKey:SectionID" json:"elements,omitempty"`
}

// TableName defines the table name for the Section model.
func (Section) TableName() string {
	return "sections"
}

// Element is the leaf content unit within a section. Metadata carries the
// type-specific payload (company/period for experience entries, technologies
// and links for project cards) as an opaque JSON blob; its shape is validated
// at the API boundary, not here.
type Element struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	SectionID   string          `gorm:"size:36;index;not null" json:"sectionId"`
	Type        string          `gorm:"size:100;not null" json:"type"`
	Title       string          `gorm:"size:255" json:"title,omitempty"`
	Content     string          `gorm:"type:text" json:"content,omitempty"`
	Metadata    json.RawMessage `gorm:"type:text" json:"metadata,omitempty"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsPublished bool            `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName defines the table name for the Element model.
func (Element) TableName() string {
	return "elements"
}

// Setting is a key-value configuration entry, e.g. social media URLs.
type Setting struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Key         string    `gorm:"size:255;uniqueIndex:idx_settings_key;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName defines the table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}

// DropdownOption is one selectable value for a named form field, such as
// "research_status".
type DropdownOption struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FieldName string    `gorm:"size:100;uniqueIndex:idx_dropdown_field_value;not null" json:"fieldName"`
	Value     string    `gorm:"size:255;uniqueIndex:idx_dropdown_field_value;not null" json:"value"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName defines the table name for the DropdownOption model.
func (DropdownOption) TableName() string {
	return "dropdown_options"
}

// SectionType is a catalog entry describing a valid section type tag and
// which element types it permits.
type SectionType struct {
	ID                  string    `gorm:"primaryKey;size:36" json:"id"`
	Name                string    `gorm:"size:100;uniqueIndex:idx_section_types_name;not null" json:"name"`
	DisplayName         string    `gorm:"size:255;not null" json:"displayName"`
	Description         string    `gorm:"type:text" json:"description,omitempty"`
	AllowedElementTypes []string  `gorm:"serializer:json;type:text" json:"allowedElementTypes,omitempty"`
	IsActive            bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// TableName defines the table name for the SectionType model.
func (SectionType) TableName() string {
	return "section_types"
}

// ElementType is a catalog entry describing a valid element type tag and the
// expected shape of its metadata blob.
type ElementType struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:100;uniqueIndex:idx_element_types_name;not null" json:"name"`
	DisplayName   string          `gorm:"size:255;not null" json:"displayName"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	MetadataShape json.RawMessage `gorm:"type:text" json:"metadataShape,omitempty"`
	IsActive      bool            `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TableName defines the table name for the ElementType model.
func (ElementType) TableName() string {
	return "element_types"
}
