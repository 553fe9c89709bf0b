package content

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNotFound indicates that the referenced entity does not exist. Callers
// can detect it with eris.Is to distinguish a missing record from an
// infrastructure failure.
var ErrNotFound = eris.New("content not found")

// ErrInvalidInput indicates a create or update call with missing required
// fields or a reference to a nonexistent parent.
var ErrInvalidInput = eris.New("invalid content input")

// siblingOrder is the stable ordering applied to sections and elements:
// explicit sort order first, insertion order breaking ties.
const siblingOrder = "sort_order ASC, created_at ASC, id ASC"

// Repository is the authoritative store for all portfolio content. Public
// read operations filter to published entities; admin operations operate
// regardless of publish state.
type Repository interface {
	// Pages.
	ListPublishedPages(ctx context.Context) ([]Page, error)
	GetPublishedPageBySlug(ctx context.Context, slug string) (*Page, error)
	ListPages(ctx context.Context) ([]Page, error)
	GetPage(ctx context.Context, id string) (*Page, error)
	GetPageWithTree(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, input PageInput) (*Page, error)
	UpdatePage(ctx context.Context, id string, update PageUpdate) (*Page, error)
	DeletePage(ctx context.Context, id string) error
	CountPages(ctx context.Context) (int64, error)

	// Sections.
	ListSections(ctx context.Context, pageID string) ([]Section, error)
	GetSection(ctx context.Context, id string) (*Section, error)
	CreateSection(ctx context.Context, input SectionInput) (*Section, error)
	UpdateSection(ctx context.Context, id string, update SectionUpdate) (*Section, error)
	DeleteSection(ctx context.Context, id string) error
	ReorderSections(ctx context.Context, pageID string, orderedIDs []string) error
	BulkDeleteSections(ctx context.Context, ids []string) error
	DuplicateSection(ctx context.Context, id, targetPageID string) (*Section, error)

	// Elements.
	ListElements(ctx context.Context, sectionID string) ([]Element, error)
	GetElement(ctx context.Context, id string) (*Element, error)
	CreateElement(ctx context.Context, input ElementInput) (*Element, error)
	UpdateElement(ctx context.Context, id string, update ElementUpdate) (*Element, error)
	DeleteElement(ctx context.Context, id string) error
	ReorderElements(ctx context.Context, sectionID string, orderedIDs []string) error
	BulkDeleteElements(ctx context.Context, ids []string) error
	DuplicateElement(ctx context.Context, id string) (*Element, error)

	// Settings.
	ListSettings(ctx context.Context) ([]Setting, error)
	GetSetting(ctx context.Context, key string) (*Setting, error)
	UpsertSetting(ctx context.Context, input SettingInput) (*Setting, error)
	DeleteSetting(ctx context.Context, key string) error

	// Dropdown options.
	ListDropdownOptions(ctx context.Context, fieldName string) ([]DropdownOption, error)
	ListAllDropdownOptions(ctx context.Context) ([]DropdownOption, error)
	CreateDropdownOption(ctx context.Context, input DropdownOptionInput) (*DropdownOption, error)
	UpdateDropdownOption(ctx context.Context, id string, update DropdownOptionUpdate) (*DropdownOption, error)
	DeleteDropdownOption(ctx context.Context, id string) error

	// Type definition catalogs.
	ListSectionTypes(ctx context.Context) ([]SectionType, error)
	ListElementTypes(ctx context.Context) ([]ElementType, error)
	CreateSectionType(ctx context.Context, input SectionTypeInput) (*SectionType, error)
	UpdateSectionType(ctx context.Context, id string, update SectionTypeUpdate) (*SectionType, error)
	DeleteSectionType(ctx context.Context, id string) error
	CreateElementType(ctx context.Context, input ElementTypeInput) (*ElementType, error)
	UpdateElementType(ctx context.Context, id string, update ElementTypeUpdate) (*ElementType, error)
	DeleteElementType(ctx context.Context, id string) error
	ElementTypesForSection(ctx context.Context, sectionTypeName string) ([]ElementType, error)
}

// GormRepository persists portfolio content using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
