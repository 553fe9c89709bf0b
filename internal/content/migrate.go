package content

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the content schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "content.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying content schema")
	}

	models := []any{
		&Page{},
		&Section{},
		&Element{},
		&Setting{},
		&DropdownOption{},
		&SectionType{},
		&ElementType{},
	}

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("content schema migration failed")
		}
		return eris.Wrap(err, "auto migrating content schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("content schema migration complete")
	}

	return nil
}
