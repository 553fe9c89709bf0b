package content

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SettingInput carries the fields accepted when creating or updating a
// setting. Settings are addressed by business key, not by id.
type SettingInput struct {
	Key         string
	Value       string
	Description string
}

// ListSettings returns every setting sorted by key.
func (r *GormRepository) ListSettings(ctx context.Context) ([]Setting, error) {
	var settings []Setting

	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		r.logError(nil, err, "listing settings")
		return nil, eris.Wrap(err, "listing settings")
	}

	return settings, nil
}

// GetSetting returns the setting with the given key.
func (r *GormRepository) GetSetting(ctx context.Context, key string) (*Setting, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return nil, eris.Wrap(ErrInvalidInput, "setting key is required")
	}

	var setting Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", trimmed).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrNotFound, "setting %s", trimmed)
		}
		r.logError(logrus.Fields{"key": trimmed}, err, "fetching setting")
		return nil, eris.Wrapf(err, "fetching setting: %s", trimmed)
	}

	return &setting, nil
}

// UpsertSetting stores the value under the key, creating the setting when it
// does not exist yet and refreshing the updated timestamp when it does.
func (r *GormRepository) UpsertSetting(ctx context.Context, input SettingInput) (*Setting, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, eris.Wrap(ErrInvalidInput, "setting key is required")
	}

	existing, err := r.GetSetting(ctx, key)
	if err != nil && !eris.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		setting := Setting{
			ID:          uuid.NewString(),
			Key:         key,
			Value:       input.Value,
			Description: input.Description,
		}
		if err := r.db.WithContext(ctx).Create(&setting).Error; err != nil {
			r.logError(logrus.Fields{"key": key}, err, "creating setting")
			return nil, eris.Wrapf(err, "creating setting: %s", key)
		}
		return &setting, nil
	}

	fields := map[string]any{
		"value":       input.Value,
		"description": input.Description,
	}
	if err := r.db.WithContext(ctx).Model(existing).Updates(fields).Error; err != nil {
		r.logError(logrus.Fields{"key": key}, err, "updating setting")
		return nil, eris.Wrapf(err, "updating setting: %s", key)
	}

	return r.GetSetting(ctx, key)
}

// DeleteSetting removes the setting with the given key. Deleting a
// nonexistent key is a no-op.
func (r *GormRepository) DeleteSetting(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("key = ?", strings.TrimSpace(key)).Delete(&Setting{}).Error; err != nil {
		r.logError(logrus.Fields{"key": key}, err, "deleting setting")
		return eris.Wrapf(err, "deleting setting: %s", key)
	}

	return nil
}
