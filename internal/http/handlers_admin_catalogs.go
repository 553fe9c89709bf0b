package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
)

type settingOutput struct {
	Body content.Setting
}

type upsertSettingInput struct {
	Key  string `path:"key"`
	Body struct {
		Value       string `json:"value"`
		Description string `json:"description,omitempty"`
	}
}

type settingKeyInput struct {
	Key string `path:"key"`
}

type createDropdownOptionInput struct {
	Body struct {
		FieldName string `json:"fieldName" minLength:"1"`
		Value     string `json:"value" minLength:"1"`
		Label     string `json:"label,omitempty"`
		Order     *int   `json:"order,omitempty"`
		IsActive  *bool  `json:"isActive,omitempty"`
	}
}

type updateDropdownOptionInput struct {
	ID   string `path:"id"`
	Body struct {
		Value    *string `json:"value,omitempty"`
		Label    *string `json:"label,omitempty"`
		Order    *int    `json:"order,omitempty"`
		IsActive *bool   `json:"isActive,omitempty"`
	}
}

type dropdownOptionOutput struct {
	Body content.DropdownOption
}

type createSectionTypeInput struct {
	Body struct {
		Name                string   `json:"name" minLength:"1"`
		DisplayName         string   `json:"displayName,omitempty"`
		Description         string   `json:"description,omitempty"`
		AllowedElementTypes []string `json:"allowedElementTypes,omitempty"`
		IsActive            *bool    `json:"isActive,omitempty"`
	}
}

type updateSectionTypeInput struct {
	ID   string `path:"id"`
	Body struct {
		DisplayName         *string  `json:"displayName,omitempty"`
		Description         *string  `json:"description,omitempty"`
		AllowedElementTypes []string `json:"allowedElementTypes,omitempty"`
		IsActive            *bool    `json:"isActive,omitempty"`
	}
}

type sectionTypeOutput struct {
	Body content.SectionType
}

type sectionTypesOutput struct {
	Body []content.SectionType
}

type createElementTypeInput struct {
	Body struct {
		Name          string          `json:"name" minLength:"1"`
		DisplayName   string          `json:"displayName,omitempty"`
		Description   string          `json:"description,omitempty"`
		MetadataShape json.RawMessage `json:"metadataShape,omitempty"`
		IsActive      *bool           `json:"isActive,omitempty"`
	}
}

type updateElementTypeInput struct {
	ID   string `path:"id"`
	Body struct {
		DisplayName   *string         `json:"displayName,omitempty"`
		Description   *string         `json:"description,omitempty"`
		MetadataShape json.RawMessage `json:"metadataShape,omitempty"`
		IsActive      *bool           `json:"isActive,omitempty"`
	}
}

type elementTypeOutput struct {
	Body content.ElementType
}

type migrateOutput struct {
	Body struct {
		Seeded bool `json:"seeded" doc:"Whether seed content was written; false when the store already had pages"`
	}
}

func (s *Server) registerAdminSettingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-settings",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/settings",
		Summary:     "List all settings",
	}, s.adminListSettingsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-upsert-setting",
		Method:      stdhttp.MethodPut,
		Path:        "/api/admin/settings/{key}",
		Summary:     "Create or update a setting by key",
	}, s.adminUpsertSettingHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-setting",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/settings/{key}",
		Summary:       "Delete a setting by key",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteSettingHandler)
}

func (s *Server) registerAdminCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-dropdown-options",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/dropdowns",
		Summary:     "List every dropdown option, inactive ones included",
	}, s.adminListDropdownOptionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-dropdown-option",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/dropdowns",
		Summary:       "Create a dropdown option",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreateDropdownOptionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-dropdown-option",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/dropdowns/{id}",
		Summary:     "Partially update a dropdown option",
	}, s.adminUpdateDropdownOptionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-dropdown-option",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/dropdowns/{id}",
		Summary:       "Delete a dropdown option",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteDropdownOptionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-section-types",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/section-types",
		Summary:     "List active section type definitions",
	}, s.adminListSectionTypesHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-section-type",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/section-types",
		Summary:       "Create a section type definition",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreateSectionTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-section-type",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/section-types/{id}",
		Summary:     "Partially update a section type definition",
	}, s.adminUpdateSectionTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-section-type",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/section-types/{id}",
		Summary:       "Delete a section type definition",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteSectionTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-element-types",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/element-types",
		Summary:     "List active element type definitions",
	}, s.adminListElementTypesHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-element-type",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/element-types",
		Summary:       "Create an element type definition",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreateElementTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-element-type",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/element-types/{id}",
		Summary:     "Partially update an element type definition",
	}, s.adminUpdateElementTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-element-type",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/element-types/{id}",
		Summary:       "Delete an element type definition",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteElementTypeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-migrate",
		Method:      stdhttp.MethodPost,
		Path:        "/api/admin/migrate",
		Summary:     "Populate the store with seed content when empty",
	}, s.adminMigrateHandler)
}

func (s *Server) adminListSettingsHandler(ctx context.Context, _ *struct{}) (*settingsOutput, error) {
	settings, err := s.repository.ListSettings(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing settings", nil)
	}
	return &settingsOutput{Body: settings}, nil
}

func (s *Server) adminUpsertSettingHandler(ctx context.Context, input *upsertSettingInput) (*settingOutput, error) {
	setting, err := s.repository.UpsertSetting(ctx, content.SettingInput{
		Key:         input.Key,
		Value:       input.Body.Value,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "upserting setting", logrus.Fields{"key": input.Key})
	}
	return &settingOutput{Body: *setting}, nil
}

func (s *Server) adminDeleteSettingHandler(ctx context.Context, input *settingKeyInput) (*struct{}, error) {
	if err := s.repository.DeleteSetting(ctx, input.Key); err != nil {
		return nil, s.domainError(ctx, err, "deleting setting", logrus.Fields{"key": input.Key})
	}
	return nil, nil
}

func (s *Server) adminListDropdownOptionsHandler(ctx context.Context, _ *struct{}) (*dropdownOptionsOutput, error) {
	options, err := s.repository.ListAllDropdownOptions(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing dropdown options", nil)
	}
	return &dropdownOptionsOutput{Body: options}, nil
}

func (s *Server) adminCreateDropdownOptionHandler(ctx context.Context, input *createDropdownOptionInput) (*dropdownOptionOutput, error) {
	option, err := s.repository.CreateDropdownOption(ctx, content.DropdownOptionInput{
		FieldName: input.Body.FieldName,
		Value:     input.Body.Value,
		Label:     input.Body.Label,
		SortOrder: input.Body.Order,
		IsActive:  input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating dropdown option", logrus.Fields{"field": input.Body.FieldName})
	}
	return &dropdownOptionOutput{Body: *option}, nil
}

func (s *Server) adminUpdateDropdownOptionHandler(ctx context.Context, input *updateDropdownOptionInput) (*dropdownOptionOutput, error) {
	option, err := s.repository.UpdateDropdownOption(ctx, input.ID, content.DropdownOptionUpdate{
		Value:     input.Body.Value,
		Label:     input.Body.Label,
		SortOrder: input.Body.Order,
		IsActive:  input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating dropdown option", logrus.Fields{"option_id": input.ID})
	}
	return &dropdownOptionOutput{Body: *option}, nil
}

func (s *Server) adminDeleteDropdownOptionHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeleteDropdownOption(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting dropdown option", logrus.Fields{"option_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminListSectionTypesHandler(ctx context.Context, _ *struct{}) (*sectionTypesOutput, error) {
	types, err := s.repository.ListSectionTypes(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing section types", nil)
	}
	return &sectionTypesOutput{Body: types}, nil
}

func (s *Server) adminCreateSectionTypeHandler(ctx context.Context, input *createSectionTypeInput) (*sectionTypeOutput, error) {
	definition, err := s.repository.CreateSectionType(ctx, content.SectionTypeInput{
		Name:                input.Body.Name,
		DisplayName:         input.Body.DisplayName,
		Description:         input.Body.Description,
		AllowedElementTypes: input.Body.AllowedElementTypes,
		IsActive:            input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating section type", logrus.Fields{"name": input.Body.Name})
	}
	return &sectionTypeOutput{Body: *definition}, nil
}

func (s *Server) adminUpdateSectionTypeHandler(ctx context.Context, input *updateSectionTypeInput) (*sectionTypeOutput, error) {
	definition, err := s.repository.UpdateSectionType(ctx, input.ID, content.SectionTypeUpdate{
		DisplayName:         input.Body.DisplayName,
		Description:         input.Body.Description,
		AllowedElementTypes: input.Body.AllowedElementTypes,
		IsActive:            input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating section type", logrus.Fields{"type_id": input.ID})
	}
	return &sectionTypeOutput{Body: *definition}, nil
}

func (s *Server) adminDeleteSectionTypeHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeleteSectionType(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting section type", logrus.Fields{"type_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminListElementTypesHandler(ctx context.Context, _ *struct{}) (*elementTypesOutput, error) {
	types, err := s.repository.ListElementTypes(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing element types", nil)
	}
	return &elementTypesOutput{Body: types}, nil
}

func (s *Server) adminCreateElementTypeHandler(ctx context.Context, input *createElementTypeInput) (*elementTypeOutput, error) {
	definition, err := s.repository.CreateElementType(ctx, content.ElementTypeInput{
		Name:          input.Body.Name,
		DisplayName:   input.Body.DisplayName,
		Description:   input.Body.Description,
		MetadataShape: input.Body.MetadataShape,
		IsActive:      input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating element type", logrus.Fields{"name": input.Body.Name})
	}
	return &elementTypeOutput{Body: *definition}, nil
}

func (s *Server) adminUpdateElementTypeHandler(ctx context.Context, input *updateElementTypeInput) (*elementTypeOutput, error) {
	definition, err := s.repository.UpdateElementType(ctx, input.ID, content.ElementTypeUpdate{
		DisplayName:   input.Body.DisplayName,
		Description:   input.Body.Description,
		MetadataShape: input.Body.MetadataShape,
		IsActive:      input.Body.IsActive,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating element type", logrus.Fields{"type_id": input.ID})
	}
	return &elementTypeOutput{Body: *definition}, nil
}

func (s *Server) adminDeleteElementTypeHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeleteElementType(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting element type", logrus.Fields{"type_id": input.ID})
	}
	return nil, nil
}

// adminMigrateHandler repopulates the store with seed content. It goes
// through the same emptiness check as the bootstrap path, so calling it on a
// populated store is a safe no-op.
func (s *Server) adminMigrateHandler(ctx context.Context, _ *struct{}) (*migrateOutput, error) {
	seeded, err := content.SeedIfEmpty(ctx, s.repository, s.logger)
	if err != nil {
		return nil, s.domainError(ctx, err, "running seed migration", nil)
	}

	out := &migrateOutput{}
	out.Body.Seeded = seeded
	return out, nil
}
