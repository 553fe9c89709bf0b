package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
)

type idInput struct {
	ID string `path:"id"`
}

type createPageInput struct {
	Body struct {
		Slug            string `json:"slug" minLength:"1"`
		Title           string `json:"title,omitempty"`
		MetaDescription string `json:"metaDescription,omitempty"`
		IsPublished     *bool  `json:"isPublished,omitempty"`
	}
}

type updatePageInput struct {
	ID   string `path:"id"`
	Body struct {
		Slug            *string `json:"slug,omitempty"`
		Title           *string `json:"title,omitempty"`
		MetaDescription *string `json:"metaDescription,omitempty"`
		IsPublished     *bool   `json:"isPublished,omitempty"`
	}
}

type createSectionInput struct {
	Body struct {
		PageID      string          `json:"pageId" minLength:"1"`
		Type        string          `json:"type" minLength:"1"`
		Title       string          `json:"title,omitempty"`
		Layout      json.RawMessage `json:"layout,omitempty"`
		Order       *int            `json:"order,omitempty" minimum:"0"`
		IsPublished *bool           `json:"isPublished,omitempty"`
	}
}

type updateSectionInput struct {
	ID   string `path:"id"`
	Body struct {
		Type        *string         `json:"type,omitempty"`
		Title       *string         `json:"title,omitempty"`
		Layout      json.RawMessage `json:"layout,omitempty"`
		Order       *int            `json:"order,omitempty" minimum:"0"`
		IsPublished *bool           `json:"isPublished,omitempty"`
	}
}

type createElementInput struct {
	Body struct {
		SectionID   string          `json:"sectionId" minLength:"1"`
		Type        string          `json:"type" minLength:"1"`
		Title       string          `json:"title,omitempty"`
		Content     string          `json:"content,omitempty"`
		Metadata    json.RawMessage `json:"metadata,omitempty"`
		Order       *int            `json:"order,omitempty" minimum:"0"`
		IsPublished *bool           `json:"isPublished,omitempty"`
	}
}

type updateElementInput struct {
	ID   string `path:"id"`
	Body struct {
		Type        *string         `json:"type,omitempty"`
		Title       *string         `json:"title,omitempty"`
		Content     *string         `json:"content,omitempty"`
		Metadata    json.RawMessage `json:"metadata,omitempty"`
		Order       *int            `json:"order,omitempty" minimum:"0"`
		IsPublished *bool           `json:"isPublished,omitempty"`
	}
}

type reorderInput struct {
	ID   string `path:"id"`
	Body struct {
		IDs []string `json:"ids"`
	}
}

type bulkDeleteInput struct {
	Body struct {
		IDs []string `json:"ids" minItems:"1"`
	}
}

type duplicateSectionInput struct {
	ID   string `path:"id"`
	Body struct {
		TargetPageID string `json:"targetPageId,omitempty"`
	}
}

type sectionOutput struct {
	Body content.Section
}

type sectionsOutput struct {
	Body []content.Section
}

type elementOutput struct {
	Body content.Element
}

type elementsOutput struct {
	Body []content.Element
}

func (s *Server) registerAdminPageRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-pages",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/pages",
		Summary:     "List all pages, drafts included",
	}, s.adminListPagesHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-get-page",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/pages/{id}",
		Summary:     "Fetch a page regardless of publish state",
	}, s.adminGetPageHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-get-page-tree",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/pages/{id}/tree",
		Summary:     "Fetch a page with its full unfiltered tree",
	}, s.adminGetPageTreeHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-page",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/pages",
		Summary:       "Create a page",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreatePageHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-page",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/pages/{id}",
		Summary:     "Partially update a page",
	}, s.adminUpdatePageHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-page",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/pages/{id}",
		Summary:       "Delete a page and everything beneath it",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeletePageHandler)
}

func (s *Server) registerAdminSectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-sections",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/pages/{id}/sections",
		Summary:     "List the sections of a page, drafts included",
	}, s.adminListSectionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-get-section",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/sections/{id}",
		Summary:     "Fetch a section regardless of publish state",
	}, s.adminGetSectionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-section",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/sections",
		Summary:       "Create a section on an existing page",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreateSectionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-section",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/sections/{id}",
		Summary:     "Partially update a section",
	}, s.adminUpdateSectionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-section",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/sections/{id}",
		Summary:       "Delete a section and its elements",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteSectionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-reorder-sections",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/pages/{id}/sections/reorder",
		Summary:       "Rewrite the order of a page's sections",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminReorderSectionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-bulk-delete-sections",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/sections/bulk-delete",
		Summary:       "Delete several sections, skipping unknown ids",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminBulkDeleteSectionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-duplicate-section",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/sections/{id}/duplicate",
		Summary:       "Clone a section and its elements as drafts",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminDuplicateSectionHandler)
}

func (s *Server) registerAdminElementRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "admin-list-elements",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/sections/{id}/elements",
		Summary:     "List the elements of a section, drafts included",
	}, s.adminListElementsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-get-element",
		Method:      stdhttp.MethodGet,
		Path:        "/api/admin/elements/{id}",
		Summary:     "Fetch an element regardless of publish state",
	}, s.adminGetElementHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-create-element",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/elements",
		Summary:       "Create an element in an existing section",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminCreateElementHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "admin-update-element",
		Method:      stdhttp.MethodPatch,
		Path:        "/api/admin/elements/{id}",
		Summary:     "Partially update an element",
	}, s.adminUpdateElementHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-delete-element",
		Method:        stdhttp.MethodDelete,
		Path:          "/api/admin/elements/{id}",
		Summary:       "Delete an element",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminDeleteElementHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-reorder-elements",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/sections/{id}/elements/reorder",
		Summary:       "Rewrite the order of a section's elements",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminReorderElementsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-bulk-delete-elements",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/elements/bulk-delete",
		Summary:       "Delete several elements, skipping unknown ids",
		DefaultStatus: stdhttp.StatusNoContent,
	}, s.adminBulkDeleteElementsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID:   "admin-duplicate-element",
		Method:        stdhttp.MethodPost,
		Path:          "/api/admin/elements/{id}/duplicate",
		Summary:       "Clone an element as a draft",
		DefaultStatus: stdhttp.StatusCreated,
	}, s.adminDuplicateElementHandler)
}

func (s *Server) adminListPagesHandler(ctx context.Context, _ *struct{}) (*pagesOutput, error) {
	pages, err := s.repository.ListPages(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing pages", nil)
	}
	return &pagesOutput{Body: pages}, nil
}

func (s *Server) adminGetPageHandler(ctx context.Context, input *idInput) (*pageOutput, error) {
	page, err := s.repository.GetPage(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "fetching page", logrus.Fields{"page_id": input.ID})
	}
	return &pageOutput{Body: *page}, nil
}

func (s *Server) adminGetPageTreeHandler(ctx context.Context, input *idInput) (*pageOutput, error) {
	page, err := s.repository.GetPageWithTree(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "fetching page tree", logrus.Fields{"page_id": input.ID})
	}
	return &pageOutput{Body: *page}, nil
}

func (s *Server) adminCreatePageHandler(ctx context.Context, input *createPageInput) (*pageOutput, error) {
	page, err := s.repository.CreatePage(ctx, content.PageInput{
		Slug:            input.Body.Slug,
		Title:           input.Body.Title,
		MetaDescription: input.Body.MetaDescription,
		IsPublished:     input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating page", logrus.Fields{"slug": input.Body.Slug})
	}
	return &pageOutput{Body: *page}, nil
}

func (s *Server) adminUpdatePageHandler(ctx context.Context, input *updatePageInput) (*pageOutput, error) {
	page, err := s.repository.UpdatePage(ctx, input.ID, content.PageUpdate{
		Slug:            input.Body.Slug,
		Title:           input.Body.Title,
		MetaDescription: input.Body.MetaDescription,
		IsPublished:     input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating page", logrus.Fields{"page_id": input.ID})
	}
	return &pageOutput{Body: *page}, nil
}

func (s *Server) adminDeletePageHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeletePage(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting page", logrus.Fields{"page_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminListSectionsHandler(ctx context.Context, input *idInput) (*sectionsOutput, error) {
	sections, err := s.repository.ListSections(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing sections", logrus.Fields{"page_id": input.ID})
	}
	return &sectionsOutput{Body: sections}, nil
}

func (s *Server) adminGetSectionHandler(ctx context.Context, input *idInput) (*sectionOutput, error) {
	section, err := s.repository.GetSection(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "fetching section", logrus.Fields{"section_id": input.ID})
	}
	return &sectionOutput{Body: *section}, nil
}

func (s *Server) adminCreateSectionHandler(ctx context.Context, input *createSectionInput) (*sectionOutput, error) {
	section, err := s.repository.CreateSection(ctx, content.SectionInput{
		PageID:      input.Body.PageID,
		Type:        input.Body.Type,
		Title:       input.Body.Title,
		Layout:      input.Body.Layout,
		SortOrder:   input.Body.Order,
		IsPublished: input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating section", logrus.Fields{"page_id": input.Body.PageID})
	}
	return &sectionOutput{Body: *section}, nil
}

func (s *Server) adminUpdateSectionHandler(ctx context.Context, input *updateSectionInput) (*sectionOutput, error) {
	section, err := s.repository.UpdateSection(ctx, input.ID, content.SectionUpdate{
		Type:        input.Body.Type,
		Title:       input.Body.Title,
		Layout:      input.Body.Layout,
		SortOrder:   input.Body.Order,
		IsPublished: input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating section", logrus.Fields{"section_id": input.ID})
	}
	return &sectionOutput{Body: *section}, nil
}

func (s *Server) adminDeleteSectionHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeleteSection(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting section", logrus.Fields{"section_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminReorderSectionsHandler(ctx context.Context, input *reorderInput) (*struct{}, error) {
	if err := s.repository.ReorderSections(ctx, input.ID, input.Body.IDs); err != nil {
		return nil, s.domainError(ctx, err, "reordering sections", logrus.Fields{"page_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminBulkDeleteSectionsHandler(ctx context.Context, input *bulkDeleteInput) (*struct{}, error) {
	if err := s.repository.BulkDeleteSections(ctx, input.Body.IDs); err != nil {
		return nil, s.domainError(ctx, err, "bulk deleting sections", nil)
	}
	return nil, nil
}

func (s *Server) adminDuplicateSectionHandler(ctx context.Context, input *duplicateSectionInput) (*sectionOutput, error) {
	section, err := s.repository.DuplicateSection(ctx, input.ID, input.Body.TargetPageID)
	if err != nil {
		return nil, s.domainError(ctx, err, "duplicating section", logrus.Fields{"section_id": input.ID})
	}
	return &sectionOutput{Body: *section}, nil
}

func (s *Server) adminListElementsHandler(ctx context.Context, input *idInput) (*elementsOutput, error) {
	elements, err := s.repository.ListElements(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing elements", logrus.Fields{"section_id": input.ID})
	}
	return &elementsOutput{Body: elements}, nil
}

func (s *Server) adminGetElementHandler(ctx context.Context, input *idInput) (*elementOutput, error) {
	element, err := s.repository.GetElement(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "fetching element", logrus.Fields{"element_id": input.ID})
	}
	return &elementOutput{Body: *element}, nil
}

func (s *Server) adminCreateElementHandler(ctx context.Context, input *createElementInput) (*elementOutput, error) {
	element, err := s.repository.CreateElement(ctx, content.ElementInput{
		SectionID:   input.Body.SectionID,
		Type:        input.Body.Type,
		Title:       input.Body.Title,
		Content:     input.Body.Content,
		Metadata:    input.Body.Metadata,
		SortOrder:   input.Body.Order,
		IsPublished: input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "creating element", logrus.Fields{"section_id": input.Body.SectionID})
	}
	return &elementOutput{Body: *element}, nil
}

func (s *Server) adminUpdateElementHandler(ctx context.Context, input *updateElementInput) (*elementOutput, error) {
	element, err := s.repository.UpdateElement(ctx, input.ID, content.ElementUpdate{
		Type:        input.Body.Type,
		Title:       input.Body.Title,
		Content:     input.Body.Content,
		Metadata:    input.Body.Metadata,
		SortOrder:   input.Body.Order,
		IsPublished: input.Body.IsPublished,
	})
	if err != nil {
		return nil, s.domainError(ctx, err, "updating element", logrus.Fields{"element_id": input.ID})
	}
	return &elementOutput{Body: *element}, nil
}

func (s *Server) adminDeleteElementHandler(ctx context.Context, input *idInput) (*struct{}, error) {
	if err := s.repository.DeleteElement(ctx, input.ID); err != nil {
		return nil, s.domainError(ctx, err, "deleting element", logrus.Fields{"element_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminReorderElementsHandler(ctx context.Context, input *reorderInput) (*struct{}, error) {
	if err := s.repository.ReorderElements(ctx, input.ID, input.Body.IDs); err != nil {
		return nil, s.domainError(ctx, err, "reordering elements", logrus.Fields{"section_id": input.ID})
	}
	return nil, nil
}

func (s *Server) adminBulkDeleteElementsHandler(ctx context.Context, input *bulkDeleteInput) (*struct{}, error) {
	if err := s.repository.BulkDeleteElements(ctx, input.Body.IDs); err != nil {
		return nil, s.domainError(ctx, err, "bulk deleting elements", nil)
	}
	return nil, nil
}

func (s *Server) adminDuplicateElementHandler(ctx context.Context, input *idInput) (*elementOutput, error) {
	element, err := s.repository.DuplicateElement(ctx, input.ID)
	if err != nil {
		return nil, s.domainError(ctx, err, "duplicating element", logrus.Fields{"element_id": input.ID})
	}
	return &elementOutput{Body: *element}, nil
}
