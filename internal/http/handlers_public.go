package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
	"github.com/david-rosenfeld/r7dme-sub000/internal/db"
)

type pagesOutput struct {
	Body []content.Page
}

type pageOutput struct {
	Body content.Page
}

type settingsOutput struct {
	Body []content.Setting
}

type dropdownOptionsOutput struct {
	Body []content.DropdownOption
}

type elementTypesOutput struct {
	Body []content.ElementType
}

type slugInput struct {
	Slug string `path:"slug"`
}

type fieldInput struct {
	Field string `path:"field"`
}

type sectionTypeNameInput struct {
	Name string `path:"name"`
}

type healthResponse struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
}

func (s *Server) registerPublicRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-pages",
		Method:      stdhttp.MethodGet,
		Path:        "/api/pages",
		Summary:     "List published pages",
	}, s.listPagesHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-page-by-slug",
		Method:      stdhttp.MethodGet,
		Path:        "/api/pages/{slug}",
		Summary:     "Fetch a published page with its section and element tree",
	}, s.getPageBySlugHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-settings",
		Method:      stdhttp.MethodGet,
		Path:        "/api/settings",
		Summary:     "List site settings",
	}, s.listSettingsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-dropdown-options",
		Method:      stdhttp.MethodGet,
		Path:        "/api/dropdowns/{field}",
		Summary:     "List active dropdown options for a field",
	}, s.listDropdownOptionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "element-types-for-section",
		Method:      stdhttp.MethodGet,
		Path:        "/api/section-types/{name}/element-types",
		Summary:     "List element types permitted in a section type",
	}, s.elementTypesForSectionHandler)
}

func (s *Server) registerHealthRoute() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      stdhttp.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
	}, s.healthHandler)
}

// listPagesHandler returns published pages only; drafts never leave the
// admin surface.
func (s *Server) listPagesHandler(ctx context.Context, _ *struct{}) (*pagesOutput, error) {
	pages, err := s.repository.ListPublishedPages(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing published pages", nil)
	}

	return &pagesOutput{Body: pages}, nil
}

func (s *Server) getPageBySlugHandler(ctx context.Context, input *slugInput) (*pageOutput, error) {
	page, err := s.repository.GetPublishedPageBySlug(ctx, input.Slug)
	if err != nil {
		return nil, s.domainError(ctx, err, "fetching page by slug", logrus.Fields{"slug": input.Slug})
	}

	return &pageOutput{Body: *page}, nil
}

func (s *Server) listSettingsHandler(ctx context.Context, _ *struct{}) (*settingsOutput, error) {
	settings, err := s.repository.ListSettings(ctx)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing settings", nil)
	}

	return &settingsOutput{Body: settings}, nil
}

func (s *Server) listDropdownOptionsHandler(ctx context.Context, input *fieldInput) (*dropdownOptionsOutput, error) {
	options, err := s.repository.ListDropdownOptions(ctx, input.Field)
	if err != nil {
		return nil, s.domainError(ctx, err, "listing dropdown options", logrus.Fields{"field": input.Field})
	}

	return &dropdownOptionsOutput{Body: options}, nil
}

func (s *Server) elementTypesForSectionHandler(ctx context.Context, input *sectionTypeNameInput) (*elementTypesOutput, error) {
	types, err := s.repository.ElementTypesForSection(ctx, input.Name)
	if err != nil {
		return nil, s.domainError(ctx, err, "resolving element types for section type", logrus.Fields{"name": input.Name})
	}

	return &elementTypesOutput{Body: types}, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	sqlDB, err := db.SQLDB(s.db)
	if err != nil {
		s.recordError(ctx, err, "obtaining sql db", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		s.recordError(ctx, pingErr, "pinging database", nil)
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}
