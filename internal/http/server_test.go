package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/david-rosenfeld/r7dme-sub000/internal/content"
	"github.com/david-rosenfeld/r7dme-sub000/internal/db"
	"github.com/david-rosenfeld/r7dme-sub000/internal/session"
)

const testAdminSecret = "test-admin-secret"

func newTestServer(t *testing.T) (*Server, content.Repository) {
	t.Helper()
	return newTestServerWithLimit(t, LoginLimitSettings{
		RequestsPerSecond: 100,
		Burst:             100,
		ClientTTL:         time.Minute,
	})
}

func newTestServerWithLimit(t *testing.T, limit LoginLimitSettings) (*Server, content.Repository) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	path := filepath.Join(t.TempDir(), "server.db")
	gormDB, err := db.Open(db.Options{Path: path})
	if err != nil {
		t.Fatalf("db.Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(gormDB); closeErr != nil {
			t.Fatalf("closing database failed: %v", closeErr)
		}
	})

	if err := content.Migrate(context.Background(), gormDB, logger); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	repo, err := content.NewRepository(gormDB, logger)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}

	sessions, err := session.NewManager(session.Options{TTL: time.Hour, Logger: logger})
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	srv, err := NewServer(Options{
		Repository:  repo,
		Sessions:    sessions,
		AdminSecret: testAdminSecret,
		Database:    gormDB,
		Logger:      logger,
		LoginLimit:  limit,
	})
	if err != nil {
		t.Fatalf("NewServer returned error: %v", err)
	}

	return srv, repo
}

func doJSON(t *testing.T, srv *Server, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv *Server) string {
	t.Helper()

	rec := doJSON(t, srv, "POST", loginPath, "", `{"secret":"`+testAdminSecret+`"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected login status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding login response failed: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("expected a session token in the login response")
	}
	return out.Token
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, "POST", loginPath, "", `{"secret":"wrong"}`)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/admin/pages", "", "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401 without a token, got %d", rec.Code)
	}

	rec = doJSON(t, srv, "GET", "/api/admin/pages", "never-issued", "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401 for an unknown token, got %d", rec.Code)
	}
}

func TestLoginTokenUnlocksAdminRoutes(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "GET", "/api/admin/pages", token, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200 with a valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/api/auth/logout", token, "")
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("expected status 204 on logout, got %d", rec.Code)
	}

	rec = doJSON(t, srv, "GET", "/api/admin/pages", token, "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", rec.Code)
	}

	rec = doJSON(t, srv, "POST", "/api/auth/logout", token, "")
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("expected repeat logout to stay 204, got %d", rec.Code)
	}
}

func TestCreatePageViaAdminAPI(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/api/admin/pages", token, `{"slug":"about","title":"About"}`)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var page content.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding page failed: %v", err)
	}
	if page.ID == "" || page.Slug != "about" || !page.IsPublished {
		t.Fatalf("unexpected created page: %+v", page)
	}
}

func TestCreatePageRejectsBlankSlug(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/api/admin/pages", token, `{"slug":"   "}`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected status 400 for a blank slug, got %d", rec.Code)
	}
}

func TestPublicPageTreeHidesDrafts(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	ctx := context.Background()

	page, err := repo.CreatePage(ctx, content.PageInput{Slug: "home", Title: "Home"})
	if err != nil {
		t.Fatalf("CreatePage returned error: %v", err)
	}
	section, err := repo.CreateSection(ctx, content.SectionInput{PageID: page.ID, Type: "hero", Title: "Intro"})
	if err != nil {
		t.Fatalf("CreateSection returned error: %v", err)
	}
	if _, err := repo.CreateElement(ctx, content.ElementInput{SectionID: section.ID, Type: "paragraph", Title: "Visible"}); err != nil {
		t.Fatalf("CreateElement returned error: %v", err)
	}
	draft := false
	if _, err := repo.CreateElement(ctx, content.ElementInput{SectionID: section.ID, Type: "paragraph", Title: "Hidden", IsPublished: &draft}); err != nil {
		t.Fatalf("CreateElement returned error: %v", err)
	}

	rec := doJSON(t, srv, "GET", "/api/pages/home", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Visible") {
		t.Fatalf("expected published element in the tree, got %q", body)
	}
	if strings.Contains(body, "Hidden") {
		t.Fatalf("expected draft element filtered out, got %q", body)
	}
}

func TestPublicUnknownSlugReturns404(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/pages/missing", "", "")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestMigrateEndpointSeedsOnce(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/api/admin/migrate", token, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Seeded bool `json:"seeded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding migrate response failed: %v", err)
	}
	if !out.Seeded {
		t.Fatalf("expected the first migrate call to seed")
	}

	rec = doJSON(t, srv, "POST", "/api/admin/migrate", token, "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding migrate response failed: %v", err)
	}
	if out.Seeded {
		t.Fatalf("expected the second migrate call to skip seeding")
	}
}

func TestHealthRoute(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/healthz", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("expected ok status in body, got %q", rec.Body.String())
	}
}

func TestLoginRateLimitReturns429(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServerWithLimit(t, LoginLimitSettings{
		RequestsPerSecond: 0.001,
		Burst:             2,
		ClientTTL:         time.Minute,
	})

	for attempt := 0; attempt < 2; attempt++ {
		rec := doJSON(t, srv, "POST", loginPath, "", `{"secret":"wrong"}`)
		if rec.Code != stdhttp.StatusUnauthorized {
			t.Fatalf("attempt %d: expected status 401, got %d", attempt+1, rec.Code)
		}
	}

	rec := doJSON(t, srv, "POST", loginPath, "", `{"secret":"wrong"}`)
	if rec.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("expected status 429 once the burst is spent, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After header on the throttled response")
	}

	rec = doJSON(t, srv, "GET", "/api/pages", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected public routes unaffected by the login limiter, got %d", rec.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/api/pages", "", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected an X-Request-ID header on every response")
	}
}
