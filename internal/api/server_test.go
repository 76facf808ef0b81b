package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/aggregate"
	"github.com/kiuyha/portfolio-content/internal/api"
	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/schema"
	"github.com/kiuyha/portfolio-content/internal/site"
	"github.com/kiuyha/portfolio-content/internal/sources/mocks"
)

var languages = []content.SupportedLanguage{
	{Code: "en", SheetName: "English", DisplayName: "English"},
	{Code: "fr", SheetName: "Français", DisplayName: "Français"},
}

// newTestServer wires the API to real site entry points over mocked adapters
func newTestServer(t *testing.T, langs []content.SupportedLanguage, opts ...api.ServerOption) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	sheets := mocks.NewMockSpreadsheet(ctrl)
	contributions := mocks.NewMockContributionSource(ctrl)
	articles := mocks.NewMockArticleSource(ctrl)

	sheets.EXPECT().FetchLanguages(gomock.Any()).Return(langs).AnyTimes()
	sheets.EXPECT().FetchProjects(gomock.Any()).Return([]content.Project{{Title: "Site"}}).AnyTimes()
	sheets.EXPECT().FetchAchievements(gomock.Any()).Return([]content.Achievement{}).AnyTimes()
	sheets.EXPECT().FetchTranslations(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sheet string) content.Translations {
			return content.Translations{"common": {"greeting": "hello from " + sheet}}
		}).AnyTimes()
	contributions.EXPECT().FetchContributions(gomock.Any()).Return(content.Contributions{
		Total: map[string]int{}, Days: []content.ContributionDay{},
	}).AnyTimes()
	articles.EXPECT().FetchArticles(gomock.Any()).Return(content.Articles{Items: []content.Article{}}).AnyTimes()

	reg, err := schema.NewRegistry()
	require.NoError(t, err)
	quiet := zap.NewNop().Sugar()
	orchestrator := aggregate.New(sheets, contributions, articles, reg, aggregate.WithLogger(quiet))

	client := site.NewClient(orchestrator, site.WithClientLogger(quiet))
	builder := site.NewBuilder(orchestrator, cache.NewProcess(), site.WithBuilderLogger(quiet))
	return api.NewServer(client, builder, opts...)
}

func serve(t *testing.T, h http.Handler, method, target, acceptLanguage string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestHealthAndVersion(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, languages)

	rr := serve(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "healthy", decode[api.HealthResponse](t, rr).Status)

	rr = serve(t, h, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, decode[api.VersionResponse](t, rr).GoVersion)
}

func TestSnapshotLifecycle(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, languages)

	rr := serve(t, h, http.MethodGet, "/readiness", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "unresolved", decode[api.ReadinessResponse](t, rr).State)

	rr = serve(t, h, http.MethodGet, "/v1/snapshot", "fr-FR,fr;q=0.9")
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[api.SnapshotResponse](t, rr)
	assert.Equal(t, "fr", snap.Snapshot.CurrentLang)
	assert.Equal(t, "resolved", snap.State)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "hello from Français", snap.Snapshot.Translations.Lookup("greeting", ""))
	assert.Equal(t, languages, snap.Snapshot.SupportedLangs)

	rr = serve(t, h, http.MethodGet, "/readiness", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, h, http.MethodPut, "/v1/language/en", "")
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decode[api.SnapshotResponse](t, rr)
	assert.Equal(t, "en", snap.Snapshot.CurrentLang)
	assert.Equal(t, "hello from English", snap.Snapshot.Translations.Lookup("greeting", ""))
	assert.Empty(t, snap.Warning)

	rr = serve(t, h, http.MethodPut, "/v1/language/de", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decode[api.ErrorResponse](t, rr).Error, "unknown language")
}

func TestSnapshotSessionIsProcessWide(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, languages)

	rr := serve(t, h, http.MethodGet, "/v1/snapshot", "fr-FR")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fr", decode[api.SnapshotResponse](t, rr).Snapshot.CurrentLang)

	// a later Accept-Language does not re-resolve the session
	rr = serve(t, h, http.MethodGet, "/v1/snapshot", "en-US")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fr", decode[api.SnapshotResponse](t, rr).Snapshot.CurrentLang)

	rr = serve(t, h, http.MethodPut, "/v1/language/en", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = serve(t, h, http.MethodGet, "/v1/snapshot", "fr-FR")
	assert.Equal(t, "en", decode[api.SnapshotResponse](t, rr).Snapshot.CurrentLang)

	// page data stays per language
	rr = serve(t, h, http.MethodGet, "/v1/pages/fr", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fr", decode[api.SnapshotResponse](t, rr).Snapshot.CurrentLang)
}

func TestPages(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, languages)

	rr := serve(t, h, http.MethodGet, "/v1/languages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, languages, decode[api.LanguagesResponse](t, rr).Languages)

	rr = serve(t, h, http.MethodGet, "/v1/pages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"en", "fr"}, decode[api.PagesResponse](t, rr).Pages)

	rr = serve(t, h, http.MethodGet, "/v1/pages/fr", "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[content.Snapshot](t, rr)
	assert.Equal(t, "fr", page.CurrentLang)
	assert.Equal(t, []content.Project{{Title: "Site"}}, page.Projects)

	rr = serve(t, h, http.MethodGet, "/v1/pages/xx", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		opts           []api.ServerOption
		acceptLanguage string
		expectLocation string
	}{
		{name: "preferred", acceptLanguage: "fr-CA", expectLocation: "/fr"},
		{name: "no match", acceptLanguage: "ja", expectLocation: "/en"},
		{name: "no header", expectLocation: "/en"},
		{name: "custom base", opts: []api.ServerOption{api.WithRedirectBase("/portfolio/")}, acceptLanguage: "fr", expectLocation: "/portfolio/fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestServer(t, languages, tt.opts...)
			rr := serve(t, h, http.MethodGet, "/v1/redirect", tt.acceptLanguage)
			assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
			assert.Equal(t, tt.expectLocation, rr.Header().Get("Location"))
		})
	}
}

func TestNoLanguagesIsServiceUnavailable(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, []content.SupportedLanguage{})

	for _, target := range []string{"/v1/snapshot", "/v1/languages", "/v1/pages", "/v1/pages/en", "/v1/redirect"} {
		rr := serve(t, h, http.MethodGet, target, "en")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, target)
		assert.Equal(t, "content is unavailable", decode[api.ErrorResponse](t, rr).Error, target)
	}
}

func TestMetricsAndMiddleware(t *testing.T) {
	t.Parallel()

	var seen []string
	record := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	h := newTestServer(t, languages,
		api.WithMiddlewares(api.LoggingMiddleware, record),
		api.WithMetricsHandler(metrics),
	)

	rr := serve(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# metrics", rr.Body.String())
	assert.Equal(t, []string{"/metrics"}, seen)

	rr = serve(t, newTestServer(t, languages), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
