package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kiuyha/portfolio-content/internal/aggregate"
	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/locale"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/versions"
)

// Routes holds the handlers' dependencies
type Routes struct {
	session      SessionService
	pages        PageService
	redirectBase string
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

func versionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()
	writeJSONResponse(w, VersionResponse{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		GoVersion: info.GoVersion,
		Platform:  info.Platform,
	}, http.StatusOK)
}

// readinessCheck reports ready once the session has resolved a language
func (rr *Routes) readinessCheck(w http.ResponseWriter, _ *http.Request) {
	state := rr.session.State()
	if state == locale.Unresolved {
		writeJSONResponse(w, ReadinessResponse{Status: "not ready", State: state.String()}, http.StatusServiceUnavailable)
		return
	}
	writeJSONResponse(w, ReadinessResponse{Status: "ready", State: state.String()}, http.StatusOK)
}

// getSnapshot handles GET /v1/snapshot. The first request populates the session and
// resolves its language from Accept-Language.
func (rr *Routes) getSnapshot(w http.ResponseWriter, r *http.Request) {
	if !rr.start(w, r) {
		return
	}
	rr.writeSnapshot(w, "")
}

// switchLanguage handles PUT /v1/language/{code}
func (rr *Routes) switchLanguage(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if !rr.start(w, r) {
		return
	}

	err := rr.session.SwitchLanguage(r.Context(), code)
	switch {
	case err == nil:
		rr.writeSnapshot(w, "")
	case errors.Is(err, content.ErrUnknownLanguage):
		writeErrorResponse(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cache.ErrSuperseded):
		writeErrorResponse(w, err.Error(), http.StatusConflict)
	default:
		logger.Warnf("Language %s applied with fallback text: %v", code, err)
		rr.writeSnapshot(w, err.Error())
	}
}

// listLanguages handles GET /v1/languages
func (rr *Routes) listLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := rr.pages.Languages(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}
	writeJSONResponse(w, LanguagesResponse{Languages: langs}, http.StatusOK)
}

// listPages handles GET /v1/pages
func (rr *Routes) listPages(w http.ResponseWriter, r *http.Request) {
	paths, err := rr.pages.StaticPaths(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}
	codes := make([]string, 0, len(paths))
	for _, p := range paths {
		codes = append(codes, p.Lang)
	}
	writeJSONResponse(w, PagesResponse{Pages: codes}, http.StatusOK)
}

// getPage handles GET /v1/pages/{code}
func (rr *Routes) getPage(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	snap, err := rr.pages.PageData(r.Context(), code)
	switch {
	case err == nil:
		writeJSONResponse(w, snap, http.StatusOK)
	case errors.Is(err, content.ErrUnknownLanguage):
		writeErrorResponse(w, err.Error(), http.StatusNotFound)
	default:
		writeLoadError(w, err)
	}
}

// redirect handles GET /v1/redirect by sending the visitor to the page of their
// preferred language
func (rr *Routes) redirect(w http.ResponseWriter, r *http.Request) {
	langs, err := rr.pages.Languages(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}
	lang, _, err := locale.Choose(locale.ParsePreferences(r.Header.Get("Accept-Language")), langs)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	http.Redirect(w, r, strings.TrimSuffix(rr.redirectBase, "/")+"/"+lang.Code, http.StatusTemporaryRedirect)
}

// start populates the session if needed and writes the error response when it cannot
func (rr *Routes) start(w http.ResponseWriter, r *http.Request) bool {
	if err := rr.session.Start(r.Context(), r.Header.Get("Accept-Language")); err != nil {
		writeLoadError(w, err)
		return false
	}
	return true
}

func (rr *Routes) writeSnapshot(w http.ResponseWriter, warning string) {
	writeJSONResponse(w, SnapshotResponse{
		Snapshot:  rr.session.Read(),
		IsLoading: rr.session.IsLoading(),
		State:     rr.session.State().String(),
		Warning:   warning,
	}, http.StatusOK)
}

func writeLoadError(w http.ResponseWriter, err error) {
	var loadErr *aggregate.AggregateLoadError
	if errors.As(err, &loadErr) || errors.Is(err, locale.ErrNoLanguages) {
		logger.Errorf("Content could not be loaded: %v", err)
		writeErrorResponse(w, "content is unavailable", http.StatusServiceUnavailable)
		return
	}
	logger.Errorf("Request failed: %v", err)
	writeErrorResponse(w, "internal error", http.StatusInternalServerError)
}

func writeJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSONResponse(w, ErrorResponse{Error: message}, statusCode)
}
