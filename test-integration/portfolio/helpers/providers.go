// Package helpers provides fake content providers and server helpers for integration tests.
package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// SpreadsheetID is the spreadsheet the fake provider answers for
const SpreadsheetID = "portfolio-sheet"

// Language is one row of the languages sheet
type Language struct {
	Code        string `json:"code"`
	SheetName   string `json:"sheetName"`
	DisplayName string `json:"displayName"`
}

// TranslationRow is one row of a translation sheet
type TranslationRow struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// FakeProviders serves the spreadsheet, contributions and articles endpoints from memory
type FakeProviders struct {
	mu           sync.Mutex
	languages    []Language
	translations map[string][]TranslationRow
	failing      map[string]bool
	hits         map[string]int
	server       *httptest.Server
}

// NewFakeProviders starts the fake providers with two languages
func NewFakeProviders() *FakeProviders {
	p := &FakeProviders{
		languages: []Language{
			{Code: "en", SheetName: "English", DisplayName: "English"},
			{Code: "id", SheetName: "Indonesia", DisplayName: "Bahasa Indonesia"},
		},
		translations: map[string][]TranslationRow{
			"English":   {{Section: "common", Key: "greeting", Value: "Hello"}},
			"Indonesia": {{Section: "common", Key: "greeting", Value: "Halo"}},
		},
		failing: map[string]bool{},
		hits:    map[string]int{},
	}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	return p
}

// URL returns the base URL of the fake providers
func (p *FakeProviders) URL() string {
	return p.server.URL
}

// Close stops the fake providers
func (p *FakeProviders) Close() {
	p.server.Close()
}

// SetLanguages replaces the languages sheet
func (p *FakeProviders) SetLanguages(langs []Language) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.languages = langs
}

// FailSheet makes the named sheet answer 500
func (p *FakeProviders) FailSheet(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing[name] = true
}

// Hits returns how many times the named sheet was requested
func (p *FakeProviders) Hits(sheet string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[sheet]
}

func (p *FakeProviders) serve(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/sheets/"+SpreadsheetID+"/"):
		sheet := strings.TrimPrefix(r.URL.Path, "/sheets/"+SpreadsheetID+"/")
		p.hits[sheet]++
		if p.failing[sheet] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch sheet {
		case "languages":
			writeJSON(w, p.languages)
		case "projects":
			writeJSON(w, []map[string]string{
				{"title": "Portfolio", "description": "this site", "order": "2"},
				{"title": "CLI", "description": "a tool", "order": "1"},
			})
		case "achievements":
			writeJSON(w, []map[string]string{{"title": "Award", "description": "first place"}})
		default:
			rows, ok := p.translations[sheet]
			if !ok {
				writeJSON(w, map[string]string{"error": "Unable to parse range: " + sheet})
				return
			}
			writeJSON(w, rows)
		}
	case strings.HasPrefix(r.URL.Path, "/contributions/"):
		writeJSON(w, map[string]any{
			"total":         map[string]int{"lastYear": 120},
			"contributions": []map[string]any{{"date": "2025-01-01", "count": 4, "level": 2}},
		})
	case r.URL.Path == "/articles":
		writeJSON(w, map[string]any{
			"status": "ok",
			"feed":   map[string]string{"title": "Stories"},
			"items": []map[string]any{{
				"title": "Writing Go", "link": "https://medium.com/@octocat/go",
				"pubDate": "2025-02-01 10:00:00", "categories": []string{"go"},
			}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
