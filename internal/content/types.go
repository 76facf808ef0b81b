// Package content defines the validated entities handed to page renderers and UI state providers.
//
// Values in this package are treated as immutable once produced: updates replace a whole
// value and never patch slices or maps in place.
package content

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned when a language code is not in the supported set
var ErrUnknownLanguage = errors.New("unknown language")

// SupportedLanguage is one entry of the languages sheet
type SupportedLanguage struct {
	// Code is the routing code, e.g. "en"
	Code string `json:"code"`
	// SheetName is the name of the sheet holding this language's translations
	SheetName string `json:"sheetName"`
	// DisplayName is the label shown in the language switcher
	DisplayName string `json:"displayName"`
}

// FindLanguage returns the language with the given code
func FindLanguage(langs []SupportedLanguage, code string) (SupportedLanguage, error) {
	for _, l := range langs {
		if l.Code == code {
			return l, nil
		}
	}
	return SupportedLanguage{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// Project is a portfolio project row
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Link        string   `json:"link,omitempty"`
	Repo        string   `json:"repo,omitempty"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
	Date        string   `json:"date,omitempty"`
}

// Achievement is a certificate or award row
type Achievement struct {
	Title       string   `json:"title"`
	Issuer      string   `json:"issuer,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Link        string   `json:"link,omitempty"`
	Tags        []string `json:"tags"`
	Order       int      `json:"order"`
	Date        string   `json:"date,omitempty"`
}

// Contributions holds code-hosting activity statistics
type Contributions struct {
	// Total maps a period ("lastYear" or a year) to its contribution count
	Total map[string]int `json:"total"`
	// Days is the contribution-by-date series
	Days []ContributionDay `json:"contributions"`
}

// ContributionDay is one point of the contribution calendar
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Articles is the ordered article feed plus its metadata
type Articles struct {
	Feed  Feed      `json:"feed"`
	Items []Article `json:"items"`
}

// Feed describes the article feed itself
type Feed struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Article is one feed item
type Article struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Author      string   `json:"author"`
	PubDate     string   `json:"pubDate"`
	Categories  []string `json:"categories"`
}

// Globals is the language-independent part of a snapshot
type Globals struct {
	Projects      []Project     `json:"projects"`
	Achievements  []Achievement `json:"achievements"`
	Contributions Contributions `json:"contributions"`
	Articles      Articles      `json:"articles"`

	// Degraded names the kinds that fell back to their default while loading
	Degraded []string `json:"-"`
}

// Partial reports whether any kind fell back to its default. Partial globals are
// kept by the process that loaded them but never shared with other processes.
func (g Globals) Partial() bool {
	return len(g.Degraded) > 0
}

// Snapshot is the aggregate handed to consumers
type Snapshot struct {
	SupportedLangs []SupportedLanguage `json:"supportedLangs"`
	Projects       []Project           `json:"projects"`
	Achievements   []Achievement       `json:"achievements"`
	Contributions  Contributions       `json:"contributions"`
	Articles       Articles            `json:"articles"`
	Translations   Translations        `json:"translations"`
	CurrentLang    string              `json:"currentLang"`
}

// NewSnapshot assembles a snapshot from its parts
func NewSnapshot(langs []SupportedLanguage, g Globals, tr Translations, currentLang string) Snapshot {
	return Snapshot{
		SupportedLangs: langs,
		Projects:       g.Projects,
		Achievements:   g.Achievements,
		Contributions:  g.Contributions,
		Articles:       g.Articles,
		Translations:   tr,
		CurrentLang:    currentLang,
	}
}

// Globals returns the language-independent fields of s
func (s Snapshot) Globals() Globals {
	return Globals{
		Projects:      s.Projects,
		Achievements:  s.Achievements,
		Contributions: s.Contributions,
		Articles:      s.Articles,
	}
}

// WithLocalization returns a copy of s with only the localization slice replaced
func (s Snapshot) WithLocalization(tr Translations, currentLang string) Snapshot {
	s.Translations = tr
	s.CurrentLang = currentLang
	return s
}
