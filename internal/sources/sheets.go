package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/httpclient"
	"github.com/kiuyha/portfolio-content/internal/schema"
)

// SheetNames names the fixed sheets of the spreadsheet
type SheetNames struct {
	Languages    string
	Projects     string
	Achievements string
}

// SheetsAdapter reads sheets from a spreadsheet-to-JSON endpoint that answers
// GET {endpoint}/{spreadsheetID}/{sheet} with an array of row objects keyed by header
type SheetsAdapter struct {
	adapter
	registry      *schema.Registry
	endpoint      string
	spreadsheetID string
	sheets        SheetNames
}

var _ Spreadsheet = (*SheetsAdapter)(nil)

// NewSheetsAdapter creates a spreadsheet adapter
func NewSheetsAdapter(
	client httpclient.Client,
	registry *schema.Registry,
	endpoint, spreadsheetID string,
	sheets SheetNames,
	opts ...Option,
) *SheetsAdapter {
	return &SheetsAdapter{
		adapter:       newAdapter(SourceSpreadsheet, client, opts),
		registry:      registry,
		endpoint:      strings.TrimSuffix(endpoint, "/"),
		spreadsheetID: spreadsheetID,
		sheets:        sheets,
	}
}

// FetchLanguages returns the supported languages
func (h *SheetsAdapter) FetchLanguages(ctx context.Context) []content.SupportedLanguage {
	return fetch(ctx, &h.adapter, h.registry.Languages, h.sheetURL(h.sheets.Languages))
}

// FetchProjects returns the project rows
func (h *SheetsAdapter) FetchProjects(ctx context.Context) []content.Project {
	return fetch(ctx, &h.adapter, h.registry.Projects, h.sheetURL(h.sheets.Projects))
}

// FetchAchievements returns the achievement rows
func (h *SheetsAdapter) FetchAchievements(ctx context.Context) []content.Achievement {
	return fetch(ctx, &h.adapter, h.registry.Achievements, h.sheetURL(h.sheets.Achievements))
}

// FetchTranslations returns the translation table of one language
func (h *SheetsAdapter) FetchTranslations(ctx context.Context, sheetName string) content.Translations {
	if strings.TrimSpace(sheetName) == "" {
		h.logger.Warnw("Translation sheet name is empty, using default",
			"source", h.source,
			"kind", string(schema.KindTranslations),
		)
		markFallback(ctx, schema.KindTranslations)
		return h.registry.Translations.Default()
	}
	return fetch(ctx, &h.adapter, h.registry.Translations, h.sheetURL(sheetName))
}

func (h *SheetsAdapter) sheetURL(sheet string) string {
	return fmt.Sprintf("%s/%s/%s", h.endpoint, url.PathEscape(h.spreadsheetID), url.PathEscape(sheet))
}
