// Package schema is the single chokepoint between untrusted provider payloads and the render path.
//
// Every content kind has exactly one JSON Schema (embedded under schemas/) and exactly one
// default value. Validate turns raw bytes into a Result; callers that get an invalid result
// substitute DefaultFor and carry on.
//
// Row-wise kinds (spreadsheet sheets) validate each row on its own and drop the rows that
// fail, so one malformed row never hides the rest of the sheet. Document kinds
// (contributions, articles) are all-or-nothing.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kiuyha/portfolio-content/internal/content"
)

// Kind identifies a content type
type Kind string

const (
	// KindLanguages is the supported-language list
	KindLanguages Kind = "languages"
	// KindProjects is the project list
	KindProjects Kind = "projects"
	// KindAchievements is the achievement list
	KindAchievements Kind = "achievements"
	// KindTranslations is one language's translation table
	KindTranslations Kind = "translations"
	// KindContributions is the contribution statistics document
	KindContributions Kind = "contributions"
	// KindArticles is the article feed document
	KindArticles Kind = "articles"
)

const schemaBaseURL = "https://schemas.portfolio-content.dev/"

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema is the compiled shape definition and default value for one kind
type Schema[T any] struct {
	kind     Kind
	compiled *jsonschema.Schema
	decode   func(instance any) (T, []error, error)
	fallback func() T
}

// Kind returns the content kind this schema describes
func (s *Schema[T]) Kind() Kind {
	return s.kind
}

// Default returns a fresh copy of the kind's safe-to-render default
func (s *Schema[T]) Default() T {
	return s.fallback()
}

// Registry holds one compiled schema per content kind
type Registry struct {
	Languages     *Schema[[]content.SupportedLanguage]
	Projects      *Schema[[]content.Project]
	Achievements  *Schema[[]content.Achievement]
	Translations  *Schema[content.Translations]
	Contributions *Schema[content.Contributions]
	Articles      *Schema[content.Articles]
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// DefaultRegistry returns the process-wide registry, compiling it on first use
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}

// NewRegistry compiles every embedded schema
func NewRegistry() (*Registry, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)

	files := []string{
		"language.json", "project.json", "achievement.json",
		"translation.json", "contributions.json", "articles.json",
	}
	compiled := make(map[string]*jsonschema.Schema, len(files))
	for _, name := range files {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
		}
		if err := c.AddResource(schemaBaseURL+name, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
	}
	for _, name := range files {
		sch, err := c.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		compiled[name] = sch
	}

	return &Registry{
		Languages:     newLanguagesSchema(compiled["language.json"]),
		Projects:      newProjectsSchema(compiled["project.json"]),
		Achievements:  newAchievementsSchema(compiled["achievement.json"]),
		Translations:  newTranslationsSchema(compiled["translation.json"]),
		Contributions: newContributionsSchema(compiled["contributions.json"]),
		Articles:      newArticlesSchema(compiled["articles.json"]),
	}, nil
}

// Validate parses raw and checks it against s. It never panics and never returns a
// partially valid document: the result is either Ok or Invalid.
func Validate[T any](raw []byte, s *Schema[T]) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Invalid[T](payloadError(s.kind, fmt.Sprintf("decoder panic: %v", r), nil))
		}
	}()
	if len(bytes.TrimSpace(raw)) == 0 {
		return Invalid[T](payloadError(s.kind, "empty payload", nil))
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Invalid[T](payloadError(s.kind, "payload is not valid JSON", err))
	}
	value, dropped, err := s.decode(trimStrings(instance))
	if err != nil {
		return Invalid[T](err)
	}
	return Ok(value, dropped...)
}

// DefaultFor returns the default value of the kind described by s
func DefaultFor[T any](s *Schema[T]) T {
	return s.Default()
}
