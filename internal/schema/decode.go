package schema

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kiuyha/portfolio-content/internal/content"
)

// rowItem is a row that passed validation, with its sort key when the sheet has one
type rowItem[T any] struct {
	index int
	value T
	order *int
}

// decodeRows validates every element of a row-wise payload on its own. Rows that fail are
// reported through the dropped slice and never reach convert.
func decodeRows[T any](
	kind Kind,
	compiled *jsonschema.Schema,
	instance any,
	convert func(row map[string]any) (T, *int),
) ([]rowItem[T], []error, error) {
	rows, ok := instance.([]any)
	if !ok {
		return nil, nil, payloadError(kind, "expected an array of rows", nil)
	}

	items := make([]rowItem[T], 0, len(rows))
	var dropped []error
	for i, raw := range rows {
		if err := compiled.Validate(raw); err != nil {
			dropped = append(dropped, rowError(kind, i, "row does not match schema", err))
			continue
		}
		row, ok := raw.(map[string]any)
		if !ok {
			dropped = append(dropped, rowError(kind, i, "row is not an object", nil))
			continue
		}
		value, order := convert(row)
		items = append(items, rowItem[T]{index: i, value: value, order: order})
	}
	return items, dropped, nil
}

// sortByOrder is a stable sort on the order column. Rows without an order keep their sheet
// position and come after every ordered row.
func sortByOrder[T any](items []rowItem[T]) []T {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].order, items[j].order
		switch {
		case a != nil && b != nil:
			return *a < *b
		case a != nil:
			return true
		default:
			return false
		}
	})
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, it.value)
	}
	return out
}

func newLanguagesSchema(compiled *jsonschema.Schema) *Schema[[]content.SupportedLanguage] {
	return &Schema[[]content.SupportedLanguage]{
		kind:     KindLanguages,
		compiled: compiled,
		fallback: func() []content.SupportedLanguage { return []content.SupportedLanguage{} },
		decode: func(instance any) ([]content.SupportedLanguage, []error, error) {
			items, dropped, err := decodeRows(KindLanguages, compiled, instance,
				func(row map[string]any) (content.SupportedLanguage, *int) {
					return content.SupportedLanguage{
						Code:        strings.ToLower(str(row, "code")),
						SheetName:   str(row, "sheetName"),
						DisplayName: str(row, "displayName"),
					}, nil
				})
			if err != nil {
				return nil, nil, err
			}

			seen := make(map[string]struct{}, len(items))
			langs := make([]content.SupportedLanguage, 0, len(items))
			for _, it := range items {
				if _, dup := seen[it.value.Code]; dup {
					dropped = append(dropped, rowError(KindLanguages, it.index, "duplicate language code "+it.value.Code, nil))
					continue
				}
				seen[it.value.Code] = struct{}{}
				langs = append(langs, it.value)
			}
			return langs, dropped, nil
		},
	}
}

func newProjectsSchema(compiled *jsonschema.Schema) *Schema[[]content.Project] {
	return &Schema[[]content.Project]{
		kind:     KindProjects,
		compiled: compiled,
		fallback: func() []content.Project { return []content.Project{} },
		decode: func(instance any) ([]content.Project, []error, error) {
			items, dropped, err := decodeRows(KindProjects, compiled, instance,
				func(row map[string]any) (content.Project, *int) {
					order := parseOrder(row["order"])
					p := content.Project{
						Title:       str(row, "title"),
						Description: str(row, "description"),
						Images:      splitList(str(row, "images")),
						Link:        str(row, "link"),
						Repo:        str(row, "repo"),
						Tags:        splitList(str(row, "tags")),
						Date:        str(row, "date"),
					}
					if order != nil {
						p.Order = *order
					}
					return p, order
				})
			if err != nil {
				return nil, nil, err
			}
			return sortByOrder(items), dropped, nil
		},
	}
}

func newAchievementsSchema(compiled *jsonschema.Schema) *Schema[[]content.Achievement] {
	return &Schema[[]content.Achievement]{
		kind:     KindAchievements,
		compiled: compiled,
		fallback: func() []content.Achievement { return []content.Achievement{} },
		decode: func(instance any) ([]content.Achievement, []error, error) {
			items, dropped, err := decodeRows(KindAchievements, compiled, instance,
				func(row map[string]any) (content.Achievement, *int) {
					order := parseOrder(row["order"])
					a := content.Achievement{
						Title:       str(row, "title"),
						Issuer:      str(row, "issuer"),
						Description: str(row, "description"),
						Images:      splitList(str(row, "images")),
						Link:        str(row, "link"),
						Tags:        splitList(str(row, "tags")),
						Date:        str(row, "date"),
					}
					if order != nil {
						a.Order = *order
					}
					return a, order
				})
			if err != nil {
				return nil, nil, err
			}
			return sortByOrder(items), dropped, nil
		},
	}
}

func newTranslationsSchema(compiled *jsonschema.Schema) *Schema[content.Translations] {
	return &Schema[content.Translations]{
		kind:     KindTranslations,
		compiled: compiled,
		fallback: func() content.Translations { return content.Translations{} },
		decode: func(instance any) (content.Translations, []error, error) {
			type entry struct{ section, key, value string }
			items, dropped, err := decodeRows(KindTranslations, compiled, instance,
				func(row map[string]any) (entry, *int) {
					section := str(row, "section")
					if section == "" {
						section = content.DefaultSection
					}
					return entry{section: section, key: str(row, "key"), value: str(row, "value")}, nil
				})
			if err != nil {
				return nil, nil, err
			}

			tr := content.Translations{}
			for _, it := range items {
				sec, ok := tr[it.value.section]
				if !ok {
					sec = content.Section{}
					tr[it.value.section] = sec
				}
				if _, dup := sec[it.value.key]; dup {
					dropped = append(dropped, rowError(KindTranslations, it.index,
						"duplicate key "+it.value.section+"."+it.value.key, nil))
					continue
				}
				sec[it.value.key] = it.value.value
			}
			return tr, dropped, nil
		},
	}
}

func newContributionsSchema(compiled *jsonschema.Schema) *Schema[content.Contributions] {
	return &Schema[content.Contributions]{
		kind:     KindContributions,
		compiled: compiled,
		fallback: func() content.Contributions {
			return content.Contributions{Total: map[string]int{}, Days: []content.ContributionDay{}}
		},
		decode: func(instance any) (content.Contributions, []error, error) {
			if err := compiled.Validate(instance); err != nil {
				return content.Contributions{}, nil, payloadError(KindContributions, "document does not match schema", err)
			}
			doc := instance.(map[string]any)

			c := content.Contributions{Total: map[string]int{}, Days: []content.ContributionDay{}}
			if total, ok := doc["total"].(map[string]any); ok {
				for period, v := range total {
					c.Total[period] = num(v)
				}
			}
			if days, ok := doc["contributions"].([]any); ok {
				for _, d := range days {
					day := d.(map[string]any)
					c.Days = append(c.Days, content.ContributionDay{
						Date:  str(day, "date"),
						Count: num(day["count"]),
						Level: num(day["level"]),
					})
				}
			}
			return c, nil, nil
		},
	}
}

func newArticlesSchema(compiled *jsonschema.Schema) *Schema[content.Articles] {
	return &Schema[content.Articles]{
		kind:     KindArticles,
		compiled: compiled,
		fallback: func() content.Articles { return content.Articles{Items: []content.Article{}} },
		decode: func(instance any) (content.Articles, []error, error) {
			if err := compiled.Validate(instance); err != nil {
				return content.Articles{}, nil, payloadError(KindArticles, "document does not match schema", err)
			}
			doc := instance.(map[string]any)

			out := content.Articles{Items: []content.Article{}}
			if feed, ok := doc["feed"].(map[string]any); ok {
				out.Feed = content.Feed{
					URL:         str(feed, "url"),
					Title:       cleanText(str(feed, "title")),
					Link:        str(feed, "link"),
					Author:      cleanText(str(feed, "author")),
					Description: cleanText(str(feed, "description")),
					Image:       str(feed, "image"),
				}
			}
			for _, raw := range doc["items"].([]any) {
				out.Items = append(out.Items, normalizeArticle(raw.(map[string]any)))
			}
			return out, nil, nil
		},
	}
}

// str returns a string field, formatting numbers the way a spreadsheet would show them
func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func num(v any) int {
	switch n := v.(type) {
	case json.Number:
		i, _ := integer(n.String())
		return i
	case string:
		i, _ := integer(n)
		return i
	default:
		return 0
	}
}

func parseOrder(v any) *int {
	var s string
	switch o := v.(type) {
	case json.Number:
		s = o.String()
	case string:
		s = o
	default:
		return nil
	}
	i, ok := integer(s)
	if !ok {
		return nil
	}
	return &i
}

// integer parses s as a whole number, accepting integral float forms such as "7.0"
// and "1e2" that JSON Schema treats as integers
func integer(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// splitList turns a comma separated cell into trimmed, non-empty items
func splitList(cell string) []string {
	out := []string{}
	for _, part := range strings.Split(cell, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// trimStrings returns instance with every string value trimmed
func trimStrings(instance any) any {
	switch v := instance.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for i := range v {
			v[i] = trimStrings(v[i])
		}
		return v
	case map[string]any:
		for k := range v {
			v[k] = trimStrings(v[k])
		}
		return v
	default:
		return instance
	}
}
