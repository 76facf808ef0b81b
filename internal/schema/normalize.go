package schema

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kiuyha/portfolio-content/internal/content"
)

var (
	tagPattern        = regexp.MustCompile(`(?s)<[^>]*>`)
	imgPattern        = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)
	whitespacePattern = regexp.MustCompile(`[\s\p{Zs}]+`)

	// feed providers emit dates in any of these
	pubDateLayouts = []string{
		"2006-01-02 15:04:05",
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
	}

	// Cf covers zero-width spaces, joiners and byte order marks
	textCleaner = transform.Chain(runes.Remove(runes.In(unicode.Cf)), norm.NFC)
)

// cleanText strips markup and feed artifacts from a display string
func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	if out, _, err := transform.String(textCleaner, s); err == nil {
		s = out
	}
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeArticle maps a validated feed item to an Article
func normalizeArticle(item map[string]any) content.Article {
	body := str(item, "content")
	summary := str(item, "description")

	description := cleanText(summary)
	if description == "" {
		description = cleanText(body)
	}

	return content.Article{
		Title:       cleanText(str(item, "title")),
		Link:        normalizeLink(str(item, "link")),
		Description: description,
		Image:       articleImage(item, body, summary),
		Author:      cleanText(str(item, "author")),
		PubDate:     normalizePubDate(str(item, "pubDate")),
		Categories:  cleanCategories(item["categories"]),
	}
}

// normalizeLink drops the tracking "source" parameter feed links carry
func normalizeLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.RawQuery == "" {
		return link
	}
	q := u.Query()
	q.Del("source")
	u.RawQuery = q.Encode()
	return u.String()
}

// normalizePubDate returns the date as RFC 3339 in UTC, or the input unchanged when no
// known layout matches
func normalizePubDate(s string) string {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}

func articleImage(item map[string]any, bodies ...string) string {
	if thumb := str(item, "thumbnail"); thumb != "" {
		return thumb
	}
	if enc, ok := item["enclosure"].(map[string]any); ok {
		if link := str(enc, "link"); link != "" {
			return link
		}
	}
	for _, b := range bodies {
		if m := imgPattern.FindStringSubmatch(b); m != nil {
			return html.UnescapeString(m[1])
		}
	}
	return ""
}

// cleanCategories trims categories and drops empty and case-insensitive duplicates,
// keeping the first spelling
func cleanCategories(v any) []string {
	out := []string{}
	raw, ok := v.([]any)
	if !ok {
		return out
	}
	seen := make(map[string]struct{}, len(raw))
	for _, c := range raw {
		s, ok := c.(string)
		if !ok {
			continue
		}
		s = cleanText(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
