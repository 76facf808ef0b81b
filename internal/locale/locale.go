// Package locale resolves which supported language a visitor should see.
//
// Preferences come from an Accept-Language header and are matched against the supported
// language list on their base language. When nothing matches, the first supported
// language is used, so the order of the languages sheet decides the default.
package locale

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/kiuyha/portfolio-content/internal/content"
)

// ErrNoLanguages is returned when there is no supported language to choose from
var ErrNoLanguages = errors.New("no supported languages")

// ParsePreferences parses an Accept-Language header into tags ordered by quality.
// An empty or malformed header yields no preferences.
func ParsePreferences(acceptLanguage string) []language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return nil
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return nil
	}
	return tags
}

// Match returns the supported language that best matches the preferences. Preferences
// are tried in order. For one preference an exact tag wins, then a supported language
// that is only the preferred base language, then any language sharing that base.
func Match(prefs []language.Tag, langs []content.SupportedLanguage) (content.SupportedLanguage, bool) {
	for _, pref := range prefs {
		if pref == language.Und {
			continue
		}
		best, bestScore := -1, 0
		for i, l := range langs {
			if score := matchScore(pref, l.Code); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 {
			return langs[best], true
		}
	}
	return content.SupportedLanguage{}, false
}

func matchScore(pref language.Tag, code string) int {
	tag, err := language.Parse(code)
	if err != nil {
		return 0
	}
	if tag == pref {
		return 3
	}
	prefBase, _ := pref.Base()
	base, _ := tag.Base()
	if base != prefBase {
		return 0
	}
	if tag.String() == base.String() {
		return 2
	}
	return 1
}

// Choose returns the matching language, or the first supported language when nothing
// matches. matched reports which of the two happened.
func Choose(prefs []language.Tag, langs []content.SupportedLanguage) (lang content.SupportedLanguage, matched bool, err error) {
	if len(langs) == 0 {
		return content.SupportedLanguage{}, false, ErrNoLanguages
	}
	if l, ok := Match(prefs, langs); ok {
		return l, true, nil
	}
	return langs[0], false, nil
}
