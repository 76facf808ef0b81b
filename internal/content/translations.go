package content

import "strings"

// DefaultSection is used for translation rows that do not name a section
const DefaultSection = "common"

// Translations maps a section name to its key/value strings for exactly one language.
// A missing section or key is never an error: lookups return the caller's fallback.
type Translations map[string]Section

// Section maps a translation key to its localized text
type Section map[string]string

// Section returns the named section, or nil when absent
func (t Translations) Section(name string) Section {
	if t == nil {
		return nil
	}
	return t[name]
}

// Text looks up section/key and returns fallback when it is missing or blank
func (t Translations) Text(section, key, fallback string) string {
	return t.Section(section).Text(key, fallback)
}

// Lookup resolves a dotted "section.key" path. A path without a dot is looked up in DefaultSection.
func (t Translations) Lookup(path, fallback string) string {
	section, key, ok := strings.Cut(path, ".")
	if !ok {
		return t.Text(DefaultSection, path, fallback)
	}
	return t.Text(section, key, fallback)
}

// Len returns the total number of keys across all sections
func (t Translations) Len() int {
	n := 0
	for _, s := range t {
		n += len(s)
	}
	return n
}

// Text returns the value for key, or fallback when missing or blank
func (s Section) Text(key, fallback string) string {
	if s == nil {
		return fallback
	}
	if v, ok := s[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
