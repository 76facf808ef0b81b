// Package storage writes build output: one JSON document per generated page, the language
// list and a manifest describing the build. Every file is written atomically.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/versions"
)

const (
	// LanguagesFileName holds the supported language list
	LanguagesFileName = "languages.json"

	// ManifestFileName describes the last build
	ManifestFileName = "manifest.json"

	pageExt = ".json"
)

// ErrNotFound is returned when a requested output file does not exist
var ErrNotFound = errors.New("build output not found")

// Manifest records what a build produced
type Manifest struct {
	BuildID     uuid.UUID `json:"buildId"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Pages       []string  `json:"pages"`
	Duration    string    `json:"duration"`
}

// Store persists build output
type Store interface {
	WriteLanguages(ctx context.Context, langs []content.SupportedLanguage) error
	WritePage(ctx context.Context, code string, snap content.Snapshot) error
	WriteManifest(ctx context.Context, m Manifest) error

	ReadLanguages(ctx context.Context) ([]content.SupportedLanguage, error)
	ReadPage(ctx context.Context, code string) (content.Snapshot, error)
	// ReadManifest returns an empty manifest when no build has been written yet
	ReadManifest(ctx context.Context) (Manifest, error)
}

type fileStore struct {
	basePath string
}

// NewFileStore creates a Store rooted at basePath
func NewFileStore(basePath string) Store {
	return &fileStore{basePath: basePath}
}

func (f *fileStore) WriteLanguages(_ context.Context, langs []content.SupportedLanguage) error {
	return f.writeJSON(LanguagesFileName, langs)
}

func (f *fileStore) WritePage(_ context.Context, code string, snap content.Snapshot) error {
	name, err := pageFileName(code)
	if err != nil {
		return err
	}
	return f.writeJSON(name, snap)
}

func (f *fileStore) WriteManifest(_ context.Context, m Manifest) error {
	return f.writeJSON(ManifestFileName, m)
}

func (f *fileStore) ReadLanguages(_ context.Context) ([]content.SupportedLanguage, error) {
	var langs []content.SupportedLanguage
	if err := f.readJSON(LanguagesFileName, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (f *fileStore) ReadPage(_ context.Context, code string) (content.Snapshot, error) {
	name, err := pageFileName(code)
	if err != nil {
		return content.Snapshot{}, err
	}
	var snap content.Snapshot
	if err := f.readJSON(name, &snap); err != nil {
		return content.Snapshot{}, err
	}
	return snap, nil
}

func (f *fileStore) ReadManifest(_ context.Context) (Manifest, error) {
	var m Manifest
	err := f.readJSON(ManifestFileName, &m)
	if errors.Is(err, ErrNotFound) {
		return Manifest{}, nil
	}
	return m, err
}

// writeJSON writes v to a temporary file and renames it into place
func (f *fileStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(f.basePath, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	filePath := filepath.Join(f.basePath, name)
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file for %s: %w", name, err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}
	return nil
}

func (f *fileStore) readJSON(name string, v any) error {
	filePath := filepath.Join(f.basePath, name)

	// #nosec G304 -- name is a fixed file name or a validated language code
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func pageFileName(code string) (string, error) {
	name := code + pageExt
	if code == "" || strings.ContainsAny(code, `/\`) || !filepath.IsLocal(name) ||
		name == LanguagesFileName || name == ManifestFileName {
		return "", fmt.Errorf("invalid page code %q", code)
	}
	return name, nil
}

// NewManifest describes a build of pages that started at started
func NewManifest(pages []string, started time.Time) Manifest {
	return Manifest{
		BuildID:     uuid.New(),
		Version:     versions.GetVersionInfo().Version,
		GeneratedAt: time.Now().UTC(),
		Pages:       pages,
		Duration:    time.Since(started).Round(time.Millisecond).String(),
	}
}

// WrittenByNewerVersion reports whether m was produced by a newer release than the
// running binary
func WrittenByNewerVersion(m Manifest) bool {
	if m.Version == "" {
		return false
	}
	return versions.IsNewerVersion(m.Version, versions.GetVersionInfo().Version)
}
