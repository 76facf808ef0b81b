package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/site"
	"github.com/kiuyha/portfolio-content/internal/storage"
)

// maxConcurrentPages bounds concurrent page generation
const maxConcurrentPages = 4

// PageGenerator is the build-mode view RunBuild consumes
type PageGenerator interface {
	Languages(ctx context.Context) ([]content.SupportedLanguage, error)
	StaticPaths(ctx context.Context) ([]site.PagePath, error)
	PageData(ctx context.Context, code string) (content.Snapshot, error)
}

// RunBuild generates one page per supported language and writes the pages, the
// language list and a manifest to store. Globals are fetched once for the whole build.
func RunBuild(ctx context.Context, pages PageGenerator, store storage.Store) (storage.Manifest, error) {
	started := time.Now()

	previous, err := store.ReadManifest(ctx)
	if err != nil {
		logger.Warnf("Could not read previous build manifest: %v", err)
	} else if storage.WrittenByNewerVersion(previous) {
		logger.Warnw("Output was written by a newer release", "version", previous.Version)
	}

	paths, err := pages.StaticPaths(ctx)
	if err != nil {
		return storage.Manifest{}, fmt.Errorf("failed to list pages: %w", err)
	}
	langs, err := pages.Languages(ctx)
	if err != nil {
		return storage.Manifest{}, fmt.Errorf("failed to list languages: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for _, p := range paths {
		g.Go(func() error {
			snap, err := pages.PageData(gctx, p.Lang)
			if err != nil {
				return fmt.Errorf("failed to generate page %s: %w", p.Lang, err)
			}
			if err := store.WritePage(gctx, p.Lang, snap); err != nil {
				return fmt.Errorf("failed to write page %s: %w", p.Lang, err)
			}
			logger.Debugw("Page written", "lang", p.Lang)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return storage.Manifest{}, err
	}

	if err := store.WriteLanguages(ctx, langs); err != nil {
		return storage.Manifest{}, fmt.Errorf("failed to write languages: %w", err)
	}

	codes := make([]string, 0, len(paths))
	for _, p := range paths {
		codes = append(codes, p.Lang)
	}
	manifest := storage.NewManifest(codes, started)
	if err := store.WriteManifest(ctx, manifest); err != nil {
		return storage.Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Infow("Build complete", "build_id", manifest.BuildID, "pages", len(codes), "duration", manifest.Duration)
	return manifest, nil
}
