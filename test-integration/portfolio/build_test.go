package integration

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kiuyha/portfolio-content/internal/aggregate"
	"github.com/kiuyha/portfolio-content/internal/app"
	"github.com/kiuyha/portfolio-content/internal/config"
	"github.com/kiuyha/portfolio-content/internal/storage"
	"github.com/kiuyha/portfolio-content/test-integration/portfolio/helpers"
)

var _ = Describe("Static build", Label("build"), func() {
	var (
		tempDir   string
		outDir    string
		providers *helpers.FakeProviders
		comps     *app.Components
	)

	BeforeEach(func() {
		tempDir = createTempDir("portfolio-build-")
		outDir = filepath.Join(tempDir, "dist")
		providers = helpers.NewFakeProviders()
	})

	AfterEach(func() {
		if comps != nil {
			_ = comps.Close(ctx)
			comps = nil
		}
		providers.Close()
		cleanupTempDir(tempDir)
	})

	build := func() (storage.Manifest, error) {
		cfg, err := config.LoadConfig(
			config.WithConfigPath(helpers.WriteConfigYAML(tempDir, providers.URL())),
			config.WithoutEnvironment(),
		)
		Expect(err).NotTo(HaveOccurred())
		comps, err = app.NewComponents(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		return app.RunBuild(ctx, comps.Builder, storage.NewFileStore(outDir))
	}

	It("should write one page per language from a single global fetch", func() {
		manifest, err := build()
		Expect(err).NotTo(HaveOccurred())
		Expect(manifest.Pages).To(ConsistOf("en", "id"))

		store := storage.NewFileStore(outDir)
		page, err := store.ReadPage(ctx, "id")
		Expect(err).NotTo(HaveOccurred())
		Expect(page.CurrentLang).To(Equal("id"))
		Expect(page.Translations.Lookup("common.greeting", "")).To(Equal("Halo"))
		Expect(page.SupportedLangs).To(HaveLen(2))

		langs, err := store.ReadLanguages(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(langs).To(HaveLen(2))

		Expect(providers.Hits("languages")).To(Equal(1))
		Expect(providers.Hits("projects")).To(Equal(1))
		Expect(providers.Hits("English")).To(Equal(1))
		Expect(providers.Hits("Indonesia")).To(Equal(1))
	})

	It("should still write a page whose translations fail", func() {
		providers.FailSheet("Indonesia")

		manifest, err := build()
		Expect(err).NotTo(HaveOccurred())
		Expect(manifest.Pages).To(ConsistOf("en", "id"))

		page, err := storage.NewFileStore(outDir).ReadPage(ctx, "id")
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Translations).To(BeEmpty())
	})

	It("should fail after retrying when the languages sheet is unreachable", func() {
		providers.FailSheet("languages")

		_, err := build()
		Expect(err).To(HaveOccurred())
		var loadErr *aggregate.AggregateLoadError
		Expect(errors.As(err, &loadErr)).To(BeTrue())
		Expect(providers.Hits("languages")).To(Equal(2))

		_, err = storage.NewFileStore(outDir).ReadPage(ctx, "en")
		Expect(err).To(MatchError(storage.ErrNotFound))
	})
})
