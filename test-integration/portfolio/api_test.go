package integration

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kiuyha/portfolio-content/internal/api"
	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/test-integration/portfolio/helpers"
)

var _ = Describe("Content API", Label("api"), func() {
	var (
		tempDir      string
		providers    *helpers.FakeProviders
		serverHelper *helpers.ServerTestHelper
	)

	BeforeEach(func() {
		tempDir = createTempDir("portfolio-api-")
		providers = helpers.NewFakeProviders()

		var err error
		serverHelper, err = helpers.NewServerTestHelper(ctx, helpers.WriteConfigYAML(tempDir, providers.URL()))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = serverHelper.StopServer()
		providers.Close()
		cleanupTempDir(tempDir)
	})

	startServer := func() {
		Expect(serverHelper.StartServer()).To(Succeed())
		serverHelper.WaitForServerReady(10 * time.Second)
	}

	getSnapshot := func(acceptLanguage string) api.SnapshotResponse {
		resp, err := serverHelper.Do(http.MethodGet, "/v1/snapshot", acceptLanguage)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var snap api.SnapshotResponse
		Expect(helpers.DecodeJSON(resp, &snap)).To(Succeed())
		return snap
	}

	Context("Client mode", func() {
		It("should resolve the visitor's preferred language on first load", func() {
			startServer()

			resp, err := serverHelper.Do(http.MethodGet, "/readiness", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
			_ = resp.Body.Close()

			snap := getSnapshot("id-ID,id;q=0.9,en;q=0.8")
			Expect(snap.Snapshot.CurrentLang).To(Equal("id"))
			Expect(snap.State).To(Equal("resolved"))
			Expect(snap.Snapshot.Translations.Lookup("common.greeting", "")).To(Equal("Halo"))
			Expect(snap.Snapshot.SupportedLangs).To(HaveLen(2))
			Expect(snap.Snapshot.Projects).To(HaveLen(2))
			Expect(snap.Snapshot.Articles.Items).To(HaveLen(1))
			Expect(snap.Snapshot.Contributions.Total).To(HaveKeyWithValue("lastYear", 120))

			resp, err = serverHelper.Do(http.MethodGet, "/readiness", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			_ = resp.Body.Close()
		})

		It("should fall back to the first language when nothing matches", func() {
			startServer()

			snap := getSnapshot("ja-JP")
			Expect(snap.Snapshot.CurrentLang).To(Equal("en"))
			Expect(snap.Snapshot.Translations.Lookup("common.greeting", "")).To(Equal("Hello"))
		})

		It("should switch languages without refetching global content", func() {
			startServer()
			getSnapshot("en")
			projectHits := providers.Hits("projects")

			resp, err := serverHelper.Do(http.MethodPut, "/v1/language/id", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var snap api.SnapshotResponse
			Expect(helpers.DecodeJSON(resp, &snap)).To(Succeed())

			Expect(snap.Snapshot.CurrentLang).To(Equal("id"))
			Expect(snap.Snapshot.Translations.Lookup("common.greeting", "")).To(Equal("Halo"))
			Expect(snap.Snapshot.Projects).To(HaveLen(2))
			Expect(providers.Hits("projects")).To(Equal(projectHits))
			Expect(providers.Hits("languages")).To(Equal(1))
		})

		It("should keep serving when a translation sheet fails", func() {
			providers.FailSheet("Indonesia")
			startServer()
			getSnapshot("en")

			resp, err := serverHelper.Do(http.MethodPut, "/v1/language/id", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			var snap api.SnapshotResponse
			Expect(helpers.DecodeJSON(resp, &snap)).To(Succeed())

			Expect(snap.State).To(Equal("resolved"))
			Expect(snap.Snapshot.Translations.Lookup("common.greeting", "fallback")).To(Equal("fallback"))
			Expect(snap.Snapshot.Projects).To(HaveLen(2))
		})

		It("should reject unknown languages", func() {
			startServer()
			getSnapshot("en")

			resp, err := serverHelper.Do(http.MethodPut, "/v1/language/de", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			_ = resp.Body.Close()
		})
	})

	Context("Pages", func() {
		It("should list one page per language and serve each", func() {
			startServer()

			resp, err := serverHelper.Do(http.MethodGet, "/v1/pages", "")
			Expect(err).NotTo(HaveOccurred())
			var pages api.PagesResponse
			Expect(helpers.DecodeJSON(resp, &pages)).To(Succeed())
			Expect(pages.Pages).To(Equal([]string{"en", "id"}))

			for _, code := range pages.Pages {
				resp, err := serverHelper.Do(http.MethodGet, "/v1/pages/"+code, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				var page content.Snapshot
				Expect(helpers.DecodeJSON(resp, &page)).To(Succeed())
				Expect(page.CurrentLang).To(Equal(code))
			}
			Expect(providers.Hits("projects")).To(Equal(1))
		})

		It("should redirect to the preferred language page", func() {
			startServer()

			resp, err := serverHelper.Do(http.MethodGet, "/v1/redirect", "id")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusTemporaryRedirect))
			Expect(resp.Header.Get("Location")).To(Equal("/id"))
			_ = resp.Body.Close()
		})
	})

	Context("Without languages", func() {
		It("should report content as unavailable", func() {
			providers.SetLanguages([]helpers.Language{})
			startServer()

			resp, err := serverHelper.Do(http.MethodGet, "/v1/snapshot", "en")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
			var body api.ErrorResponse
			Expect(helpers.DecodeJSON(resp, &body)).To(Succeed())
			Expect(body.Error).To(Equal("content is unavailable"))
		})
	})
})
