package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/content"
)

var testLanguages = []content.SupportedLanguage{
	{Code: "en", SheetName: "English", DisplayName: "English"},
	{Code: "fr", SheetName: "Français", DisplayName: "Français"},
}

// fakeLoader counts calls and lets a test hold back translation loads per language
type fakeLoader struct {
	languageCalls atomic.Int32
	allCalls      atomic.Int32

	mu           sync.Mutex
	gates        map[string]chan struct{}
	started      map[string]chan struct{}
	failing      map[string]error
	translations map[string]content.Translations
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		gates:   map[string]chan struct{}{},
		started: map[string]chan struct{}{},
		failing: map[string]error{},
		translations: map[string]content.Translations{
			"en": {"common": {"greeting": "Hello"}},
			"fr": {"common": {"greeting": "Bonjour"}},
		},
	}
}

// hold makes the next translation load for code block until the returned function runs
func (f *fakeLoader) hold(code string) (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	s := make(chan struct{})
	f.gates[code] = gate
	f.started[code] = s
	return s, func() { close(gate) }
}

func (f *fakeLoader) LoadLanguages(context.Context) ([]content.SupportedLanguage, error) {
	f.languageCalls.Add(1)
	return testLanguages, nil
}

func (f *fakeLoader) LoadAll(context.Context) content.Globals {
	f.allCalls.Add(1)
	time.Sleep(10 * time.Millisecond)
	return content.Globals{Projects: []content.Project{{Title: "Site"}}}
}

func (f *fakeLoader) LoadTranslations(_ context.Context, lang content.SupportedLanguage) (content.Translations, error) {
	f.mu.Lock()
	gate, started := f.gates[lang.Code], f.started[lang.Code]
	delete(f.gates, lang.Code)
	delete(f.started, lang.Code)
	err := f.failing[lang.Code]
	tr := f.translations[lang.Code]
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return content.Translations{}, err
	}
	return tr, nil
}

func newPopulatedSession(t *testing.T, loader *fakeLoader) *cache.Session {
	t.Helper()
	s := cache.NewSession(loader, cache.WithLogger(zap.NewNop().Sugar()))
	require.NoError(t, s.Populate(context.Background()))
	return s
}

func TestSession_PopulateOnce(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := cache.NewSession(loader, cache.WithLogger(zap.NewNop().Sugar()))
	assert.False(t, s.Populated())

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Populate(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.languageCalls.Load())
	assert.Equal(t, int32(1), loader.allCalls.Load())
	assert.True(t, s.Populated())
	assert.False(t, s.IsLoading())

	snap := s.Snapshot()
	assert.Equal(t, testLanguages, snap.SupportedLangs)
	assert.Equal(t, []content.Project{{Title: "Site"}}, snap.Projects)
	assert.Empty(t, snap.CurrentLang)
}

func TestSession_SwitchLanguageReplacesOnlyLocalization(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := newPopulatedSession(t, loader)
	before := s.Snapshot()

	require.NoError(t, s.SwitchLanguage(context.Background(), "fr"))

	after := s.Snapshot()
	assert.Equal(t, "fr", after.CurrentLang)
	assert.Equal(t, "Bonjour", after.Translations.Lookup("greeting", ""))
	assert.Equal(t, before.Globals(), after.Globals())
	assert.Equal(t, before.SupportedLangs, after.SupportedLangs)
	assert.Equal(t, int32(1), loader.allCalls.Load())
}

func TestSession_LastSwitchWins(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := newPopulatedSession(t, loader)
	require.NoError(t, s.SwitchLanguage(context.Background(), "en"))

	frStarted, releaseFr := loader.hold("fr")
	frDone := make(chan error, 1)
	go func() { frDone <- s.SwitchLanguage(context.Background(), "fr") }()

	<-frStarted
	assert.True(t, s.IsLoading())

	require.NoError(t, s.SwitchLanguage(context.Background(), "en"))
	releaseFr()

	err := <-frDone
	assert.ErrorIs(t, err, cache.ErrSuperseded)
	assert.True(t, cache.IsSuperseded(err))

	snap := s.Snapshot()
	assert.Equal(t, "en", snap.CurrentLang)
	assert.Equal(t, "Hello", snap.Translations.Lookup("greeting", ""))
	assert.False(t, s.IsLoading())
}

func TestSession_FailedSwitchKeepsPreviousLanguage(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := newPopulatedSession(t, loader)
	require.NoError(t, s.SwitchLanguage(context.Background(), "en"))

	loader.failing["fr"] = errors.New("sheet unavailable")
	err := s.SwitchLanguage(context.Background(), "fr")
	require.Error(t, err)
	assert.ErrorContains(t, err, "sheet unavailable")

	snap := s.Snapshot()
	assert.Equal(t, "en", snap.CurrentLang)
	assert.Equal(t, "fallback", snap.Translations.Lookup("greeting", "fallback"))
}

func TestSession_FailedFirstSwitchUsesRequestedLanguage(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	loader.failing["fr"] = errors.New("sheet unavailable")
	s := newPopulatedSession(t, loader)

	require.Error(t, s.SwitchLanguage(context.Background(), "fr"))
	assert.Equal(t, "fr", s.Snapshot().CurrentLang)
	assert.Equal(t, content.Translations{}, s.Snapshot().Translations)
}

func TestSession_SwitchErrors(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := cache.NewSession(loader)
	assert.ErrorIs(t, s.SwitchLanguage(context.Background(), "en"), cache.ErrNotPopulated)

	require.NoError(t, s.Populate(context.Background()))
	assert.ErrorIs(t, s.SwitchLanguage(context.Background(), "de"), content.ErrUnknownLanguage)
}

func TestSession_Subscribe(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := newPopulatedSession(t, loader)

	updates, cancel := s.Subscribe()
	initial := <-updates
	assert.False(t, initial.Loading)
	assert.Equal(t, testLanguages, initial.Snapshot.SupportedLangs)

	require.NoError(t, s.SwitchLanguage(context.Background(), "fr"))

	latest := <-updates
	assert.False(t, latest.Loading)
	assert.Equal(t, "fr", latest.Snapshot.CurrentLang)

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open)
}

func TestSession_Clear(t *testing.T) {
	t.Parallel()

	loader := newFakeLoader()
	s := newPopulatedSession(t, loader)

	s.Clear()
	assert.False(t, s.Populated())
	assert.Equal(t, content.Snapshot{}, s.Snapshot())

	require.NoError(t, s.Populate(context.Background()))
	assert.Equal(t, int32(2), loader.languageCalls.Load())
}
