package locale_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/locale"
)

var langs = []content.SupportedLanguage{
	{Code: "en", SheetName: "English", DisplayName: "English"},
	{Code: "id", SheetName: "Indonesia", DisplayName: "Bahasa Indonesia"},
	{Code: "pt-BR", SheetName: "Português", DisplayName: "Português (Brasil)"},
	{Code: "pt", SheetName: "Português PT", DisplayName: "Português"},
}

func TestParsePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		expect []language.Tag
	}{
		{name: "empty", header: "", expect: nil},
		{name: "blank", header: "   ", expect: nil},
		{name: "single", header: "fr", expect: []language.Tag{language.French}},
		{
			name:   "ordered by quality",
			header: "en;q=0.5, id-ID, fr;q=0.8",
			expect: []language.Tag{language.MustParse("id-ID"), language.French, language.English},
		},
		{name: "malformed", header: "en;q=abc", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, locale.ParsePreferences(tt.header))
		})
	}
}

func TestChoose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		langs         []content.SupportedLanguage
		expectCode    string
		expectMatched bool
		expectErr     error
	}{
		{name: "base language match", header: "id-ID,id;q=0.9", langs: langs, expectCode: "id", expectMatched: true},
		{name: "first preference wins", header: "en-US, id", langs: langs, expectCode: "en", expectMatched: true},
		{name: "exact region beats base", header: "pt-PT", langs: langs, expectCode: "pt", expectMatched: true},
		{name: "region match", header: "pt-BR", langs: langs, expectCode: "pt-BR", expectMatched: true},
		{name: "falls through unsupported", header: "de, id;q=0.3", langs: langs, expectCode: "id", expectMatched: true},
		{name: "no match uses first", header: "ja", langs: langs, expectCode: "en"},
		{name: "no header uses first", header: "", langs: langs, expectCode: "en"},
		{name: "empty list", header: "en", langs: nil, expectErr: locale.ErrNoLanguages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, matched, err := locale.Choose(locale.ParsePreferences(tt.header), tt.langs)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectCode, got.Code)
			assert.Equal(t, tt.expectMatched, matched)
		})
	}
}

type fakeSwitcher struct {
	calls   []string
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSwitcher) SwitchLanguage(_ context.Context, code string) error {
	f.calls = append(f.calls, code)
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	if _, err := content.FindLanguage(langs, code); err != nil {
		return err
	}
	return f.err
}

func TestSelector_Lifecycle(t *testing.T) {
	t.Parallel()

	sw := &fakeSwitcher{started: make(chan struct{}), release: make(chan struct{})}
	sel := locale.NewSelector(sw, locale.WithLogger(zap.NewNop().Sugar()))
	assert.Equal(t, locale.Unresolved, sel.State())

	done := make(chan error, 1)
	go func() {
		_, err := sel.Resolve(context.Background(), "id", langs)
		done <- err
	}()

	<-sw.started
	assert.Equal(t, locale.Resolving, sel.State())
	close(sw.release)
	require.NoError(t, <-done)
	assert.Equal(t, locale.Resolved, sel.State())

	sw.started = nil
	require.NoError(t, sel.Switch(context.Background(), "en"))
	assert.Equal(t, locale.Resolved, sel.State())
	assert.Equal(t, []string{"id", "en"}, sw.calls)
}

func TestSelector_FailedLoadStillResolves(t *testing.T) {
	t.Parallel()

	sw := &fakeSwitcher{err: errors.New("sheet unavailable")}
	sel := locale.NewSelector(sw)

	lang, err := sel.Resolve(context.Background(), "ja", langs)
	assert.ErrorContains(t, err, "sheet unavailable")
	assert.Equal(t, "en", lang.Code)
	assert.Equal(t, locale.Resolved, sel.State())
}

func TestSelector_UnknownCode(t *testing.T) {
	t.Parallel()

	sel := locale.NewSelector(&fakeSwitcher{})
	err := sel.Switch(context.Background(), "xx")
	assert.ErrorIs(t, err, content.ErrUnknownLanguage)
	assert.Equal(t, locale.Unresolved, sel.State())

	_, err = sel.Resolve(context.Background(), "en", nil)
	assert.ErrorIs(t, err, locale.ErrNoLanguages)
	assert.Equal(t, locale.Unresolved, sel.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unresolved", locale.Unresolved.String())
	assert.Equal(t, "resolving", locale.Resolving.String())
	assert.Equal(t, "resolved", locale.Resolved.String())
	assert.Equal(t, "state(7)", locale.State(7).String())
}
