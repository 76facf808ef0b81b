package locale

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

// State is the selector lifecycle state
type State int

const (
	// Unresolved means no language has been chosen yet
	Unresolved State = iota
	// Resolving means translations for a chosen language are being loaded
	Resolving
	// Resolved means a language has been applied, possibly with empty translations
	Resolved
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Switcher applies a language by loading its translations
type Switcher interface {
	SwitchLanguage(ctx context.Context, code string) error
}

// Selector drives the Unresolved -> Resolving -> Resolved lifecycle. A failed load does not
// leave a failed state: the selector still becomes Resolved and the switcher is expected
// to have applied an empty translation set.
type Selector struct {
	switcher Switcher
	logger   *zap.SugaredLogger

	mu       sync.Mutex
	state    State
	inflight int
}

// SelectorOption configures a Selector
type SelectorOption func(*Selector)

// WithLogger sets the selector logger
func WithLogger(l *zap.SugaredLogger) SelectorOption {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector creates an unresolved selector
func NewSelector(switcher Switcher, opts ...SelectorOption) *Selector {
	s := &Selector{switcher: switcher, logger: logger.Get()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resolve picks the visitor's language from acceptLanguage and applies it. It is meant for
// the first entry; on an already resolved selector it behaves like Switch.
func (s *Selector) Resolve(ctx context.Context, acceptLanguage string, langs []content.SupportedLanguage) (content.SupportedLanguage, error) {
	lang, matched, err := Choose(ParsePreferences(acceptLanguage), langs)
	if err != nil {
		return content.SupportedLanguage{}, err
	}
	if !matched {
		s.logger.Debugw("No preferred language is supported, using the first configured language",
			"accept_language", acceptLanguage,
			"language", lang.Code,
		)
	}
	return lang, s.Switch(ctx, lang.Code)
}

// Switch re-enters Resolving and applies code. The returned error is informational: the
// selector is Resolved afterwards whether or not the load succeeded, unless code is not
// a supported language.
func (s *Selector) Switch(ctx context.Context, code string) error {
	s.mu.Lock()
	prev := s.state
	s.inflight++
	s.state = Resolving
	s.mu.Unlock()

	err := s.switcher.SwitchLanguage(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight > 0 {
		return err
	}
	// an unknown code never started a load
	if errors.Is(err, content.ErrUnknownLanguage) && prev == Unresolved {
		s.state = Unresolved
		return err
	}
	s.state = Resolved
	return err
}
