package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kiuyha/portfolio-content/internal/content"
)

// State is what session subscribers receive on every change
type State struct {
	Snapshot content.Snapshot
	Loading  bool
}

// Session is the client-mode strategy. It owns one snapshot: Populate fills every field
// once, and SwitchLanguage replaces only the translations and current language.
// Language switches are last-write-wins.
type Session struct {
	*memo
	loader Loader

	mu          sync.RWMutex
	snapshot    content.Snapshot
	populated   bool
	loading     int
	switchSeq   uint64
	subscribers map[uint64]chan State
	nextSub     uint64
}

var _ Cache = (*Session)(nil)

// NewSession creates an empty session over loader
func NewSession(loader Loader, opts ...Option) *Session {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		memo:        newMemo("session", o),
		loader:      loader,
		subscribers: map[uint64]chan State{},
	}
}

// Populate loads the language list and the language-independent content in parallel.
// Both are fetched at most once per session; later calls reuse them.
func (s *Session) Populate(ctx context.Context) error {
	s.beginLoad()
	defer s.endLoad()

	var (
		g       errgroup.Group
		langs   []content.SupportedLanguage
		globals content.Globals
	)
	g.Go(func() error {
		var err error
		langs, err = GetOrCompute(ctx, s, KeyLanguages, s.loader.LoadLanguages)
		return err
	})
	g.Go(func() error {
		var err error
		globals, err = GetOrCompute(ctx, s, KeyGlobals, func(ctx context.Context) (content.Globals, error) {
			return s.loader.LoadAll(ctx), nil
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.populated {
		return nil
	}
	s.snapshot = content.NewSnapshot(langs, globals, content.Translations{}, "")
	s.populated = true
	s.publishLocked()
	return nil
}

// SwitchLanguage fetches the translations for code and replaces the localization slice.
// If another switch starts before this one finishes, this result is discarded and
// ErrSuperseded is returned. A failed translation load leaves an empty translation set
// and keeps the previous language, and its error is returned.
func (s *Session) SwitchLanguage(ctx context.Context, code string) error {
	s.mu.Lock()
	if !s.populated {
		s.mu.Unlock()
		return ErrNotPopulated
	}
	lang, err := content.FindLanguage(s.snapshot.SupportedLangs, code)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.switchSeq++
	seq := s.switchSeq
	s.loading++
	s.publishLocked()
	s.mu.Unlock()

	tr, loadErr := s.loader.LoadTranslations(ctx, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--

	if seq != s.switchSeq {
		s.metrics.RecordSwitch(ctx, "superseded")
		s.logger.Debugw("Discarding superseded translations", "language", code)
		s.publishLocked()
		return ErrSuperseded
	}

	if loadErr != nil {
		current := s.snapshot.CurrentLang
		if current == "" {
			current = lang.Code
		}
		s.snapshot = s.snapshot.WithLocalization(content.Translations{}, current)
		s.metrics.RecordSwitch(ctx, "failed")
		s.logger.Warnw("Translations could not be loaded, rendering fallback text",
			"language", code,
			"current_language", current,
			"error", loadErr,
		)
		s.publishLocked()
		return fmt.Errorf("failed to load translations for %q: %w", code, loadErr)
	}

	s.snapshot = s.snapshot.WithLocalization(tr, lang.Code)
	s.metrics.RecordSwitch(ctx, "applied")
	s.publishLocked()
	return nil
}

// Snapshot returns the current snapshot
func (s *Session) Snapshot() content.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// IsLoading reports whether a population or language switch is in progress
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Populated reports whether Populate has succeeded
func (s *Session) Populated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated
}

// Subscribe returns a channel that receives the latest state after every change, and a
// function that cancels the subscription. Slow subscribers only see the newest state.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subscribers[id] = ch
	ch <- s.stateLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			close(ch)
		})
	}
}

// Clear drops the cached language list and content and resets the snapshot
func (s *Session) Clear() {
	s.memo.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = content.Snapshot{}
	s.populated = false
	s.switchSeq++
	s.publishLocked()
}

func (s *Session) beginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
	s.publishLocked()
}

func (s *Session) endLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	s.publishLocked()
}

func (s *Session) stateLocked() State {
	return State{Snapshot: s.snapshot, Loading: s.loading > 0}
}

// publishLocked sends the current state to every subscriber, replacing any state the
// subscriber has not read yet
func (s *Session) publishLocked() {
	st := s.stateLocked()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

// IsSuperseded reports whether err came from a discarded language switch
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
