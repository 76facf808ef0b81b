package site

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/cache"
	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/locale"
	"github.com/kiuyha/portfolio-content/internal/logger"
)

// Client is the client-mode entry point: a session snapshot driven by a localization
// selector
type Client struct {
	session  *cache.Session
	selector *locale.Selector
	logger   *zap.SugaredLogger
}

// ClientOption configures a Client
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger       *zap.SugaredLogger
	cacheOptions []cache.Option
}

// WithClientLogger sets the client logger
func WithClientLogger(l *zap.SugaredLogger) ClientOption {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCacheOptions passes options to the session cache
func WithCacheOptions(opts ...cache.Option) ClientOption {
	return func(o *clientOptions) {
		o.cacheOptions = append(o.cacheOptions, opts...)
	}
}

// NewClient creates a client over loader. Nothing is fetched until Start.
func NewClient(loader cache.Loader, opts ...ClientOption) *Client {
	o := clientOptions{logger: logger.Get()}
	for _, opt := range opts {
		opt(&o)
	}
	session := cache.NewSession(loader, append([]cache.Option{cache.WithLogger(o.logger)}, o.cacheOptions...)...)
	return &Client{
		session:  session,
		selector: locale.NewSelector(session, locale.WithLogger(o.logger)),
		logger:   o.logger,
	}
}

// Start populates the snapshot and resolves the visitor's language from acceptLanguage.
// Only a failure to resolve the language list is returned; a translation failure leaves
// the client resolved with empty translations.
func (c *Client) Start(ctx context.Context, acceptLanguage string) error {
	if err := c.session.Populate(ctx); err != nil {
		return err
	}
	if c.selector.State() != locale.Unresolved {
		return nil
	}

	lang, err := c.selector.Resolve(ctx, acceptLanguage, c.session.Snapshot().SupportedLangs)
	switch {
	case err == nil, errors.Is(err, cache.ErrSuperseded):
	case errors.Is(err, locale.ErrNoLanguages):
		return err
	default:
		c.logger.Warnw("Initial translations unavailable", "language", lang.Code, "error", err)
	}
	return nil
}

// Read returns the current snapshot
func (c *Client) Read() content.Snapshot {
	return c.session.Snapshot()
}

// IsLoading reports whether a load or language switch is in progress
func (c *Client) IsLoading() bool {
	return c.session.IsLoading()
}

// Subscribe streams state changes until the returned cancel function is called
func (c *Client) Subscribe() (<-chan cache.State, func()) {
	return c.session.Subscribe()
}

// State returns the localization state
func (c *Client) State() locale.State {
	return c.selector.State()
}

// SwitchLanguage loads the translations for code. A newer switch started before this
// one finishes wins, and this call returns cache.ErrSuperseded.
func (c *Client) SwitchLanguage(ctx context.Context, code string) error {
	return c.selector.Switch(ctx, code)
}
