package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/httpclient"
	"github.com/kiuyha/portfolio-content/internal/schema"
)

// ArticlesAdapter reads an RSS feed through a feed-to-JSON endpoint:
// GET {endpoint}?rss_url={feed URL}
type ArticlesAdapter struct {
	adapter
	registry *schema.Registry
	endpoint string
	feedURL  string
}

var _ ArticleSource = (*ArticlesAdapter)(nil)

// NewArticlesAdapter creates an articles adapter. feedTemplate is a fmt template that
// receives the username extracted from profileURL.
func NewArticlesAdapter(
	client httpclient.Client,
	registry *schema.Registry,
	endpoint, feedTemplate, profileURL string,
	opts ...Option,
) *ArticlesAdapter {
	return &ArticlesAdapter{
		adapter:  newAdapter(SourceArticles, client, opts),
		registry: registry,
		endpoint: endpoint,
		feedURL:  fmt.Sprintf(feedTemplate, AtHandle(profileURL)),
	}
}

// FeedURL returns the RSS feed the adapter converts
func (h *ArticlesAdapter) FeedURL() string {
	return h.feedURL
}

// FetchArticles returns the normalized article feed
func (h *ArticlesAdapter) FetchArticles(ctx context.Context) content.Articles {
	u := h.endpoint + "?rss_url=" + url.QueryEscape(h.feedURL)
	return fetch(ctx, &h.adapter, h.registry.Articles, u)
}
