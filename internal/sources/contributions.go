package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kiuyha/portfolio-content/internal/content"
	"github.com/kiuyha/portfolio-content/internal/httpclient"
	"github.com/kiuyha/portfolio-content/internal/schema"
)

// ContributionsAdapter reads the last year of contributions from
// GET {endpoint}/{username}?y=last
type ContributionsAdapter struct {
	adapter
	registry *schema.Registry
	endpoint string
	username string
}

var _ ContributionSource = (*ContributionsAdapter)(nil)

// NewContributionsAdapter creates a contributions adapter for the account behind profileURL
func NewContributionsAdapter(
	client httpclient.Client,
	registry *schema.Registry,
	endpoint, profileURL string,
	opts ...Option,
) *ContributionsAdapter {
	return &ContributionsAdapter{
		adapter:  newAdapter(SourceContributions, client, opts),
		registry: registry,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		username: ProfileHandle(profileURL),
	}
}

// Username returns the account the adapter queries
func (h *ContributionsAdapter) Username() string {
	return h.username
}

// FetchContributions returns the contribution statistics
func (h *ContributionsAdapter) FetchContributions(ctx context.Context) content.Contributions {
	u := fmt.Sprintf("%s/%s?y=last", h.endpoint, url.PathEscape(h.username))
	return fetch(ctx, &h.adapter, h.registry.Contributions, u)
}
