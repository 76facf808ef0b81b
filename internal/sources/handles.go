package sources

import (
	"net/url"
	"strings"
)

// DefaultHandle is used when no username can be extracted from a profile link
const DefaultHandle = "kiuyha"

// ProfileHandle returns the last non-empty path segment of a profile URL,
// e.g. "octocat" for https://github.com/octocat/
func ProfileHandle(profileURL string) string {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil || u.Host == "" {
		return DefaultHandle
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := strings.TrimPrefix(segments[len(segments)-1], "@"); last != "" {
		return last
	}
	return DefaultHandle
}

// AtHandle returns the username following "@" in a profile URL,
// e.g. "someone" for https://medium.com/@someone/latest
func AtHandle(profileURL string) string {
	_, after, ok := strings.Cut(profileURL, "@")
	if !ok {
		return DefaultHandle
	}
	handle, _, _ := strings.Cut(after, "/")
	handle, _, _ = strings.Cut(handle, "?")
	if handle = strings.TrimSpace(handle); handle != "" {
		return handle
	}
	return DefaultHandle
}
