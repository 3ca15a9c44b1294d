package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var loopbackPattern = regexp.MustCompile(`https?://(127\.0\.0\.1|localhost|0\.0\.0\.0|\[::1\])(:\d+)?`)

// IsLoopbackURL reports whether the URL points at a loopback or local host,
// with or without a port. Such URLs are dev traffic and must never reach the
// event log.
func IsLoopbackURL(raw string) bool {
	return loopbackPattern.MatchString(raw)
}

// NormalizeURL strips the query string and any trailing slash from an
// absolute URL. Inputs that fail to parse as absolute URLs only get the
// trailing-slash strip.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}
	u.RawQuery = ""
	return strings.TrimRight(u.String(), "/")
}
