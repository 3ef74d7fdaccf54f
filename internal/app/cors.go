package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser Origin header matches one of the
// configured patterns. Matching runs against the host[:port] portion only;
// a pattern is an exact host, a "*.studio.example" subdomain wildcard, or a
// "localhost:*" any-port wildcard.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if matchesOrigin(pattern, host) {
			return true
		}
	}
	return false
}

func matchesOrigin(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
