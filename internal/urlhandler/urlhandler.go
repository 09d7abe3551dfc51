package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL normalizes a URL string, ensuring it has a scheme and a hostname.
func NormalizeURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	// Add scheme if missing
	if !strings.Contains(trimmedURL, "://") && !strings.HasPrefix(trimmedURL, "//") {
		trimmedURL = "https://" + trimmedURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}

	if parsedURL.Host == "" {
		return "", errors.New("URL lacks a valid hostname")
	}

	return parsedURL.String(), nil
}

// ResolveHref applies the href resolution rule used during link discovery:
// values beginning with "/" are resolved against the page URL, everything
// else is returned untouched. Protocol-relative hrefs ("//host/path")
// adopt the base scheme.
func ResolveHref(href string, base *url.URL) string {
	if base == nil || !strings.HasPrefix(href, "/") {
		return href
	}

	resolved, err := base.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}

// LastPathSegment returns the final path segment of a URL string,
// ignoring any trailing slashes. "https://a.com/x/y/" yields "y".
// The input does not need to be a parseable URL.
func LastPathSegment(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if trimmed == "" {
		return ""
	}

	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		return trimmed[idx+1:]
	}
	return trimmed
}
