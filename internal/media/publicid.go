package media

import (
	"regexp"
	"strings"
)

// URL shapes the external store hands out: versioned path, path with
// transformation segments, and bare upload. Tried in order; first match wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/v\d+/(.+)\.\w+$`),
	regexp.MustCompile(`/image/upload/.*/(.+)\.\w+$`),
	regexp.MustCompile(`cloudinary\.com/.*/upload/(.+)\.\w+$`),
}

var versionPrefix = regexp.MustCompile(`^v\d+/`)

// PublicIDFromURL derives the opaque identifier from a hosted image URL.
// It returns "" when the URL matches no known shape; callers treat that as
// "nothing to delete", not as an error.
func PublicIDFromURL(url string) string {
	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return versionPrefix.ReplaceAllString(m[1], "")
		}
	}
	return ""
}

// IsHostedURL reports whether the URL points at the external image store.
func IsHostedURL(url string) bool {
	return strings.Contains(url, "cloudinary")
}
