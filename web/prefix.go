package web

import (
	"net/url"
	"strings"
)

// systemPrefixes are paths that never get a language prefix.
var systemPrefixes = []string{"/admin", "/api", "/static", "/assets", "/uploads"}

func isSystemPath(path string) bool {
	for _, p := range systemPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// PrefixURL prepends /{lang}/ to an internal URL. External URLs, system
// paths, non-path references (fragments, mailto) and already-prefixed URLs
// come back unchanged, so the function is idempotent.
func PrefixURL(rawURL, lang string) string {
	if rawURL == "" || lang == "" {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	// Absolute URLs to other hosts and schemes like mailto: stay untouched.
	// Same only-a-fragment or query-only references.
	if u.Scheme != "" || u.Host != "" || u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return rawURL
	}

	if isSystemPath(u.Path) {
		return rawURL
	}
	if u.Path == "/"+lang || strings.HasPrefix(u.Path, "/"+lang+"/") {
		return rawURL
	}

	if u.Path == "/" {
		u.Path = "/" + lang + "/"
	} else {
		u.Path = "/" + lang + u.Path
	}
	return u.String()
}
