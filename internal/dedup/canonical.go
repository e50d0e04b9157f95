package dedup

import "strings"

// trackingParams are query-string keys considered non-semantic for duplicate
// detection: analytics campaign tags and referral markers that vary between
// visits to the same page.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"_ga":          true,
	"ref":          true,
	"source":       true,
	"campaign":     true,
}

// CanonicalURL normalizes a URL string into a comparison key. Two URLs are
// duplicates under the exact-url strategy iff their canonical forms are
// identical strings.
//
// Normalization steps, in order:
//  1. trim whitespace and lower-case the whole string
//  2. strip exactly one trailing "/"
//  3. strip a "www." immediately following the scheme separator
//  4. strip default ports (:80 for http, :443 for https)
//  5. drop tracking query parameters, preserving the relative order of the
//     survivors; a query left empty loses its "?" too
//
// The function is total: it operates purely on the string and never fails,
// so a malformed URL simply comes back lower-cased and trimmed with
// whichever steps still applied.
func CanonicalURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}

	u = strings.TrimSuffix(u, "/")

	// Remove www. only when it directly follows the scheme; a "www"
	// elsewhere (say, in a path segment) is meaningful.
	if idx := strings.Index(u, "://"); idx >= 0 {
		rest := u[idx+3:]
		if strings.HasPrefix(rest, "www.") {
			u = u[:idx+3] + rest[4:]
		}
	}

	u = stripDefaultPort(u)
	u = stripTrackingParams(u)

	return u
}

// stripDefaultPort removes :80 from http URLs and :443 from https URLs.
// Any other port is preserved verbatim.
func stripDefaultPort(u string) string {
	var defaultPort string
	switch {
	case strings.HasPrefix(u, "http://"):
		defaultPort = ":80"
	case strings.HasPrefix(u, "https://"):
		defaultPort = ":443"
	default:
		return u
	}

	// The port sits at the end of the authority: before the first "/" or
	// "?" after the scheme, or at the end of the string.
	start := strings.Index(u, "://") + 3
	hostEnd := len(u)
	for i := start; i < len(u); i++ {
		if u[i] == '/' || u[i] == '?' {
			hostEnd = i
			break
		}
	}

	host := u[start:hostEnd]
	if strings.HasSuffix(host, defaultPort) {
		return u[:hostEnd-len(defaultPort)] + u[hostEnd:]
	}
	return u
}

// stripTrackingParams drops query segments whose key is a tracking
// parameter. Surviving segments keep their original relative order; if none
// survive the "?" is dropped entirely.
func stripTrackingParams(u string) string {
	qIdx := strings.Index(u, "?")
	if qIdx < 0 {
		return u
	}

	base, query := u[:qIdx], u[qIdx+1:]
	segments := strings.Split(query, "&")
	kept := segments[:0]
	for _, seg := range segments {
		key := seg
		if eq := strings.Index(seg, "="); eq >= 0 {
			key = seg[:eq]
		}
		if !trackingParams[key] {
			kept = append(kept, seg)
		}
	}

	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}
