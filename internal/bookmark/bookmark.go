package bookmark

import (
	"net/url"
	"regexp"
	"strings"
)

// Record represents a single bookmark extracted from a browser export.
//
// The validation fields (Valid, StatusCode) are nil until a record has been
// checked by the link validator. Everything else is populated at extraction
// time; Domain and Label may be empty for malformed exports and consumers
// must tolerate that.
type Record struct {
	// URL is the bookmark target exactly as found in the export
	URL string `json:"url"`

	// Label is the display title used for comparison and output
	// (the formatted "domain | unique part" form once FormatLabels has run)
	Label string `json:"label"`

	// Domain is the lower-cased host component with any www. prefix removed
	Domain string `json:"domain"`

	// OriginalTitle is the anchor text exactly as found in the export
	OriginalTitle string `json:"original_title,omitempty"`

	// CleanTitle is OriginalTitle after suffix/junk stripping
	CleanTitle string `json:"clean_title,omitempty"`

	// Folder is the slash-joined folder path the bookmark was found under
	Folder string `json:"folder,omitempty"`

	// Icon and AddDate carry through the export attributes verbatim
	Icon    string `json:"icon,omitempty"`
	AddDate string `json:"add_date,omitempty"`

	// Valid is set by the link validator: true if the URL answered with
	// a 2xx or 3xx, false on error statuses and transport failures
	Valid *bool `json:"is_valid,omitempty"`

	// StatusCode is the HTTP status of the last successful response
	StatusCode *int `json:"status_code,omitempty"`
}

// ExtractDomain returns the host component of rawURL in a consistent form:
// lower-cased with any "www." prefix removed. Unparseable or host-less URLs
// yield "unknown.com" so downstream grouping always has a non-empty key.
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "unknown.com"
	}
	domain := strings.ToLower(parsed.Hostname())
	domain = strings.TrimPrefix(domain, "www.")
	if domain == "" {
		return "unknown.com"
	}
	return domain
}

// separatorPattern truncates a title at the first pipe, dash, or colon
// separator; browser titles commonly carry a "| Site Name" style suffix.
var separatorPattern = regexp.MustCompile(`\s*[|\-:]\s.*$`)

// trailingPunct strips trailing sentence punctuation left over after
// separator removal.
var trailingPunct = regexp.MustCompile(`[.,;:]+$`)

// junkPrefixes are boilerplate openers that carry no information about the
// bookmarked page.
var junkPrefixes = []string{
	"Welcome to",
	"Official Site",
	"Official Website",
	"Home Page",
	"Homepage",
	"Main Page",
	"Index",
}

const maxTitleLen = 40

// CleanTitle normalizes a raw page title for display: separator suffixes,
// boilerplate prefixes, and trailing punctuation are removed and the result
// is capped at 40 runes. Titles that clean down to nothing come back as
// "Untitled".
func CleanTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}

	cleaned := strings.TrimSpace(title)
	cleaned = strings.TrimSuffix(cleaned, "...")
	cleaned = separatorPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	// Over-aggressive separator stripping falls back to the trimmed original.
	if len(cleaned) < 3 && len(title) > len(cleaned) {
		cleaned = strings.TrimSpace(title)
	}

	for _, junk := range junkPrefixes {
		if len(cleaned) >= len(junk) && strings.EqualFold(cleaned[:len(junk)], junk) {
			cleaned = strings.TrimSpace(cleaned[len(junk):])
			break
		}
	}

	cleaned = trailingPunct.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > maxTitleLen {
		cleaned = string(runes[:maxTitleLen-3]) + "..."
	}

	if cleaned == "" {
		return "Untitled"
	}
	return cleaned
}
