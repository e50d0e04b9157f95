package bookmark

import (
	"fmt"
	"net/url"
	"strings"
)

// FormatLabels fills in the Label field of every record with a
// "domain | unique part" form. Domains that appear only once use the clean
// title as the unique part; domains with several bookmarks get a
// distinguishing label derived from the URL path, the URL fragment, the
// clean title, or a positional fallback, in that order. Labels are kept
// unique within a domain by appending a counter.
func FormatLabels(records []Record) {
	domainCounts := make(map[string]int)
	for _, rec := range records {
		domainCounts[rec.Domain]++
	}

	domainUsage := make(map[string]map[string]bool)

	for i := range records {
		rec := &records[i]
		if domainCounts[rec.Domain] <= 1 {
			rec.Label = fmt.Sprintf("%s | %s", rec.Domain, rec.CleanTitle)
			continue
		}

		used := domainUsage[rec.Domain]
		if used == nil {
			used = make(map[string]bool)
			domainUsage[rec.Domain] = used
		}

		unique := uniquePartFromURL(rec.URL)
		if unique == "" || isMeaninglessPart(unique) {
			unique = uniquePartFromTitles(rec, len(used))
		}

		// Disambiguate repeats within the domain.
		base := unique
		for counter := 2; used[unique]; counter++ {
			unique = fmt.Sprintf("%s %d", base, counter)
		}
		used[unique] = true

		rec.Label = fmt.Sprintf("%s | %s", rec.Domain, unique)
	}
}

// homepagePaths are single path segments that identify a site root rather
// than a distinct page.
var homepagePaths = map[string]bool{
	"en": true, "us": true, "home": true, "index": true,
}

var meaninglessParts = map[string]bool{
	"en": true, "us": true, "index": true, "home": true, "main": true, "page": true,
}

// uniquePartFromURL derives a human-readable discriminator from the URL's
// path (last meaningful segment, title-cased) or fragment. Returns "" when
// neither yields anything useful.
func uniquePartFromURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if p == "" || p == "index.html" || p == "index.php" {
			continue
		}
		parts = append(parts, p)
	}

	if len(parts) == 0 || (len(parts) == 1 && homepagePaths[strings.ToLower(parts[0])]) {
		return "Homepage"
	}

	segment := parts[len(parts)-1]
	unique := titleCaseSegment(segment)
	if isMeaninglessPart(unique) {
		unique = "Homepage"
	}

	if unique == "" && parsed.Fragment != "" {
		fragment := titleCaseSegment(parsed.Fragment)
		if !isMeaninglessPart(fragment) {
			unique = fragment
		}
	}

	return unique
}

// uniquePartFromTitles falls back to the record's titles when the URL gives
// no usable discriminator, ending with a positional "Page N" label.
func uniquePartFromTitles(rec *Record, usedCount int) string {
	domainStem := strings.SplitN(rec.Domain, ".", 2)[0]
	clean := rec.CleanTitle
	lower := strings.ToLower(clean)
	if clean != "" && lower != domainStem && !isMeaninglessPart(clean) && lower != "homepage" {
		return clean
	}

	stopwords := map[string]bool{
		"en": true, "us": true, "home": true, "the": true, "and": true,
		"or": true, "of": true, "in": true, "to": true, "for": true,
	}
	var meaningful []string
	for _, w := range strings.Fields(rec.OriginalTitle) {
		if !stopwords[strings.ToLower(w)] {
			meaningful = append(meaningful, w)
		}
	}
	if len(meaningful) > 1 {
		if len(meaningful) > 3 {
			meaningful = meaningful[:3]
		}
		return strings.Join(meaningful, " ")
	}

	return fmt.Sprintf("Page %d", usedCount+1)
}

func isMeaninglessPart(part string) bool {
	return meaninglessParts[strings.ToLower(part)]
}

// titleCaseSegment turns a URL path segment like "getting-started_guide"
// into "Getting Started Guide".
func titleCaseSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")
	words := strings.Fields(segment)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
