// Package netscape reads and writes the NETSCAPE-Bookmark-file-1 HTML
// format that every major browser uses for bookmark import/export.
package netscape

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// Parse extracts bookmark records from a bookmark-file HTML document.
// Anchors missing either an href or any text are skipped; everything else
// is tolerated, since real exports are wildly malformed HTML. Each record
// gets its domain, clean title, and slash-joined folder path filled in.
func Parse(r io.Reader) ([]bookmark.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark HTML: %w", err)
	}

	var records []bookmark.Record
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		url := strings.TrimSpace(sel.AttrOr("href", ""))
		title := strings.TrimSpace(sel.Text())
		if url == "" || title == "" {
			return
		}

		records = append(records, bookmark.Record{
			URL:           url,
			OriginalTitle: title,
			CleanTitle:    bookmark.CleanTitle(title),
			Domain:        bookmark.ExtractDomain(url),
			Icon:          sel.AttrOr("icon", ""),
			AddDate:       sel.AttrOr("add_date", ""),
			Folder:        folderPath(sel),
		})
	})

	return records, nil
}

// folderPath walks up the anchor's enclosing definition lists collecting
// the <h3> folder headers, outermost first.
func folderPath(sel *goquery.Selection) string {
	var parts []string
	sel.ParentsFiltered("dl").Each(func(_ int, dl *goquery.Selection) {
		name := folderName(dl)
		if name != "" {
			// Parents come innermost-first; prepend to get outermost-first.
			parts = append([]string{name}, parts...)
		}
	})
	return strings.Join(parts, "/")
}

// folderName finds the <h3> labeling a <dl>: either its immediately
// preceding sibling or the last <h3> before it inside the parent <dt>.
func folderName(dl *goquery.Selection) string {
	prev := dl.Prev()
	if goquery.NodeName(prev) == "h3" {
		return strings.TrimSpace(prev.Text())
	}
	parent := dl.Parent()
	if goquery.NodeName(parent) == "dt" {
		if h3 := parent.ChildrenFiltered("h3").First(); h3.Length() > 0 {
			return strings.TrimSpace(h3.Text())
		}
	}
	return ""
}

// cleanedComment marks rewritten output so a regenerated file is
// distinguishable from a raw browser export.
const cleanedComment = " Bookmark labels cleaned by linktidy "

// RewriteLabels returns the document with each known anchor's text replaced
// by the matching record's label, preserving the original structure. The
// lookup is keyed by the raw href so untouched bookmarks pass through
// unchanged.
func RewriteLabels(r io.Reader, records []bookmark.Record) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing bookmark HTML: %w", err)
	}

	labels := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Label != "" {
			labels[rec.URL] = rec.Label
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		url := strings.TrimSpace(sel.AttrOr("href", ""))
		if label, ok := labels[url]; ok {
			sel.SetText(label)
		}
	})

	stampCleaned(doc)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering bookmark HTML: %w", err)
	}
	return out, nil
}

// RewriteDocument visits the document's bookmarks in the same order Parse
// returns them and asks decide what to do with each: the returned label
// replaces the anchor text, and a false keep removes the bookmark along
// with its enclosing <dt>. Folder structure, icons, and dates survive
// untouched.
func RewriteDocument(r io.Reader, decide func(i int) (label string, keep bool)) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing bookmark HTML: %w", err)
	}

	i := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		url := strings.TrimSpace(sel.AttrOr("href", ""))
		title := strings.TrimSpace(sel.Text())
		if url == "" || title == "" {
			// Parse skips these, so they carry no index.
			return
		}
		label, keep := decide(i)
		i++

		if !keep {
			if parent := sel.Parent(); goquery.NodeName(parent) == "dt" {
				parent.Remove()
			} else {
				sel.Remove()
			}
			return
		}
		if label != "" {
			sel.SetText(label)
		}
	})

	stampCleaned(doc)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering bookmark HTML: %w", err)
	}
	return out, nil
}

// stampCleaned marks the document right after the first <meta> when there
// is one.
func stampCleaned(doc *goquery.Document) {
	meta := doc.Find("meta").First()
	if meta.Length() == 0 {
		return
	}
	node := meta.Nodes[0]
	if node.Parent == nil {
		return
	}
	comment := &html.Node{Type: html.CommentNode, Data: cleanedComment}
	node.Parent.InsertBefore(comment, node.NextSibling)
}

// Render produces a fresh Edge-importable bookmark file from a folder
// structure. Folder paths are slash-separated; records under the empty
// path land at the top level. Folders render in sorted path order so the
// output is deterministic.
func Render(folders map[string][]bookmark.Record, title string) string {
	if title == "" {
		title = "Bookmarks"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<!-- This is an automatically generated file.\n")
	b.WriteString("     It will be read and overwritten.\n")
	b.WriteString("     DO NOT EDIT! -->\n")
	b.WriteString(`<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">` + "\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")

	paths := make([]string, 0, len(folders))
	for path := range folders {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	// Top-level records first, then each folder as its own <H3> section.
	// Nested paths render as nested lists.
	for _, path := range paths {
		if path != "" {
			continue
		}
		writeRecords(&b, folders[path], 1)
	}

	var open []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		parts := strings.Split(path, "/")

		// Close folders that are not shared with this path.
		common := 0
		for common < len(open) && common < len(parts) && open[common] == parts[common] {
			common++
		}
		for i := len(open); i > common; i-- {
			writeIndent(&b, i)
			b.WriteString("</DL><p>\n")
		}
		open = open[:common]

		// Open the remaining folders of this path.
		for i := common; i < len(parts); i++ {
			writeIndent(&b, i+1)
			fmt.Fprintf(&b, "<DT><H3>%s</H3>\n", html.EscapeString(parts[i]))
			writeIndent(&b, i+1)
			b.WriteString("<DL><p>\n")
			open = append(open, parts[i])
		}

		writeRecords(&b, folders[path], len(open)+1)
	}
	for i := len(open); i > 0; i-- {
		writeIndent(&b, i)
		b.WriteString("</DL><p>\n")
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeRecords(b *strings.Builder, records []bookmark.Record, depth int) {
	for _, rec := range records {
		writeIndent(b, depth)
		b.WriteString("<DT><A HREF=\"")
		b.WriteString(html.EscapeString(rec.URL))
		b.WriteString("\"")
		if rec.AddDate != "" {
			fmt.Fprintf(b, " ADD_DATE=\"%s\"", html.EscapeString(rec.AddDate))
		}
		if rec.Icon != "" {
			fmt.Fprintf(b, " ICON=\"%s\"", html.EscapeString(rec.Icon))
		}
		label := rec.Label
		if label == "" {
			label = rec.CleanTitle
		}
		fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(label))
	}
}

func writeIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
}
