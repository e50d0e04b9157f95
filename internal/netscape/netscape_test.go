package netscape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linktidy/linktidy/internal/bookmark"
)

const sampleExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1700000000">Example Site | Homepage</A>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://github.com/golang/go" ICON="data:image/png;base64,abc">golang/go: The Go programming language</A>
        <DT><H3>Docs</H3>
        <DL><p>
            <DT><A HREF="https://pkg.go.dev">pkg.go.dev</A>
        </DL><p>
    </DL><p>
</DL><p>
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, records, 3)

	byURL := make(map[string]bookmark.Record, len(records))
	for _, rec := range records {
		byURL[rec.URL] = rec
	}

	example, ok := byURL["https://example.com"]
	require.True(t, ok)
	assert.Equal(t, "Example Site | Homepage", example.OriginalTitle)
	assert.Equal(t, "Example Site", example.CleanTitle)
	assert.Equal(t, "example.com", example.Domain)
	assert.Equal(t, "1700000000", example.AddDate)
	assert.Equal(t, "", example.Folder)

	gh, ok := byURL["https://github.com/golang/go"]
	require.True(t, ok)
	assert.Equal(t, "github.com", gh.Domain)
	assert.Equal(t, "Dev", gh.Folder)
	assert.NotEmpty(t, gh.Icon)

	docs, ok := byURL["https://pkg.go.dev"]
	require.True(t, ok)
	assert.Equal(t, "Dev/Docs", docs.Folder)
}

func TestParseSkipsMalformedAnchors(t *testing.T) {
	input := `<DL><p>
        <DT><A HREF="">no url</A>
        <DT><A HREF="https://example.com">   </A>
        <DT><A HREF="https://kept.example.com">Kept</A>
    </DL><p>`

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://kept.example.com", records[0].URL)
}

func TestParseEmptyInput(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRewriteLabels(t *testing.T) {
	records := []bookmark.Record{
		{URL: "https://example.com", Label: "example.com | Homepage"},
		{URL: "https://github.com/golang/go", Label: "github.com | Golang Go"},
	}

	out, err := RewriteLabels(strings.NewReader(sampleExport), records)
	require.NoError(t, err)

	assert.Contains(t, out, "example.com | Homepage")
	assert.Contains(t, out, "github.com | Golang Go")
	assert.NotContains(t, out, "Example Site | Homepage")
	// The untouched bookmark keeps its original text.
	assert.Contains(t, out, "pkg.go.dev")
	// The output is stamped so it can be told apart from a raw export.
	assert.Contains(t, out, "cleaned by linktidy")
}

func TestRewriteLabelsSkipsEmptyLabels(t *testing.T) {
	records := []bookmark.Record{{URL: "https://example.com", Label: ""}}

	out, err := RewriteLabels(strings.NewReader(sampleExport), records)
	require.NoError(t, err)
	assert.Contains(t, out, "Example Site | Homepage")
}

func TestRender(t *testing.T) {
	folders := map[string][]bookmark.Record{
		"": {{URL: "https://top.example.com", Label: "Top Level"}},
		"Dev": {{
			URL:     "https://github.com/golang/go",
			Label:   "github.com | Golang Go",
			AddDate: "1700000000",
		}},
		"Dev/Docs": {{URL: "https://pkg.go.dev", CleanTitle: "Go Packages"}},
	}

	out := Render(folders, "My Bookmarks")

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Contains(t, out, "<TITLE>My Bookmarks</TITLE>")
	assert.Contains(t, out, `<DT><H3>Dev</H3>`)
	assert.Contains(t, out, `<DT><H3>Docs</H3>`)
	assert.Contains(t, out, `<A HREF="https://top.example.com">Top Level</A>`)
	assert.Contains(t, out, `ADD_DATE="1700000000"`)
	// A record without a label falls back to its clean title.
	assert.Contains(t, out, ">Go Packages</A>")

	// The rendered file round-trips through the parser.
	records, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 3)
	byURL := make(map[string]string, len(records))
	for _, rec := range records {
		byURL[rec.URL] = rec.Folder
	}
	assert.Equal(t, "", byURL["https://top.example.com"])
	assert.Equal(t, "Dev", byURL["https://github.com/golang/go"])
	assert.Equal(t, "Dev/Docs", byURL["https://pkg.go.dev"])
}

func TestRenderEscapesHTML(t *testing.T) {
	folders := map[string][]bookmark.Record{
		"": {{URL: "https://example.com/?a=1&b=2", Label: `A <b>bold</b> & "quoted" label`}},
	}

	out := Render(folders, "")
	assert.Contains(t, out, "a=1&amp;b=2")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, out, "<b>bold</b>")
}