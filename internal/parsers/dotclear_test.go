package parsers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liberforce/blog2pelican/internal/entities"
)

func dotclearExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func dotclearRecord(overrides map[int]string) string {
	fields := make([]string, 28)
	fields[0] = "1"
	fields[1] = "default"
	fields[2] = "TEST-GANDI"
	fields[3] = "4"
	fields[4] = "2008-07-07 11:07:42"
	fields[5] = "Europe/Paris"
	fields[6] = "2008-07-07 08:08:00"
	fields[9] = "post"
	fields[10] = "xhtml"
	fields[13] = "En direct d'Istanbul"
	fields[17] = "<p>first paragraph</p>"
	fields[20] = `a:1:{s:3:\"tag\";a:2:{i:0;s:6:\"GUADEC\";i:1;s:5:\"GNOME\";}}`
	for i, v := range overrides {
		fields[i] = v
	}
	return `"` + strings.Join(fields, `","`) + `"`
}

const dotclearHeader = `///DOTCLEAR|2.1.6|single|1

[category cat_id,blog_id,cat_title,cat_url,cat_desc]
"4","default","Life","life",""

[post post_id,blog_id,user_id,cat_id,post_dt]
`

func TestDotclearParseSimple(t *testing.T) {
	path := dotclearExport(t, dotclearHeader+dotclearRecord(nil)+"\n\n")

	posts, err := NewDotclear(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	var parsed []entities.Post
	for post, err := range posts {
		require.NoError(t, err)
		parsed = append(parsed, post)
	}
	require.Len(t, parsed, 1)

	expected := entities.Post{
		Title:      "En direct d'Istanbul",
		Content:    "<p>first paragraph</p>",
		Filename:   "en-direct-distanbul",
		Date:       "2008-07-07 11:07",
		Author:     "TEST-GANDI",
		Categories: []string{"Life"},
		Tags:       []string{"GUADEC", "GNOME"},
		Status:     entities.StatusPublished,
		Kind:       entities.KindArticle,
		Markup:     entities.MarkupHTML,
	}
	assert.Equal(t, expected, parsed[0])
}

func TestDotclearMarkdownPost(t *testing.T) {
	record := dotclearRecord(map[int]string{
		10: "markdown",
		14: "intro. ",
		16: "body text",
		17: "<p>ignored</p>",
	})
	path := dotclearExport(t, dotclearHeader+record+"\n\n")

	posts, err := NewDotclear(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	for post, err := range posts {
		require.NoError(t, err)
		assert.Equal(t, entities.MarkupMarkdown, post.Markup)
		assert.Equal(t, "intro. body text", post.Content)
	}
}

func TestDotclearNoMetadata(t *testing.T) {
	record := dotclearRecord(map[int]string{20: ""})
	path := dotclearExport(t, dotclearHeader+record+"\n\n")

	posts, err := NewDotclear(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	for post, err := range posts {
		require.NoError(t, err)
		assert.Equal(t, []string{"Unclassified"}, post.Tags)
	}
}

func TestDotclearSparseTagKeys(t *testing.T) {
	record := dotclearRecord(map[int]string{
		20: `a:1:{s:3:\"tag\";a:2:{i:3;s:5:\"GNOME\";i:1;s:6:\"GUADEC\";}}`,
	})
	path := dotclearExport(t, dotclearHeader+record+"\n\n")

	posts, err := NewDotclear(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	for post, err := range posts {
		require.NoError(t, err)
		assert.Equal(t, []string{"GUADEC", "GNOME"}, post.Tags)
	}
}

func TestDotclearSkipsBrokenRecords(t *testing.T) {
	path := dotclearExport(t, dotclearHeader+`"way","too","short"`+"\n"+dotclearRecord(nil)+"\n\n")

	posts, err := NewDotclear(nil).Parse(context.Background(), path)
	require.NoError(t, err)

	var count int
	for post, err := range posts {
		require.NoError(t, err)
		assert.Equal(t, "En direct d'Istanbul", post.Title)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestDotclearMissingFile(t *testing.T) {
	_, err := NewDotclear(nil).Parse(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
