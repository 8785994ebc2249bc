package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDotclear(t *testing.T) {
	cmd := NewDotclearCommand()
	err := cmd.ParseFlags([]string{
		"-input", "backup.txt",
		"-output", "out",
		"-markup", "markdown",
		"-dir-cat",
	})
	require.NoError(t, err)

	assert.Equal(t, "backup.txt", cmd.Settings.Input)
	assert.Equal(t, "out", cmd.Settings.Output)
	assert.Equal(t, "markdown", cmd.Settings.Markup)
	assert.True(t, cmd.Settings.DirCat)
	assert.False(t, cmd.Settings.DirPage)
}

func TestParseFlagsDefaults(t *testing.T) {
	cmd := NewFeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-input", "https://example.com/feed.xml"}))

	assert.Equal(t, "content", cmd.Settings.Output)
	assert.Equal(t, "rst", cmd.Settings.Markup)
}

func TestParseFlagsMissingInput(t *testing.T) {
	cmd := NewWordPressCommand()
	assert.Error(t, cmd.ParseFlags(nil))
}

func TestParseFlagsBadMarkup(t *testing.T) {
	cmd := NewMediumCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-input", "export", "-markup", "docx"}))
}

func TestParseFlagsTumblr(t *testing.T) {
	cmd := NewTumblrCommand()
	err := cmd.ParseFlags([]string{"-blogname", "testblog", "-api-key", "secret"})
	require.NoError(t, err)

	assert.Equal(t, "testblog", cmd.Settings.Input)
	assert.Equal(t, "secret", cmd.Settings.APIKey)
	assert.NotEmpty(t, cmd.Settings.APIBase)
}

func TestParseFlagsTumblrRequiresKey(t *testing.T) {
	t.Setenv("BLOG2PELICAN_TUMBLR_API_KEY", "")
	cmd := NewTumblrCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-blogname", "testblog"}))
}
