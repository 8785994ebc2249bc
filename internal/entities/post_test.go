package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasBareFilename(t *testing.T) {
	assert.True(t, Post{Filename: "a-post"}.HasBareFilename())
	assert.True(t, Post{}.HasBareFilename())
	assert.False(t, Post{Filename: "dir/a-post"}.HasBareFilename())
	assert.False(t, Post{Filename: "../a-post"}.HasBareFilename())
}
