package doxygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_BriefParamReturn(t *testing.T) {
	raw := "/** \\brief hi\n@param x the x\n@return ok */"
	brief, tags := Parse(raw, "")
	assert.Equal(t, "hi", brief)
	assert.Equal(t, "the x", tags["x"])
	assert.Equal(t, "ok", tags[ReturnKey])
}

func TestParse_ShortCommentIsEmpty(t *testing.T) {
	brief, tags := Parse("/**/", "")
	assert.Equal(t, "", brief)
	assert.Empty(t, tags)
}

func TestParse_DuplicateParamLastWins(t *testing.T) {
	raw := "/** @param x first\n@param x second */"
	_, tags := Parse(raw, "")
	assert.Equal(t, "second", tags["x"])
}

func TestParse_MissingParamNameIgnored(t *testing.T) {
	raw := "/** @param */"
	_, tags := Parse(raw, "")
	assert.Empty(t, tags)
}

func TestParse_LineCommentPassesThrough(t *testing.T) {
	brief, tags := Parse("// just a note", "")
	assert.Equal(t, "just a note", brief)
	assert.Empty(t, tags)
}
