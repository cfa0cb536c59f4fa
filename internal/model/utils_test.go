package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoID(t *testing.T) {
	assert.Equal(t, "acme__foo", RepoID("acme/foo"))
	assert.Equal(t, "single", RepoID("single"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestSupportedLanguage(t *testing.T) {
	assert.True(t, SupportedLanguage(LanguagePython))
	assert.True(t, SupportedLanguage(LanguageJava))
	assert.False(t, SupportedLanguage("ruby"))
	assert.False(t, SupportedLanguage(""))
}
