package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Hello,   World! This is a TEST.  ")
	assert.Equal(t, "hello world this is a test", got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("Mixed-Case, punctuated; text!")
	assert.Equal(t, once, Normalize(once))
}

func TestKeywordsDropsStopwords(t *testing.T) {
	tokens, stemmed := Keywords("the services and running of a hospital")

	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "and")
	assert.NotContains(t, tokens, "of")
	assert.NotContains(t, tokens, "a")
	require.Len(t, stemmed, len(tokens))
}

func TestKeywordsStemsTokens(t *testing.T) {
	tokens, stemmed := Keywords("running services")

	require.Equal(t, []string{"running", "services"}, tokens)
	assert.Equal(t, []string{"run", "servic"}, stemmed)
}

func TestKeywordsEmptyInput(t *testing.T) {
	tokens, stemmed := Keywords("")
	assert.Empty(t, tokens)
	assert.Empty(t, stemmed)
}

func TestTagsMatchesRegionsAndCategories(t *testing.T) {
	text := Normalize("This Healthcare proposal targets British Columbia and Ontario, with Construction work.")
	regions, categories := Tags(text)

	assert.ElementsMatch(t, []string{"British Columbia", "Ontario"}, regions)
	assert.ElementsMatch(t, []string{"Healthcare", "Construction"}, categories)
}

func TestTagsWholeWordOnly(t *testing.T) {
	regions, categories := Tags("albertan healthcares")
	assert.Empty(t, regions)
	assert.Empty(t, categories)
}

func TestTagsNoMatches(t *testing.T) {
	regions, categories := Tags("nothing relevant here")
	assert.Empty(t, regions)
	assert.Empty(t, categories)
}
