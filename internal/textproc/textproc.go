// Package textproc holds the per-chunk text analysis steps: normalization,
// keyword extraction with stemming, and fixed-vocabulary tagging.
package textproc

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"

	"rfp-assist/internal/models"
)

var (
	punctuationRe = regexp.MustCompile(models.PunctuationRegex)
	whitespaceRe  = regexp.MustCompile(models.WhitespaceRegex)

	regionRes   = compileVocab(models.Regions)
	categoryRes = compileVocab(models.Categories)
)

func compileVocab(vocab []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(vocab))
	for i, entry := range vocab {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry) + `\b`)
	}
	return res
}

// Normalize lowercases, replaces punctuation with spaces, and collapses
// whitespace. It runs after chunk boundaries are fixed, so it cannot change
// chunk membership.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctuationRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Keywords tokenizes text, drops English stop-words, and stems what remains.
// Both the filtered original tokens and their stemmed forms are returned, in
// token order.
func Keywords(text string) (tokens, stemmed []string) {
	for _, tok := range strings.Fields(text) {
		if stopwords[strings.ToLower(tok)] {
			continue
		}
		tokens = append(tokens, tok)
		stemmed = append(stemmed, english.Stem(tok, false))
	}
	return tokens, stemmed
}

// Tags matches text against the fixed region and category vocabularies.
// Matching is case-insensitive and whole-word; a chunk may match zero, one,
// or many entries in each list.
func Tags(text string) (regions, categories []string) {
	for i, re := range regionRes {
		if re.MatchString(text) {
			regions = append(regions, models.Regions[i])
		}
	}
	for i, re := range categoryRes {
		if re.MatchString(text) {
			categories = append(categories, models.Categories[i])
		}
	}
	return regions, categories
}
