// Package chunker splits cleaned document text into bounded, overlap-free
// semantic units. Splitting happens on heading cues first, then by greedy
// paragraph packing against the target size. An oversized paragraph is kept
// whole rather than cut mid-sentence.
//
// A chunk overlap setting exists in the pipeline config for parity with
// sliding-window chunkers, but this strategy produces disjoint chunks and
// does not apply it.
package chunker

import (
	"regexp"
	"strings"

	"rfp-assist/internal/models"
)

const (
	defaultChunkSize = 500
	defaultMinLen    = 50
)

var (
	sectionRe   = regexp.MustCompile(models.SectionHeadingRegex)
	paragraphRe = regexp.MustCompile(models.ParagraphSplitRegex)
)

type Chunker struct {
	chunkSize int
	minLen    int
}

func New(chunkSize, minLen int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if minLen <= 0 {
		minLen = defaultMinLen
	}
	return &Chunker{chunkSize: chunkSize, minLen: minLen}
}

// Split segments text into chunks. Every returned chunk is either within the
// size bound or exactly one whole oversized paragraph, and always longer than
// the minimum length floor.
func (c *Chunker) Split(text string) []string {
	var chunks []string
	for _, section := range sectionRe.Split(text, -1) {
		if len(section) <= c.chunkSize {
			chunks = append(chunks, strings.TrimSpace(section))
			continue
		}
		chunks = append(chunks, c.packParagraphs(section)...)
	}

	kept := chunks[:0]
	for _, chunk := range chunks {
		if len(chunk) > c.minLen {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// packParagraphs splits a section on blank lines and greedily packs
// paragraphs into an accumulator, flushing when the next paragraph would
// exceed the size bound.
func (c *Chunker) packParagraphs(section string) []string {
	var chunks []string
	current := ""
	for _, para := range paragraphRe.Split(section, -1) {
		if current == "" && len(para) <= c.chunkSize {
			current = para
			continue
		}
		if current != "" && len(current)+1+len(para) <= c.chunkSize {
			current += "\n" + para
			continue
		}
		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = para
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}
