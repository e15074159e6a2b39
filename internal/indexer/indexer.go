// Package indexer wires the document indexing pipeline: extract, clean,
// chunk, analyze, embed, persist.
package indexer

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"rfp-assist/internal/catalog"
	"rfp-assist/internal/chunker"
	"rfp-assist/internal/cleaner"
	"rfp-assist/internal/config"
	"rfp-assist/internal/embedding"
	"rfp-assist/internal/models"
	"rfp-assist/internal/parser"
	"rfp-assist/internal/store"
	"rfp-assist/internal/textproc"
)

type Indexer struct {
	extractor parser.Extractor
	cleaner   *cleaner.Cleaner
	chunker   *chunker.Chunker
	embedder  embeddings.Embedder
	store     *store.Store
	catalog   *catalog.Catalog // optional analytics sink, may be nil
}

func New(cfg *config.PipelineConfig, extractor parser.Extractor, embedder embeddings.Embedder, st *store.Store, cat *catalog.Catalog) *Indexer {
	return &Indexer{
		extractor: extractor,
		cleaner:   cleaner.New(cfg.LineMargin),
		chunker:   chunker.New(cfg.ChunkSize, cfg.MinChunkLen),
		embedder:  embedder,
		store:     st,
		catalog:   cat,
	}
}

// Index runs the full pipeline for the file at path. The document identifier
// is the sanitized original filename, not the on-disk temp name. The whole
// cleaned document text is embedded as a single vector; per-chunk analysis
// goes to the chunk catalog. A catalog failure is logged but does not fail
// indexing.
func (ix *Indexer) Index(ctx context.Context, path, filename string) (store.EmbeddingRecord, error) {
	extracted, err := ix.extractor.Extract(path)
	if err != nil {
		return store.EmbeddingRecord{}, err
	}

	text := ix.cleaner.Clean(extracted.Pages)
	chunks := ix.analyze(ix.chunker.Split(text))
	log.Debug().Str("doc_id", filename).Int("chunks", len(chunks)).Msg("chunked document")

	vec, err := embedding.EmbedDocument(ctx, ix.embedder, text)
	if err != nil {
		return store.EmbeddingRecord{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rec := store.EmbeddingRecord{
		DocID:     filename,
		Embedding: vec,
		Metadata: models.Metadata{
			Category:   categoryFromFilename(filename),
			DocID:      filename,
			FilePath:   abs,
			Title:      strings.TrimSuffix(filename, filepath.Ext(filename)),
			UploadTime: time.Now().UTC().Format(time.RFC3339),
			Author:     extracted.Info.Author,
		},
	}
	if err := ix.store.Append(rec); err != nil {
		return store.EmbeddingRecord{}, err
	}

	if ix.catalog != nil {
		if err := ix.catalog.ReplaceChunks(ctx, filename, chunks); err != nil {
			log.Warn().Err(err).Str("doc_id", filename).Msg("chunk catalog write failed")
		}
	}
	return rec, nil
}

// analyze normalizes each chunk and extracts keywords, stems, and tags.
// Normalization happens after boundaries are fixed.
func (ix *Indexer) analyze(raw []string) []models.Chunk {
	chunks := make([]models.Chunk, len(raw))
	for i, text := range raw {
		norm := textproc.Normalize(text)
		keywords, stemmed := textproc.Keywords(norm)
		regions, categories := textproc.Tags(norm)
		chunks[i] = models.Chunk{
			Index:      i,
			Text:       text,
			Normalized: norm,
			Keywords:   keywords,
			Stemmed:    stemmed,
			Regions:    regions,
			Categories: categories,
		}
	}
	return chunks
}

// categoryFromFilename derives the category from a "Category_Name.pdf"
// filename prefix.
func categoryFromFilename(name string) string {
	if i := strings.Index(name, "_"); i > 0 {
		return name[:i]
	}
	return "Uncategorized"
}
