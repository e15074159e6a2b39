// Package retriever answers top-K similarity queries over the vector store.
// At the current store sizes a pairwise scan is enough; a larger deployment
// would swap in an approximate-nearest-neighbor index honoring the same
// ordering contract.
package retriever

import (
	"math"
	"sort"

	"rfp-assist/internal/apperr"
	"rfp-assist/internal/store"
)

// Similar is one retrieval hit.
type Similar struct {
	DocID      string  `json:"doc_id"`
	Similarity float64 `json:"similarity"`
	Category   string  `json:"category"`
	FilePath   string  `json:"file_path"`
	Title      string  `json:"title"`
}

type Retriever struct {
	store *store.Store
}

func New(st *store.Store) *Retriever {
	return &Retriever{store: st}
}

// TopSimilar returns the k records most similar to the document whose title
// matches exactly, ordered by descending cosine similarity with ties kept in
// store insertion order. The query document is excluded by identifier, not by
// title, so a reused title under a different identifier is not over-excluded.
func (r *Retriever) TopSimilar(title string, k int) ([]Similar, error) {
	if k <= 0 {
		return nil, apperr.New(apperr.KindValidation, "k must be a positive integer")
	}

	recs, err := r.store.All()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperr.New(apperr.KindNotFound, "vector store is empty")
	}

	var query *store.EmbeddingRecord
	for i := range recs {
		if recs[i].Metadata.Title == title {
			query = &recs[i]
			break
		}
	}
	if query == nil {
		return nil, apperr.Newf(apperr.KindNotFound, "document %q not found in embeddings", title)
	}

	hits := make([]Similar, 0, len(recs)-1)
	for i := range recs {
		if recs[i].DocID == query.DocID {
			continue
		}
		hits = append(hits, Similar{
			DocID:      recs[i].DocID,
			Similarity: Cosine(query.Embedding, recs[i].Embedding),
			Category:   recs[i].Metadata.Category,
			FilePath:   recs[i].Metadata.FilePath,
			Title:      recs[i].Metadata.Title,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Cosine returns the cosine similarity of two vectors. Zero-norm vectors
// yield zero similarity.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
