// Package store implements the vector store: an append-only set of JSON
// records keyed by document identity, persisted as a single file. The file is
// the system's retrieval index and is long-lived; schema changes must be
// additive only.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"rfp-assist/internal/apperr"
	"rfp-assist/internal/models"
)

// EmbeddingRecord is one persisted document: identifier, vector, metadata.
type EmbeddingRecord struct {
	DocID     string          `json:"doc_id"`
	Embedding []float32       `json:"embedding"`
	Metadata  models.Metadata `json:"metadata"`
}

// Store serializes every load-modify-save cycle behind one mutex and writes
// through an atomic rename, so concurrent uploads cannot drop each other's
// records and a concurrent reader never observes a partial file.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Append adds one record to the store. Embedding dimensionality must match
// the records already present.
func (s *Store) Append(rec EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return err
	}
	if len(recs) > 0 && len(recs[0].Embedding) != len(rec.Embedding) {
		return apperr.Newf(apperr.KindValidation,
			"embedding dimension %d does not match store dimension %d",
			len(rec.Embedding), len(recs[0].Embedding))
	}
	recs = append(recs, rec)
	if err := s.save(recs); err != nil {
		return err
	}
	log.Info().Str("doc_id", rec.DocID).Int("records", len(recs)).Msg("stored embedding record")
	return nil
}

// All returns every record in insertion order. A missing store file is an
// empty store, not an error.
func (s *Store) All() ([]EmbeddingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Delete removes the record with the given document identifier. Not exposed
// as a user-facing operation, but removal must be possible.
func (s *Store) Delete(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, rec := range recs {
		if rec.DocID != docID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(recs) {
		return apperr.Newf(apperr.KindNotFound, "document %q not in store", docID)
	}
	return s.save(kept)
}

func (s *Store) load() ([]EmbeddingRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreIO, "failed to read vector store", err)
	}
	var recs []EmbeddingRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, apperr.Wrap(apperr.KindStoreIO, "corrupt vector store file", err)
	}
	return recs, nil
}

func (s *Store) save(recs []EmbeddingRecord) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.KindStoreIO, "failed to encode vector store", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperr.Wrap(apperr.KindStoreIO, "failed to create store directory", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperr.Wrap(apperr.KindStoreIO, "failed to write vector store", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperr.Wrap(apperr.KindStoreIO, "failed to replace vector store", err)
	}
	return nil
}
