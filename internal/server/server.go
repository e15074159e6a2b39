// Package server is the HTTP boundary. Handlers validate input, delegate to
// the pipeline, registry, and orchestrator, and translate error kinds to
// status codes.
package server

import (
	"encoding/json"
	"net/http"

	"rfp-assist/internal/apperr"
	"rfp-assist/internal/assistant"
	"rfp-assist/internal/catalog"
	"rfp-assist/internal/indexer"
	"rfp-assist/internal/threads"
)

type Server struct {
	indexer      *indexer.Indexer
	registry     *threads.Registry
	orchestrator *assistant.Orchestrator
	client       assistant.Client
	catalog      *catalog.Catalog // may be nil
	uploadDir    string
}

func New(ix *indexer.Indexer, reg *threads.Registry, orc *assistant.Orchestrator, client assistant.Client, cat *catalog.Catalog, uploadDir string) *Server {
	return &Server{
		indexer:      ix,
		registry:     reg,
		orchestrator: orc,
		client:       client,
		catalog:      cat,
		uploadDir:    uploadDir,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /uploadFile", s.handleUpload)
	mux.HandleFunc("GET /threads", s.handleListThreads)
	mux.HandleFunc("POST /threads", s.handleCreateThread)
	mux.HandleFunc("DELETE /threads/{id}", s.handleDeleteThread)
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /documents/{id}/chunks", s.handleDocumentChunks)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusForError maps the error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindExtraction:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	case apperr.KindRunFailed, apperr.KindRunExpired:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
