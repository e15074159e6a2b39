package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rfp-assist/internal/helper"
)

const maxUploadBytes = 64 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are allowed")
		return
	}

	name := helper.SanitizeFilename(header.Filename)
	tempName, err := helper.TempName(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := helper.CreateFolder(s.uploadDir); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	tempPath := filepath.Join(s.uploadDir, tempName)
	dst, err := os.Create(tempPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}
	defer os.Remove(tempPath)
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}
	dst.Close()

	rec, err := s.indexer.Index(r.Context(), tempPath, name)
	if err != nil {
		log.Error().Err(err).Str("doc_id", name).Msg("indexing failed")
		writeError(w, statusForError(err), err.Error())
		return
	}

	log.Info().Str("doc_id", rec.DocID).Str("category", rec.Metadata.Category).Msg("document indexed")
	writeJSON(w, http.StatusOK, map[string]string{
		"response": "file uploaded and embeddings stored successfully",
		"doc_id":   rec.DocID,
	})
}

func (s *Server) handleListThreads(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"threads": s.registry.List()})
}

func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	// body is optional; an unnamed thread gets a timestamped default
	_ = json.NewDecoder(r.Body).Decode(&body)

	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = "Thread " + time.Now().Format("2006-01-02 15:04:05")
	}

	id, err := s.client.CreateThread(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("thread creation failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.registry.Put(id, name)
	writeJSON(w, http.StatusCreated, map[string]string{"thread_id": id, "name": name})
}

func (s *Server) handleDeleteThread(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.registry.Delete(id) {
		writeError(w, http.StatusNotFound, "thread not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "thread deleted"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question string `json:"question"`
		ThreadID string `json:"thread_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Question == "" || body.ThreadID == "" {
		writeError(w, http.StatusBadRequest, "question and thread_id are required")
		return
	}
	if !s.registry.Has(body.ThreadID) {
		writeError(w, http.StatusNotFound, "thread not found")
		return
	}

	answer, err := s.orchestrator.Ask(r.Context(), body.ThreadID, body.Question)
	if err != nil {
		log.Error().Err(err).Str("thread_id", body.ThreadID).Msg("ask failed")
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) handleDocumentChunks(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "chunk catalog is not enabled")
		return
	}
	docID := r.PathValue("id")
	chunks, err := s.catalog.ChunksByDoc(r.Context(), docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read chunk catalog")
		return
	}
	if len(chunks) == 0 {
		writeError(w, http.StatusNotFound, "no chunks for document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc_id": docID, "chunks": chunks})
}
