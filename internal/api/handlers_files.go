package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/mdchunk/internal/convert"
	"github.com/dgallion1/mdchunk/internal/doctree"
	"github.com/dgallion1/mdchunk/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List(r.URL.Query().Get("pattern"))
	if errors.Is(err, store.ErrBadPattern) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("list files failed", "error", err)
		jsonError(w, "failed to list files", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > s.cfg.MaxUploadBytes {
		jsonError(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}

	filename := store.SanitizeFilename(header.Filename)
	if !convert.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	conv, err := convert.ForFile(filename, convert.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		s.log.Error("select converter failed", "file", filename, "error", err)
		jsonError(w, "failed to read upload", http.StatusInternalServerError)
		return
	}
	text, err := conv.Convert(file, filename)
	if err != nil {
		s.log.Warn("conversion failed", "file", filename, "error", err)
		jsonError(w, "conversion failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.checkText([]byte(text)); err != nil {
		writeTextError(w, err)
		return
	}

	name, err := s.store.Save(convert.MarkdownName(filename), []byte(text))
	if errors.Is(err, store.ErrInvalidName) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.log.Error("save upload failed", "file", filename, "error", err)
		jsonError(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	s.results.Invalidate(name)

	s.log.Info("file uploaded", "file", name, "source", filename, "bytes", len(text))
	writeJSON(w, http.StatusOK, map[string]string{"file": name})
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readFile(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.store.Delete(name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, "File not found", http.StatusNotFound)
		return
	case errors.Is(err, store.ErrInvalidName):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.log.Error("delete failed", "file", name, "error", err)
		jsonError(w, "failed to delete file", http.StatusInternalServerError)
		return
	}
	s.results.Invalidate(name)

	s.log.Info("file deleted", "file", name)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleFileTables(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]doctree.Table{"tables": doc.tables})
}

func (s *Server) handleFileChunks(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc.chunks)
}

func (s *Server) handleFileAnalysis(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadDocument(w, r)
	if !ok {
		return
	}
	res := doc.result()
	s.metrics.CountMode(string(res.Type))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFilePreview(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, ok := s.readFile(w, name)
	if !ok {
		return
	}
	page, err := s.preview.Page(name, data)
	if err != nil {
		s.log.Error("render preview failed", "file", name, "error", err)
		jsonError(w, "failed to render preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
