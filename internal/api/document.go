package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/mdchunk/internal/cache"
	"github.com/dgallion1/mdchunk/internal/doctree"
	"github.com/dgallion1/mdchunk/internal/parser"
	"github.com/dgallion1/mdchunk/internal/store"
	"github.com/go-chi/chi/v5"
)

var (
	errInvalidUTF8  = errors.New("document is not valid UTF-8")
	errTooManyLines = errors.New("document exceeds line limit")
)

// document holds both parses of one stored file.
type document struct {
	tables []doctree.Table
	chunks doctree.Chunks
}

// result applies the tables-first policy to an already parsed document.
func (d *document) result() doctree.Result {
	if len(d.tables) > 0 {
		return doctree.Result{Type: doctree.ModeTables, Tables: d.tables}
	}
	return doctree.Result{Type: doctree.ModeChunks, Chunks: &d.chunks}
}

// checkText enforces the input contract of the parsers.
func (s *Server) checkText(data []byte) error {
	if !utf8.Valid(data) {
		return errInvalidUTF8
	}
	if n := parser.LineCount(string(data)); n > s.cfg.MaxDocumentLines {
		return fmt.Errorf("%w: %d lines, max %d", errTooManyLines, n, s.cfg.MaxDocumentLines)
	}
	return nil
}

func (s *Server) parse(text string) *document {
	start := time.Now()
	tables := parser.ParseTables(text)
	s.metrics.ObserveParse("tables", time.Since(start))

	start = time.Now()
	chunks := parser.ParseChunks(text)
	s.metrics.ObserveParse("chunks", time.Since(start))

	return &document{tables: tables, chunks: chunks}
}

// loadDocument reads the file named in the URL and returns its parse,
// serving from the cache when the content is unchanged. On failure the
// error response has already been written.
func (s *Server) loadDocument(w http.ResponseWriter, r *http.Request) (*document, bool) {
	name := chi.URLParam(r, "name")
	data, ok := s.readFile(w, name)
	if !ok {
		return nil, false
	}
	if err := s.checkText(data); err != nil {
		writeTextError(w, err)
		return nil, false
	}

	hash := cache.ContentHashHex(data)
	if doc, hit := s.results.Get(name, hash); hit {
		s.metrics.CountCache(true)
		return doc, true
	}
	s.metrics.CountCache(false)

	doc := s.parse(string(data))
	s.results.Put(name, hash, doc)
	return doc, true
}

func (s *Server) readFile(w http.ResponseWriter, name string) ([]byte, bool) {
	data, err := s.store.Read(name)
	switch {
	case err == nil:
		return data, true
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, "File not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidName):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("read file failed", "file", name, "error", err)
		jsonError(w, "failed to read file", http.StatusInternalServerError)
	}
	return nil, false
}

func writeTextError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, errTooManyLines) {
		code = http.StatusRequestEntityTooLarge
	}
	jsonError(w, err.Error(), code)
}
