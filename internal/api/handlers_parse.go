package api

import (
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/mdchunk/internal/doctree"
	"github.com/dgallion1/mdchunk/internal/parser"
)

// handleParse parses the raw request body without storing it. The mode
// query parameter selects auto (tables first, chunks fallback), tables,
// or chunks.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "auto"
	}
	switch mode {
	case "auto", string(doctree.ModeTables), string(doctree.ModeChunks):
	default:
		jsonError(w, "mode must be auto, tables or chunks", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if err := s.checkText(data); err != nil {
		writeTextError(w, err)
		return
	}
	text := string(data)

	start := time.Now()
	switch mode {
	case string(doctree.ModeTables):
		tables := parser.ParseTables(text)
		s.metrics.ObserveParse("tables", time.Since(start))
		writeJSON(w, http.StatusOK, map[string][]doctree.Table{"tables": tables})
	case string(doctree.ModeChunks):
		chunks := parser.ParseChunks(text)
		s.metrics.ObserveParse("chunks", time.Since(start))
		writeJSON(w, http.StatusOK, chunks)
	default:
		res := parser.Analyze(text)
		s.metrics.ObserveParse("analyze", time.Since(start))
		s.metrics.CountMode(string(res.Type))
		writeJSON(w, http.StatusOK, res)
	}
}
