package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdchunk/internal/doctree"
	"github.com/dgallion1/mdchunk/internal/parser"
)

func write(w io.Writer, format string, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch v := v.(type) {
	case map[string][]doctree.Table:
		writeTables(w, v["tables"])
	case doctree.Chunks:
		writeChunks(w, v)
	case doctree.Result:
		fmt.Fprintf(w, "mode: %s\n", v.Type)
		if v.Type == doctree.ModeTables {
			writeTables(w, v.Tables)
		} else if v.Chunks != nil {
			writeChunks(w, *v.Chunks)
		}
	default:
		return fmt.Errorf("no text rendering for %T", v)
	}
	return nil
}

func writeTables(w io.Writer, tables []doctree.Table) {
	if len(tables) == 0 {
		fmt.Fprintln(w, "no tables")
		return
	}
	for i, t := range tables {
		fmt.Fprintf(w, "\ntable %d (%d rows)\n", i+1, len(t.Rows))
		fmt.Fprintf(w, "  %s\n", strings.Join(t.Headers, " | "))
		for _, row := range t.Rows {
			cells := make([]string, len(t.Headers))
			for k, h := range t.Headers {
				cells[k] = row[h]
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, " | "))
		}
	}
}

// writeChunks prints each chunk with its heading path indented by level.
func writeChunks(w io.Writer, c doctree.Chunks) {
	refs := make(map[int][]string)
	for _, r := range c.References {
		refs[r.ChunkID] = append(refs[r.ChunkID], r.URL)
	}

	for _, ch := range c.Chunks {
		fmt.Fprintf(w, "\n[%d] ~%d tokens\n", ch.ID, parser.ChunkTokens(ch))
		depth := 0
		for _, line := range ch.Content {
			if level, title, ok := parser.ParseHeading(line); ok {
				depth = level
				fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", level), title)
				continue
			}
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+1), line)
		}
		for _, url := range refs[ch.ID] {
			fmt.Fprintf(w, "  -> %s\n", url)
		}
	}
}
