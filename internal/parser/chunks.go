package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/mdchunk/internal/doctree"
)

// headingContext holds the most recent heading seen at each level.
type headingContext [doctree.MaxHeadingLevel]string

// set records a heading at level and closes every deeper level.
func (h *headingContext) set(level int, title string) {
	h[level-1] = strings.Repeat("#", level) + " " + title
	for j := level; j < len(h); j++ {
		h[j] = ""
	}
}

// active returns the open headings in level order.
func (h *headingContext) active() []string {
	var out []string
	for _, entry := range h {
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// chunkScanner is the per-call state of ParseChunks.
type chunkScanner struct {
	headings headingContext
	nextID   int

	inTable      bool
	tableHeaders []string
	tableContext []string

	out doctree.Chunks
}

// ParseChunks splits text into heading-scoped chunks: one per non-blank prose
// line and one per data row of any embedded pipe table. Links found in each
// unit are returned as references tagged with the unit's chunk id.
func ParseChunks(text string) doctree.Chunks {
	lines := SplitLines(text)
	s := &chunkScanner{
		nextID: 1,
		out: doctree.Chunks{
			Chunks:     []doctree.Chunk{},
			References: []doctree.Reference{},
		},
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if level, title, ok := ParseHeading(line); ok {
			s.headings.set(level, title)
			s.endTable()
			continue
		}

		if !s.inTable && startsTable(lines, i) {
			s.startTable(SplitRow(line))
			i++ // separator
			continue
		}

		if s.inTable {
			if IsPipeRow(line) {
				s.emitRow(SplitRow(line))
				continue
			}
			s.endTable()
		}

		if t := strings.TrimSpace(line); t != "" {
			s.emitLine(t, line)
		}
	}

	return s.out
}

func (s *chunkScanner) startTable(headers []string) {
	s.inTable = true
	s.tableHeaders = headers
	s.tableContext = s.headings.active()
}

func (s *chunkScanner) endTable() {
	s.inTable = false
	s.tableHeaders = nil
	s.tableContext = nil
}

func (s *chunkScanner) emitRow(cells []string) {
	cells = fitCells(cells, len(s.tableHeaders))

	content := make([]string, 0, len(s.tableContext)+len(cells))
	content = append(content, s.tableContext...)
	for k, h := range s.tableHeaders {
		content = append(content, fmt.Sprintf("%s: %s", h, cells[k]))
	}

	id := s.emit(content)
	for _, cell := range cells {
		s.addReferences(id, cell)
	}
}

func (s *chunkScanner) emitLine(trimmed, raw string) {
	content := append(s.headings.active(), trimmed)
	id := s.emit(content)
	s.addReferences(id, raw)
}

func (s *chunkScanner) emit(content []string) int {
	id := s.nextID
	s.out.Chunks = append(s.out.Chunks, doctree.Chunk{ID: id, Content: content})
	s.nextID++
	return id
}

func (s *chunkScanner) addReferences(id int, text string) {
	for _, url := range ExtractLinks(text) {
		s.out.References = append(s.out.References, doctree.Reference{ChunkID: id, URL: url})
	}
}
