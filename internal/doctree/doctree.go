package doctree

// MaxHeadingLevel is the deepest heading level tracked as chunk context.
// Deeper markers are treated as ordinary text.
const MaxHeadingLevel = 10

// Table is a pipe table normalized into a header/row grid.
type Table struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// Chunk is one scanned unit of content paired with its enclosing heading path.
type Chunk struct {
	ID      int      `json:"chunkId"` // 1-based, strictly increasing within one parse
	Content []string `json:"content"` // active headings, then the line or "header: value" pairs
}

// Reference is a hyperlink found in the source text of a chunk.
type Reference struct {
	ChunkID int    `json:"chunkId"`
	URL     string `json:"url"`
}

// Chunks is the output of heading-aware chunking.
type Chunks struct {
	Chunks     []Chunk     `json:"chunks"`
	References []Reference `json:"references"`
}

// Mode names which extraction produced a Result.
type Mode string

const (
	ModeTables Mode = "tables"
	ModeChunks Mode = "chunks"
)

// Result is the tables-first, chunks-fallback analysis of a document.
// Exactly one of Tables or Chunks is populated, according to Type.
type Result struct {
	Type   Mode    `json:"type"`
	Tables []Table `json:"tables,omitempty"`
	*Chunks
}
