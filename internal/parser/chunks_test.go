package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/mdchunk/internal/doctree"
)

func TestParseChunks_HeadingAndProse(t *testing.T) {
	got := ParseChunks("# Title\n\nHello world")

	want := doctree.Chunks{
		Chunks:     []doctree.Chunk{{ID: 1, Content: []string{"# Title", "Hello world"}}},
		References: []doctree.Reference{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestParseChunks_EmptyInput(t *testing.T) {
	got := ParseChunks("")
	if got.Chunks == nil || got.References == nil {
		t.Fatal("expected non-nil empty slices")
	}
	if len(got.Chunks) != 0 || len(got.References) != 0 {
		t.Errorf("expected nothing, got %+v", got)
	}
}

func TestParseChunks_TableRows(t *testing.T) {
	got := ParseChunks("| A | B |\n|---|---|\n| 1 | 2 |")

	if len(got.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got.Chunks))
	}
	want := doctree.Chunk{ID: 1, Content: []string{"A: 1", "B: 2"}}
	if !reflect.DeepEqual(got.Chunks[0], want) {
		t.Errorf("expected %+v, got %+v", want, got.Chunks[0])
	}
}

func TestParseChunks_ShortTableRow(t *testing.T) {
	got := ParseChunks("| A | B |\n|---|---|\n| onlyone |")

	if len(got.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got.Chunks))
	}
	want := []string{"A: onlyone", "B: "}
	if !reflect.DeepEqual(got.Chunks[0].Content, want) {
		t.Errorf("expected %q, got %q", want, got.Chunks[0].Content)
	}
}

func TestParseChunks_LinkReference(t *testing.T) {
	got := ParseChunks("See [docs](http://example.com/x) here")

	if len(got.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got.Chunks))
	}
	if got.Chunks[0].Content[0] != "See [docs](http://example.com/x) here" {
		t.Errorf("unexpected content %q", got.Chunks[0].Content)
	}
	want := []doctree.Reference{{ChunkID: 1, URL: "http://example.com/x"}}
	if !reflect.DeepEqual(got.References, want) {
		t.Errorf("expected %+v, got %+v", want, got.References)
	}
}

func TestParseChunks_HeadingReset(t *testing.T) {
	input := `# A
## B
### C
under c
## D
under d
# E
under e`
	got := ParseChunks(input)

	want := [][]string{
		{"# A", "## B", "### C", "under c"},
		{"# A", "## D", "under d"},
		{"# E", "under e"},
	}
	if len(got.Chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(got.Chunks))
	}
	for i, w := range want {
		if !reflect.DeepEqual(got.Chunks[i].Content, w) {
			t.Errorf("chunk %d: expected %q, got %q", i+1, w, got.Chunks[i].Content)
		}
	}
}

func TestParseChunks_HeadingBeyondMaxLevelIsText(t *testing.T) {
	got := ParseChunks("# Top\n########### too deep\nbody")

	if len(got.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got.Chunks))
	}
	if !reflect.DeepEqual(got.Chunks[0].Content, []string{"# Top", "########### too deep"}) {
		t.Errorf("unexpected first chunk %q", got.Chunks[0].Content)
	}
	if !reflect.DeepEqual(got.Chunks[1].Content, []string{"# Top", "body"}) {
		t.Errorf("unexpected second chunk %q", got.Chunks[1].Content)
	}
}

func TestParseChunks_EmbeddedTableWithContext(t *testing.T) {
	input := `## Pricing
Plans below.

| Plan | Link |
|:-----|-----:|
| Free | [signup](https://example.com/free) |
| Pro  | see https://example.com/pro |
after the table`

	got := ParseChunks(input)

	want := []doctree.Chunk{
		{ID: 1, Content: []string{"## Pricing", "Plans below."}},
		{ID: 2, Content: []string{"## Pricing", "Plan: Free", "Link: [signup](https://example.com/free)"}},
		{ID: 3, Content: []string{"## Pricing", "Plan: Pro", "Link: see https://example.com/pro"}},
		{ID: 4, Content: []string{"## Pricing", "after the table"}},
	}
	if !reflect.DeepEqual(got.Chunks, want) {
		t.Fatalf("expected %+v, got %+v", want, got.Chunks)
	}

	wantRefs := []doctree.Reference{
		{ChunkID: 2, URL: "https://example.com/free"},
		{ChunkID: 3, URL: "https://example.com/pro"},
	}
	if !reflect.DeepEqual(got.References, wantRefs) {
		t.Errorf("expected %+v, got %+v", wantRefs, got.References)
	}
}

func TestParseChunks_TableRowCountLaw(t *testing.T) {
	rows := []string{"| 1 | a |", "| 2 | b |", "| 3 | c |", "| 4 | d |"}
	input := "| N | L |\n|---|---|\n" + strings.Join(rows, "\n")

	got := ParseChunks(input)
	if len(got.Chunks) != len(rows) {
		t.Errorf("expected %d chunks (one per data row), got %d", len(rows), len(got.Chunks))
	}
}

func TestParseChunks_HeadingEndsTable(t *testing.T) {
	got := ParseChunks("| A |\n|---|\n| 1 |\n# H\n| 2 |")

	want := []doctree.Chunk{
		{ID: 1, Content: []string{"A: 1"}},
		{ID: 2, Content: []string{"# H", "| 2 |"}},
	}
	if !reflect.DeepEqual(got.Chunks, want) {
		t.Errorf("expected %+v, got %+v", want, got.Chunks)
	}
}

func TestParseChunks_PipeProseIsNotTable(t *testing.T) {
	got := ParseChunks("| just | prose |\nnext line")

	if len(got.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got.Chunks))
	}
	if got.Chunks[0].Content[0] != "| just | prose |" {
		t.Errorf("expected pipe line kept as prose, got %q", got.Chunks[0].Content)
	}
}

func TestParseChunks_SequentialIDs(t *testing.T) {
	input := "# H\none\n\ntwo\n| A |\n|---|\n| x |\n| y |\nthree\n\n\nfour"
	got := ParseChunks(input)

	if len(got.Chunks) != 6 {
		t.Fatalf("expected 6 chunks, got %d", len(got.Chunks))
	}
	for i, c := range got.Chunks {
		if c.ID != i+1 {
			t.Errorf("chunk %d: expected id %d, got %d", i, i+1, c.ID)
		}
	}
}

func TestParseChunks_Idempotent(t *testing.T) {
	input := "# T\nSee https://a.example and [b](https://b.example)\n| A |\n|---|\n| [c](https://c.example) |"
	first := ParseChunks(input)
	second := ParseChunks(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output, got %+v and %+v", first, second)
	}
}
