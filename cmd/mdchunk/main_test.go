package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_StdinJSON(t *testing.T) {
	out, err := execute(t, "| Name | Age |\n|---|---|\n| Alice | 30 |", "analyze", "-")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "tables", res["type"])
	assert.NotContains(t, res, "chunks")
}

func TestChunks_TextFormat(t *testing.T) {
	doc := "# Title\nIntro text\n## Section\nSee https://example.com"
	out, err := execute(t, doc, "chunks", "-", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] ~5 tokens\n  Title\n    Intro text\n")
	assert.Contains(t, out, "[2] ~7 tokens\n  Title\n    Section\n      See https://example.com\n")
	assert.Contains(t, out, "  -> https://example.com\n")
}

func TestTables_FromCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,score\nann,9\n"), 0o644))

	out, err := execute(t, "", "tables", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "table 1 (1 rows)")
	assert.Contains(t, out, "  name | score\n  ann | 9\n")
}

func TestRejectsBadInput(t *testing.T) {
	_, err := execute(t, string([]byte{0xff, 'a'}), "chunks", "-")
	assert.ErrorContains(t, err, "UTF-8")

	_, err = execute(t, "a\nb\nc", "chunks", "-", "--max-lines", "2")
	assert.ErrorContains(t, err, "max 2")

	_, err = execute(t, "x", "chunks", "-", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "", "tables", "image.png")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mdchunk version 0.1.0 (build: dev)\n", out)
}
