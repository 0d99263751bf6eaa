package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func TestStore_SaveReadDelete(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("notes.md", []byte("# Notes"))
	require.NoError(t, err)
	assert.Equal(t, "notes.md", name)

	data, err := s.Read("notes.md")
	require.NoError(t, err)
	assert.Equal(t, "# Notes", string(data))

	require.NoError(t, s.Delete("notes.md"))

	_, err = s.Read("notes.md")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("notes.md"), ErrNotFound)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("a.md", []byte("one"))
	require.NoError(t, err)
	_, err = s.Save("a.md", []byte("two"))
	require.NoError(t, err)

	data, err := s.Read("a.md")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload files should not remain")
}

func TestStore_RejectsBadNames(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"../escape.md", "sub/dir.md", "notes.txt", ".hidden.md", ""} {
		_, err := s.Save(name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
		_, err = s.Read(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"b.md", "a.md", "report-2024.md"} {
		_, err := s.Save(name, []byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "ignored.txt"), []byte("x"), 0o644))

	files, err := s.List("")
	require.NoError(t, err)
	assert.Equal(t, []File{{Name: "a.md"}, {Name: "b.md"}, {Name: "report-2024.md"}}, files)

	files, err = s.List("report-*.md")
	require.NoError(t, err)
	assert.Equal(t, []File{{Name: "report-2024.md"}}, files)

	_, err = s.List("[unclosed")
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestStore_ListEmpty(t *testing.T) {
	files, err := newTestStore(t).List("")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notes.md", "notes.md"},
		{"/tmp/x/notes.md", "notes.md"},
		{`C:\Users\me\notes.md`, "notes.md"},
		{"..", "unnamed"},
		{"", "unnamed"},
		{"a..b.md", "a_b.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestStore_Watch(t *testing.T) {
	s := newTestStore(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	seen := map[string]bool{}
	require.NoError(t, s.Watch(ctx, log, func(name string) {
		mu.Lock()
		defer mu.Unlock()
		seen[name] = true
	}))

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "edited.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "skip.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen["edited.md"]
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, seen["skip.txt"])
}
