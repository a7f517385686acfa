package scratch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesRootAndUniqueWorkspaces(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	a, err := New(root, zerolog.Nop())
	require.NoError(t, err)
	b, err := New(root, zerolog.Nop())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.DirExists(t, a.Dir())
	assert.DirExists(t, b.Dir())
	assert.Equal(t, root, filepath.Dir(a.Dir()))
}

func TestSave_WritesContent(t *testing.T) {
	w, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	path, err := w.Save("input.txt", strings.NewReader("ERROR disk full\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR disk full\n", string(data))
	assert.Equal(t, w.Dir(), filepath.Dir(path))
}

func TestPath_StaysInsideWorkspace(t *testing.T) {
	w, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(w.Dir(), "passwd"), w.Path("../../etc/passwd"))
}

func TestClose_RemovesEverything(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	w, err := New(root, zerolog.New(&buf))
	require.NoError(t, err)

	_, err = w.Save("input.txt", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = w.Save("Harding - 2026-10-19.docx", strings.NewReader("y"))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoDirExists(t, w.Dir())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, buf.String(), "Temporary files deleted successfully")
}

func TestClose_IsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
