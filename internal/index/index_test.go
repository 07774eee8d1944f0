package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateIndexCreatesAndAppends(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, UpdateIndex(dir, []string{"sqlinfo_b.md", "sqlinfo_a.md", "sqlinfo_b.md", " "}, "Documentação"))

	idx, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, Kind, idx.Kind)
	assert.Equal(t, "Documentação", idx.Title)
	assert.Equal(t, []string{"sqlinfo_b.md", "sqlinfo_a.md"}, idx.Documents)

	require.NoError(t, UpdateIndex(dir, []string{"sqlinfo_a.md", "sqlinfo_c.md"}, "Outro"))

	idx, err = Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "Documentação", idx.Title)
	assert.Equal(t, []string{"sqlinfo_b.md", "sqlinfo_a.md", "sqlinfo_c.md"}, idx.Documents)
}

func TestUpdateIndexNothingToAdd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, UpdateIndex(dir, []string{"", "  "}, ""))
	assert.NoFileExists(t, filepath.Join(dir, FileName))
}

func TestUpdateIndexInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("documents: [a\n"), 0o644))

	err := UpdateIndex(dir, []string{"x.md"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "falha ao parsear")
}

func TestGroupByDir(t *testing.T) {
	a := filepath.Join("out", "a")
	groups := GroupByDir([]string{
		filepath.Join(a, "z.md"),
		filepath.Join(a, "b.html"),
		filepath.Join("out", "c.md"),
		"",
	})

	assert.Equal(t, map[string][]string{
		a:     {"b.html", "z.md"},
		"out": {"c.md"},
	}, groups)
}
