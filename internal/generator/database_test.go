package generator

import (
	"bytes"
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"sqlinfogen/internal/config"
	"sqlinfogen/internal/dbclient"
	"sqlinfogen/internal/layout"
	"sqlinfogen/internal/model"
	"sqlinfogen/internal/render"
	"sqlinfogen/internal/rules"
)

var testDefaults = layout.Defaults{
	OutputDir:            "output",
	OutputFileNamePrefix: "sqlinfo_",
	OutputFileNameSuffix: "md",
}

const shopTables = `
- table: users
  fields:
    - name: id
    - name: name
      alias: Nome
  selectConditions: ["id > 0"]
  orderByConditions: [id]
  limit: {offset: 0, count: 2}
- table: users
  fields:
    - name: ghost
  limit: {offset: 0, count: 2}
- table: orders
  needAllFields: true
  fields:
    - name: total
      alias: Total
  orderByConditions: [id desc]
  limit: {offset: 1, count: 10}
`

func createShopDB(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "shop.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT NOT NULL)`,
		`INSERT INTO users VALUES (1, 'alice', 'a@x'), (2, NULL, 'b@x'), (3, 'carol', 'c@x')`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL, total REAL)`,
		`INSERT INTO orders VALUES (10, 1, 9.5), (11, 3, 20), (12, 1, NULL)`,
	} {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return "sqlite://" + dbPath
}

type harness struct {
	dir    string
	client *dbclient.Client
	gen    *DatabaseGenerator
	logs   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	client := dbclient.New()
	t.Cleanup(func() { _ = client.Close() })

	logs := &bytes.Buffer{}
	return &harness{
		dir:    dir,
		client: client,
		logs:   logs,
		gen: &DatabaseGenerator{
			Layout: layout.NewLayout(dir, dir, testDefaults),
			Source: config.FileTableSource{},
			Tables: &TableGenerator{Introspector: client, Executor: client, Renderers: render.DefaultRegistry()},
			Logger: log.New(logs, "", 0),
		},
	}
}

func (h *harness) writeTables(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(h.dir, "tables"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "tables", name), []byte(content), 0o644))
}

func shopConfig(connStr string) model.DatabaseConfig {
	return model.DatabaseConfig{
		Db:               "shop",
		ConnectionString: connStr,
		ReadDirLevels:    []string{"tables"},
		ReadFileName:     "shop.yaml",
		OutputDir:        "default",
	}
}

func TestDatabaseGeneratorEndToEnd(t *testing.T) {
	h := newHarness(t)
	h.writeTables(t, "shop.yaml", shopTables)

	res := h.gen.Run(context.Background(), shopConfig(createShopDB(t, h.dir)))
	require.NoError(t, res.Err)

	assert.Equal(t, filepath.Join(h.dir, "tables", "shop.yaml"), res.ReadPath)
	assert.Equal(t, filepath.Join(h.dir, "output", "sqlinfo_shop.md"), res.OutputPath)

	require.Len(t, res.Tables, 3)
	assert.NoError(t, res.Tables[0].Err)
	assert.ErrorIs(t, res.Tables[1].Err, rules.ErrUnknownFields)
	assert.NoError(t, res.Tables[2].Err)
	assert.Equal(t, 1, res.FailedTables())
	assert.Contains(t, h.logs.String(), "contém erros")

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	out := string(data)

	// tabelas na ordem do config
	usersAt := strings.Index(out, "## users")
	ordersAt := strings.Index(out, "## orders")
	require.GreaterOrEqual(t, usersAt, 0)
	require.Greater(t, ordersAt, usersAt)
	assert.Equal(t, 1, strings.Count(out, "## users"))

	assert.Contains(t, out, "| id | Nome |\n| --- | --- |\n| 1 | alice |\n| 2 | NULL |\n")
	assert.NotContains(t, out, "carol")

	// orders: todas as colunas, alias preservado, offset 1 em id desc
	assert.Contains(t, out, "| id | user_id | Total |")
	assert.Contains(t, out, "| 11 | 3 | 20 |\n| 10 | 1 | 9.5 |\n")
	assert.NotContains(t, out, "| 12 |")
}

func TestDatabaseGeneratorIdempotent(t *testing.T) {
	h := newHarness(t)
	h.writeTables(t, "shop.yaml", shopTables)
	cfg := shopConfig(createShopDB(t, h.dir))

	first := h.gen.Run(context.Background(), cfg)
	require.NoError(t, first.Err)
	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second := h.gen.Run(context.Background(), cfg)
	require.NoError(t, second.Err)
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDatabaseGeneratorRejectsConfig(t *testing.T) {
	t.Run("blank connection string", func(t *testing.T) {
		h := newHarness(t)
		src := &countingSource{}
		h.gen.Source = src

		res := h.gen.Run(context.Background(), shopConfig("  "))
		require.ErrorIs(t, res.Err, rules.ErrEmptyConnectionString)
		assert.Zero(t, src.calls)
		assert.NoFileExists(t, res.OutputPath)
		assert.NoDirExists(t, filepath.Join(h.dir, "output"))
	})

	t.Run("unsupported suffix", func(t *testing.T) {
		h := newHarness(t)
		cfg := shopConfig("sqlite://" + filepath.Join(h.dir, "x.db"))
		cfg.OutputFileNameSuffix = "pdf"

		res := h.gen.Run(context.Background(), cfg)
		require.ErrorIs(t, res.Err, rules.ErrUnsupportedSuffix)
		assert.NoFileExists(t, res.OutputPath)
	})

	t.Run("missing table config", func(t *testing.T) {
		h := newHarness(t)
		res := h.gen.Run(context.Background(), shopConfig(createShopDB(t, h.dir)))
		require.ErrorIs(t, res.Err, os.ErrNotExist)
		assert.NoFileExists(t, res.OutputPath)
	})
}

func TestDatabaseGeneratorHTML(t *testing.T) {
	h := newHarness(t)
	h.writeTables(t, "shop.yaml", "- table: users\n  needAllFields: true\n  limit: {offset: 0, count: 1}\n")

	cfg := shopConfig(createShopDB(t, h.dir))
	cfg.OutputFileName = "loja"
	cfg.OutputFileNameSuffix = "HTML"

	res := h.gen.Run(context.Background(), cfg)
	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(h.dir, "output", "loja.HTML"), res.OutputPath)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h2>users</h2>")
	assert.Contains(t, string(data), "<td>alice</td>")
}

type countingSource struct {
	calls  int
	tables []model.TableConfig
}

func (s *countingSource) LoadTables(string, string) ([]model.TableConfig, error) {
	s.calls++
	return s.tables, nil
}
