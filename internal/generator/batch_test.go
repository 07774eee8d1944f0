package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlinfogen/internal/layout"
	"sqlinfogen/internal/model"
	"sqlinfogen/internal/render"
)

// slowDB conta quantas introspecções estão rodando ao mesmo tempo.
type slowDB struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (s *slowDB) TableSchema(_ context.Context, _, _ string) (model.Schema, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)
	return model.Schema{"id": {Field: "id", Order: 1}}, nil
}

func (s *slowDB) Query(context.Context, string, string) (*model.QueryResult, error) {
	return &model.QueryResult{Columns: []string{"id"}, Rows: [][]any{{int64(1)}}}, nil
}

type staticSource struct {
	tables map[string][]model.TableConfig
}

func (s staticSource) LoadTables(db, path string) ([]model.TableConfig, error) {
	t, ok := s.tables[db]
	if !ok {
		return nil, fmt.Errorf("lendo config de tabelas do banco %s: %w", db, os.ErrNotExist)
	}
	return t, nil
}

func batchDatabases(n int) []model.DatabaseConfig {
	dbs := make([]model.DatabaseConfig, 0, n)
	for i := range n {
		dbs = append(dbs, model.DatabaseConfig{
			Db:               fmt.Sprintf("db%d", i),
			ConnectionString: "fake://x",
			ReadFileName:     fmt.Sprintf("db%d.yaml", i),
		})
	}
	return dbs
}

func newBatchGenerator(dir string, src TableSource, db *slowDB, logs *bytes.Buffer) *DatabaseGenerator {
	return &DatabaseGenerator{
		Layout: layout.NewLayout(dir, dir, testDefaults),
		Source: src,
		Tables: &TableGenerator{Introspector: db, Executor: db, Renderers: render.DefaultRegistry()},
		Logger: log.New(logs, "", 0),
	}
}

func everyTable(dbs []model.DatabaseConfig) staticSource {
	src := staticSource{tables: map[string][]model.TableConfig{}}
	for _, d := range dbs {
		src.tables[d.Db] = []model.TableConfig{{Table: "t", NeedAllFields: true, Limit: model.Limit{Count: 1}}}
	}
	return src
}

func TestBatchRunnerRespectsConcurrencyLimit(t *testing.T) {
	dir := t.TempDir()
	dbs := batchDatabases(8)
	db := &slowDB{delay: 20 * time.Millisecond}
	logs := &bytes.Buffer{}

	runner := &BatchRunner{
		Generator: newBatchGenerator(dir, everyTable(dbs), db, logs),
		Governor:  NewGovernor(2),
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	}

	results := runner.Run(context.Background(), dbs)
	require.Len(t, results, len(dbs))
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.FileExists(t, r.OutputPath)
	}
	assert.LessOrEqual(t, db.peak.Load(), int32(2))
	assert.GreaterOrEqual(t, db.peak.Load(), int32(1))
}

func TestBatchRunnerIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	dbs := batchDatabases(3)
	src := everyTable(dbs)
	delete(src.tables, "db1")

	batchLogs := &bytes.Buffer{}
	runner := &BatchRunner{
		Generator: newBatchGenerator(dir, src, &slowDB{}, &bytes.Buffer{}),
		Governor:  NewGovernor(3),
		Logger:    log.New(batchLogs, "", 0),
	}

	results := runner.Run(context.Background(), dbs)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, dbs[i].Db, r.Database)
	}
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)
	assert.NoError(t, results[2].Err)

	assert.FileExists(t, filepath.Join(dir, "output", "sqlinfo_db0.md"))
	assert.NoFileExists(t, filepath.Join(dir, "output", "sqlinfo_db1.md"))
	assert.FileExists(t, filepath.Join(dir, "output", "sqlinfo_db2.md"))

	assert.Contains(t, batchLogs.String(), "processado com sucesso, arquivo gerado em")
	assert.Contains(t, batchLogs.String(), "db1.yaml contém erros")
}

type runnerFunc func(ctx context.Context, db model.DatabaseConfig) Result

func (f runnerFunc) Run(ctx context.Context, db model.DatabaseConfig) Result { return f(ctx, db) }

func TestBatchRunnerRecoversPanic(t *testing.T) {
	runner := &BatchRunner{
		Generator: runnerFunc(func(_ context.Context, db model.DatabaseConfig) Result {
			if db.Db == "boom" {
				panic("estourou")
			}
			return Result{Database: db.Db, OutputPath: "/tmp/" + db.Db}
		}),
		Logger: log.New(&bytes.Buffer{}, "", 0),
	}

	results := runner.Run(context.Background(), []model.DatabaseConfig{{Db: "a"}, {Db: "boom"}, {Db: "c"}})
	require.Len(t, results, 3)

	assert.True(t, results[0].OK())
	require.Error(t, results[1].Err)
	assert.Equal(t, "boom", results[1].Database)
	assert.Contains(t, results[1].Err.Error(), "estourou")
	assert.True(t, results[2].OK())
}

type panicSource struct{}

func (panicSource) LoadTables(string, string) ([]model.TableConfig, error) {
	panic("boom")
}

func TestBatchRunnerPanicKeepsResolvedPaths(t *testing.T) {
	dir := t.TempDir()
	dbs := batchDatabases(1)

	batchLogs := &bytes.Buffer{}
	runner := &BatchRunner{
		Generator: newBatchGenerator(dir, panicSource{}, &slowDB{}, &bytes.Buffer{}),
		Governor:  NewGovernor(1),
		Logger:    log.New(batchLogs, "", 0),
	}

	results := runner.Run(context.Background(), dbs)
	require.Len(t, results, 1)

	res := results[0]
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "panic na geração: boom")
	assert.Equal(t, "db0", res.Database)
	assert.Equal(t, filepath.Join(dir, "db0.yaml"), res.ReadPath)
	assert.Equal(t, filepath.Join(dir, "output", "sqlinfo_db0.md"), res.OutputPath)

	assert.Contains(t, batchLogs.String(), filepath.Join(dir, "db0.yaml")+" contém erros: panic na geração: boom")
	assert.NotContains(t, batchLogs.String(), "db=db0")
}

func TestBatchRunnerCancelledWhileWaiting(t *testing.T) {
	gov := NewGovernor(1)
	require.NoError(t, gov.Acquire(context.Background()))
	defer gov.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	runner := &BatchRunner{
		Generator: runnerFunc(func(_ context.Context, db model.DatabaseConfig) Result {
			calls.Add(1)
			return Result{Database: db.Db}
		}),
		Governor: gov,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	}

	results := runner.Run(ctx, []model.DatabaseConfig{{Db: "a"}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestBatchRunnerEmpty(t *testing.T) {
	runner := &BatchRunner{Generator: runnerFunc(func(context.Context, model.DatabaseConfig) Result {
		t.Fatal("não deveria rodar")
		return Result{}
	})}
	assert.Empty(t, runner.Run(context.Background(), nil))
}

func TestNewGovernor(t *testing.T) {
	assert.Equal(t, 1, NewGovernor(0).Limit())
	assert.Equal(t, 1, NewGovernor(-3).Limit())
	assert.Equal(t, 4, NewGovernor(4).Limit())
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Database: "a", Tables: []TableResult{{Table: "x"}, {Table: "y", Err: errors.New("falhou")}}},
		{Database: "b", Err: errors.New("sem conexão")},
		{Database: "c"},
	}

	ok, failed, skipped := Summary(results)
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
}
