package generator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"sqlinfogen/internal/model"
)

// DatabaseRunner executa o job de um banco.
type DatabaseRunner interface {
	Run(ctx context.Context, db model.DatabaseConfig) Result
}

// BatchRunner dispara um job por banco, limitado pelo Governor.
// Falha (ou panic) de um banco nunca derruba os outros.
type BatchRunner struct {
	Generator DatabaseRunner
	Governor  *Governor
	Logger    *log.Logger
}

// Run espera todos os bancos terminarem e devolve os resultados na ordem de entrada.
func (b *BatchRunner) Run(ctx context.Context, dbs []model.DatabaseConfig) []Result {
	results := make([]Result, len(dbs))

	var wg sync.WaitGroup
	for i, db := range dbs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = b.runOne(ctx, db)
			b.report(results[i])
		}()
	}
	wg.Wait()

	return results
}

// runOne mede o tempo total do banco, incluindo a espera por vaga.
func (b *BatchRunner) runOne(ctx context.Context, db model.DatabaseConfig) (res Result) {
	start := time.Now()
	// DatabaseGenerator já se protege; aqui cobre outros DatabaseRunner
	defer func() {
		if r := recover(); r != nil {
			res = Result{Database: db.Db, Err: fmt.Errorf("panic na geração: %v", r)}
		}
		res.Elapsed = time.Since(start)
	}()

	if b.Governor != nil {
		if err := b.Governor.Acquire(ctx); err != nil {
			return Result{Database: db.Db, Err: fmt.Errorf("aguardando vaga de execução: %w", err)}
		}
		defer b.Governor.Release()
	}

	return b.Generator.Run(ctx, db)
}

func (b *BatchRunner) report(res Result) {
	l := logger(b.Logger)

	source := res.ReadPath
	if source == "" {
		source = "db=" + res.Database
	}

	if res.Err != nil {
		l.Printf("%s contém erros: %v", source, res.Err)
		return
	}
	l.Printf("%s processado com sucesso, arquivo gerado em %s, tempo (incluindo espera por recurso): %dms",
		source, res.OutputPath, res.Elapsed.Milliseconds())
}

// Summary resume o lote para o log final.
func Summary(results []Result) (ok, failed, skippedTables int) {
	for _, r := range results {
		if r.OK() {
			ok++
		} else {
			failed++
		}
		skippedTables += r.FailedTables()
	}
	return ok, failed, skippedTables
}
