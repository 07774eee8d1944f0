package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sqlinfogen/internal/layout"
	"sqlinfogen/internal/model"
	"sqlinfogen/internal/rules"
)

// TableSource carrega a lista ordenada de tabelas de um banco.
type TableSource interface {
	LoadTables(db, path string) ([]model.TableConfig, error)
}

type TableResult struct {
	Table string
	Err   error
}

// Result é o desfecho do job de um banco.
type Result struct {
	Database   string
	ReadPath   string
	OutputPath string
	Elapsed    time.Duration
	Tables     []TableResult
	Err        error
}

func (r Result) OK() bool { return r.Err == nil }

// FailedTables conta as tabelas puladas por erro.
func (r Result) FailedTables() int {
	n := 0
	for _, t := range r.Tables {
		if t.Err != nil {
			n++
		}
	}
	return n
}

// DatabaseGenerator gera o documento de um banco, uma tabela por vez.
type DatabaseGenerator struct {
	Layout layout.Layout
	Source TableSource
	Tables *TableGenerator
	Logger *log.Logger
}

// Run nunca entra em panic: um panic na geração vira res.Err, preservando os
// caminhos já resolvidos para o relatório.
func (g *DatabaseGenerator) Run(ctx context.Context, db model.DatabaseConfig) (res Result) {
	start := time.Now()

	db = g.Layout.Resolve(db)
	res = Result{
		Database:   db.Db,
		ReadPath:   db.ReadFilePath,
		OutputPath: db.OutputFilePath,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic na geração: %v", r)
		}
		res.Elapsed = time.Since(start)
	}()

	res.Err = g.run(ctx, db, &res)
	return res
}

func (g *DatabaseGenerator) run(ctx context.Context, db model.DatabaseConfig, res *Result) error {
	suffix, err := rules.ValidateDatabase(db)
	if err != nil {
		return err
	}
	db.Suffix = suffix

	if err := ensureDir(db.OutputDir); err != nil {
		return fmt.Errorf("criando diretório de saída %s: %w", db.OutputDir, err)
	}

	tables, err := g.Source.LoadTables(db.Db, db.ReadFilePath)
	if err != nil {
		return err
	}
	db.Tables = tables

	return g.writeDocument(ctx, db, res)
}

// writeDocument grava as tabelas na ordem do config. O arquivo é sempre
// descarregado e fechado, mesmo se alguma tabela falhar.
func (g *DatabaseGenerator) writeDocument(ctx context.Context, db model.DatabaseConfig, res *Result) (err error) {
	f, err := createOutput(db.OutputFilePath)
	if err != nil {
		return fmt.Errorf("criando arquivo de saída %s: %w", db.OutputFilePath, err)
	}
	w := bufio.NewWriter(f)
	defer func() {
		closeErr := errors.Join(w.Flush(), f.Close())
		if err == nil && closeErr != nil {
			err = fmt.Errorf("finalizando %s: %w", db.OutputFilePath, closeErr)
		}
	}()

	l := logger(g.Logger)
	for _, t := range db.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}

		tableErr := g.Tables.Generate(ctx, db, t, w)
		res.Tables = append(res.Tables, TableResult{Table: t.Table, Err: tableErr})
		if tableErr != nil {
			l.Printf("[db=%s] %s contém erros: %v", db.Db, db.ReadFilePath, tableErr)
		}
	}

	return nil
}
