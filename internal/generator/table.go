package generator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"sqlinfogen/internal/model"
	"sqlinfogen/internal/render"
	"sqlinfogen/internal/rules"
	"sqlinfogen/internal/sqlgen"
)

type SchemaIntrospector interface {
	TableSchema(ctx context.Context, table, connStr string) (model.Schema, error)
}

type QueryExecutor interface {
	Query(ctx context.Context, query, connStr string) (*model.QueryResult, error)
}

// dialecter é implementado por executores que sabem o dialeto da conexão.
type dialecter interface {
	Dialect(connStr string) sqlgen.Dialect
}

// TableGenerator gera o trecho do documento de uma tabela.
type TableGenerator struct {
	Introspector SchemaIntrospector
	Executor     QueryExecutor
	Renderers    render.Registry
}

// Generate: schema -> validação -> reconciliação -> SQL -> consulta -> render -> escrita.
// Qualquer falha interrompe só esta tabela e volta como erro.
func (g *TableGenerator) Generate(ctx context.Context, db model.DatabaseConfig, table model.TableConfig, w io.Writer) error {
	var schema model.Schema
	if strings.TrimSpace(table.Table) != "" {
		var err error
		schema, err = g.Introspector.TableSchema(ctx, table.Table, db.ConnectionString)
		if err != nil {
			return fmt.Errorf("obtendo schema de %s: %w", table.Table, err)
		}
	}

	if err := rules.ValidateTable(table, schema); err != nil {
		return err
	}

	table = Reconcile(table, schema)

	query := sqlgen.BuildQueryFor(table, g.dialect(db.ConnectionString))

	rows, err := g.Executor.Query(ctx, query, db.ConnectionString)
	if err != nil {
		return fmt.Errorf("consultando %s: %w", table.Table, err)
	}

	content, err := g.Renderers.Render(db.Suffix, table, rows, schema)
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("escrevendo %s: %w", table.Table, err)
	}
	return nil
}

func (g *TableGenerator) dialect(connStr string) sqlgen.Dialect {
	if d, ok := g.Executor.(dialecter); ok {
		return d.Dialect(connStr)
	}
	return sqlgen.DialectDefault
}
