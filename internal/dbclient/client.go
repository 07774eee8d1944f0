package dbclient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"sqlinfogen/internal/model"
	"sqlinfogen/internal/sqlgen"
)

// engine descreve como falar com um tipo de banco.
type engine struct {
	driverName    string
	dialect       sqlgen.Dialect
	columnsQuery  string // args: tabela, schema; colunas: ordem, nome, tipo, nulo (0/1)
	defaultSchema string
	dsn           func(connStr string) (string, error)
}

// Client implementa introspecção de schema e execução de consultas sobre database/sql.
// Cada connection string abre um *sql.DB, reaproveitado até Close.
type Client struct {
	mu  sync.Mutex
	dbs map[string]*sql.DB
}

func New() *Client {
	return &Client{dbs: make(map[string]*sql.DB)}
}

func engineFor(connStr string) (engine, error) {
	lower := strings.ToLower(strings.TrimSpace(connStr))
	switch {
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return sqliteEngine, nil
	case strings.HasPrefix(lower, "sqlserver://"):
		return sqlserverEngine, nil
	case strings.HasPrefix(lower, sqlserverAliasScheme):
		return sqlserverAliasEngine, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgresEngine, nil
	}
	return engine{}, fmt.Errorf("connection string com esquema não suportado (use sqlite://, file:, sqlserver://, %s ou postgres://)", sqlserverAliasScheme)
}

// Dialect informa o dialeto de paginação da connection string.
func (c *Client) Dialect(connStr string) sqlgen.Dialect {
	e, err := engineFor(connStr)
	if err != nil {
		return sqlgen.DialectDefault
	}
	return e.dialect
}

func (c *Client) open(ctx context.Context, connStr string) (*sql.DB, engine, error) {
	e, err := engineFor(connStr)
	if err != nil {
		return nil, engine{}, err
	}

	c.mu.Lock()
	db, ok := c.dbs[connStr]
	c.mu.Unlock()
	if ok {
		return db, e, nil
	}

	dsn, err := e.dsn(connStr)
	if err != nil {
		return nil, engine{}, err
	}

	db, err = sql.Open(e.driverName, dsn)
	if err != nil {
		return nil, engine{}, fmt.Errorf("abrindo conexão %s: %w", e.driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, engine{}, fmt.Errorf("conectando no banco (%s): %w", e.driverName, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// outra goroutine pode ter aberto a mesma conexão enquanto pingávamos
	if existing, ok := c.dbs[connStr]; ok {
		_ = db.Close()
		return existing, e, nil
	}
	c.dbs[connStr] = db
	return db, e, nil
}

// TableSchema devolve as colunas da tabela indexadas pelo nome.
// Aceita "schema.tabela"; sem schema, usa o padrão da conexão.
func (c *Client) TableSchema(ctx context.Context, table, connStr string) (model.Schema, error) {
	db, e, err := c.open(ctx, connStr)
	if err != nil {
		return nil, err
	}

	schemaName, tableName := splitTable(table, e.defaultSchema)

	rows, err := db.QueryContext(ctx, e.columnsQuery, tableName, schemaName)
	if err != nil {
		return nil, fmt.Errorf("lendo colunas de %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	schema := make(model.Schema)
	for rows.Next() {
		var (
			info     model.SchemaFieldInfo
			dataType sql.NullString
			nullable int64
		)
		if err := rows.Scan(&info.Order, &info.Field, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("lendo coluna de %s: %w", table, err)
		}
		info.DataType = dataType.String
		info.Nullable = nullable != 0
		schema[info.Field] = info
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("nenhuma coluna encontrada para %s", table)
	}

	return schema, nil
}

// Query executa o select e devolve as linhas com as colunas nomeadas.
func (c *Client) Query(ctx context.Context, query, connStr string) (*model.QueryResult, error) {
	db, _, err := c.open(ctx, connStr)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executando %q: %w", query, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &model.QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("lendo linha: %w", err)
		}
		for i, v := range values {
			// o driver pode reutilizar o buffer de []byte
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}

// Close fecha todas as conexões abertas.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for connStr, db := range c.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.dbs, connStr)
	}
	return errors.Join(errs...)
}

func splitTable(table, defaultSchema string) (string, string) {
	if i := strings.LastIndex(table, "."); i > 0 {
		return table[:i], table[i+1:]
	}
	return defaultSchema, table
}
