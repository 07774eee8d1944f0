package dbclient

import (
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sqlinfogen/internal/sqlgen"
)

var postgresEngine = engine{
	driverName: "pgx",
	dialect:    sqlgen.DialectPostgres,
	columnsQuery: `
SELECT
  ordinal_position,
  column_name,
  data_type,
  CASE WHEN is_nullable = 'YES' THEN 1 ELSE 0 END
FROM information_schema.columns
WHERE table_name = $1
  AND table_schema = COALESCE(NULLIF($2::text, ''), current_schema())
ORDER BY ordinal_position;
`,
	dsn: func(connStr string) (string, error) { return strings.TrimSpace(connStr), nil },
}
