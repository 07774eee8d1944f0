package dbclient

import (
	"strings"

	_ "modernc.org/sqlite"

	"sqlinfogen/internal/sqlgen"
)

var sqliteEngine = engine{
	driverName: "sqlite",
	dialect:    sqlgen.DialectDefault,
	columnsQuery: `
SELECT cid, name, type, CASE WHEN "notnull" = 0 THEN 1 ELSE 0 END
FROM pragma_table_info(?, ?)
ORDER BY cid;
`,
	defaultSchema: "main",
	dsn:           sqliteDSN,
}

// sqlite:///abs/path.db -> /abs/path.db ; file:... segue como está.
func sqliteDSN(connStr string) (string, error) {
	connStr = strings.TrimSpace(connStr)
	if strings.HasPrefix(strings.ToLower(connStr), "sqlite://") {
		return connStr[len("sqlite://"):], nil
	}
	return connStr, nil
}
