package dbclient

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"

	"sqlinfogen/internal/config"
	"sqlinfogen/internal/sqlgen"
)

// sqlserverAliasScheme monta a conexão a partir das envs do alias, para não
// deixar senha no databases.yaml:
//
//	sqlserver-alias://CRM/crmb001d -> SQLSERVER_CRM_HOST / _USER / _PASSWORD / _PORT
const sqlserverAliasScheme = "sqlserver-alias://"

const sqlserverColumnsQuery = `
SELECT
  ORDINAL_POSITION,
  COLUMN_NAME,
  DATA_TYPE,
  CASE WHEN IS_NULLABLE = 'YES' THEN 1 ELSE 0 END
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_NAME = @p1
  AND TABLE_SCHEMA = COALESCE(NULLIF(@p2, ''), SCHEMA_NAME())
ORDER BY ORDINAL_POSITION;
`

var sqlserverEngine = engine{
	driverName:   "sqlserver",
	dialect:      sqlgen.DialectSQLServer,
	columnsQuery: sqlserverColumnsQuery,
	dsn:          func(connStr string) (string, error) { return strings.TrimSpace(connStr), nil },
}

var sqlserverAliasEngine = engine{
	driverName:   "sqlserver",
	dialect:      sqlgen.DialectSQLServer,
	columnsQuery: sqlserverColumnsQuery,
	dsn:          sqlserverAliasDSN,
}

func sqlserverAliasDSN(connStr string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(connStr))
	if err != nil {
		return "", fmt.Errorf("connection string de alias inválida: %w", err)
	}
	alias := u.Host
	database := strings.Trim(u.Path, "/")
	if alias == "" || database == "" {
		return "", fmt.Errorf("connection string de alias deve ser %sALIAS/database", sqlserverAliasScheme)
	}
	return SQLServerURLFromAlias(alias, database)
}

// SQLServerURLFromAlias monta a URL sqlserver:// a partir de
// SQLSERVER_{ALIAS}_HOST/USER/PASSWORD (PORT opcional, padrão 1433).
func SQLServerURLFromAlias(alias, database string) (string, error) {
	upper := strings.ToUpper(alias)

	host, err := config.RequireEnv("SQLSERVER_" + upper + "_HOST")
	if err != nil {
		return "", err
	}
	user, err := config.RequireEnv("SQLSERVER_" + upper + "_USER")
	if err != nil {
		return "", err
	}
	password, err := config.RequireEnv("SQLSERVER_" + upper + "_PASSWORD")
	if err != nil {
		return "", err
	}
	port := config.GetEnvOrDefault("SQLSERVER_"+upper+"_PORT", "1433")

	query := url.Values{}
	query.Add("database", database)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}
