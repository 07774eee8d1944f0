package sqlgen

import (
	"fmt"
	"strings"

	"sqlinfogen/internal/model"
)

// Dialect decide apenas como a paginação é escrita.
type Dialect int

const (
	// DialectDefault: "limit offset, count" (MySQL/SQLite).
	DialectDefault Dialect = iota
	DialectPostgres
	DialectSQLServer
)

// BuildQuery monta o select de uma tabela no dialeto padrão.
// Os Fields já devem estar reconciliados (NeedAllFields expandido).
func BuildQuery(t model.TableConfig) string {
	return BuildQueryFor(t, DialectDefault)
}

// BuildQueryFor monta o select para o dialeto informado. Condições e ordenações
// vêm do config e entram no SQL exatamente como foram escritas.
func BuildQueryFor(t model.TableConfig, d Dialect) string {
	var b strings.Builder

	b.WriteString("select ")
	b.WriteString(strings.Join(t.FieldNames(), ","))
	fmt.Fprintf(&b, " from %s ", t.Table)

	if len(t.SelectConditions) > 0 {
		conds := make([]string, 0, len(t.SelectConditions))
		for _, c := range t.SelectConditions {
			conds = append(conds, fmt.Sprintf(" (%s) ", c))
		}
		fmt.Fprintf(&b, " where %s", strings.Join(conds, " and "))
	}

	if len(t.OrderByConditions) > 0 {
		fmt.Fprintf(&b, " order by %s", strings.Join(t.OrderByConditions, ", "))
	} else if d == DialectSQLServer {
		// OFFSET/FETCH exige ORDER BY
		b.WriteString(" order by (select null)")
	}

	switch d {
	case DialectPostgres:
		fmt.Fprintf(&b, " limit %d offset %d", t.Limit.Count, t.Limit.Offset)
	case DialectSQLServer:
		fmt.Fprintf(&b, " offset %d rows fetch next %d rows only", t.Limit.Offset, t.Limit.Count)
	default:
		fmt.Fprintf(&b, " limit %d, %d", t.Limit.Offset, t.Limit.Count)
	}

	return b.String()
}

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	case DialectSQLServer:
		return "sqlserver"
	default:
		return "default"
	}
}
