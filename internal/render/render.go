package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"sqlinfogen/internal/model"
	"sqlinfogen/internal/templates"
)

// Renderer transforma uma tabela (config + amostra + schema) em um trecho do documento.
type Renderer interface {
	Render(t model.TableConfig, rows *model.QueryResult, schema model.Schema) (string, error)
}

// Registry escolhe o Renderer pelo sufixo resolvido do banco.
type Registry map[model.FileSuffix]Renderer

// DefaultRegistry registra os formatos suportados.
func DefaultRegistry() Registry {
	return Registry{
		model.SuffixMarkdown: Markdown(),
		model.SuffixHTML:     HTML(),
	}
}

// Render devolve "" quando não há renderer para o sufixo.
func (r Registry) Render(suffix model.FileSuffix, t model.TableConfig, rows *model.QueryResult, schema model.Schema) (string, error) {
	renderer, ok := r[suffix]
	if !ok || renderer == nil {
		return "", nil
	}
	return renderer.Render(t, rows, schema)
}

// TableDoc é o dado entregue aos templates.
type TableDoc struct {
	Table   string
	Offset  int
	Columns []ColumnDoc
	Headers []string
	Rows    [][]string
}

type ColumnDoc struct {
	Name     string
	Title    string
	DataType string
	Nullable bool
}

type executor interface {
	Execute(w io.Writer, data any) error
}

type templateRenderer struct {
	tmpl   executor
	escape func(string) string
}

func Markdown() Renderer {
	return templateRenderer{tmpl: templates.MarkdownTemplate, escape: escapeMarkdown}
}

// HTML usa html/template, que já escapa o conteúdo.
func HTML() Renderer {
	return templateRenderer{tmpl: templates.HTMLTemplate, escape: func(s string) string { return s }}
}

func (r templateRenderer) Render(t model.TableConfig, rows *model.QueryResult, schema model.Schema) (string, error) {
	doc := BuildTableDoc(t, rows, schema, r.escape)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("renderizando tabela %s: %w", t.Table, err)
	}
	return buf.String(), nil
}

// BuildTableDoc monta os dados da tabela. Os cabeçalhos da amostra usam o alias
// do campo quando as colunas do resultado batem com os Fields configurados.
func BuildTableDoc(t model.TableConfig, rows *model.QueryResult, schema model.Schema, escape func(string) string) TableDoc {
	doc := TableDoc{
		Table:  escape(t.Table),
		Offset: t.Limit.Offset,
	}

	for _, f := range t.Fields {
		info := schema[f.Name]
		doc.Columns = append(doc.Columns, ColumnDoc{
			Name:     escape(f.Name),
			Title:    escape(f.Title()),
			DataType: escape(info.DataType),
			Nullable: info.Nullable,
		})
	}

	if rows == nil {
		return doc
	}

	sameShape := len(rows.Columns) == len(t.Fields)
	for i, c := range rows.Columns {
		title := c
		if sameShape {
			title = t.Fields[i].Title()
		}
		doc.Headers = append(doc.Headers, escape(title))
	}

	for _, row := range rows.Rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, escape(FormatValue(v)))
		}
		doc.Rows = append(doc.Rows, cells)
	}

	return doc
}

// FormatValue converte um valor lido do banco para texto.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

var markdownReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
	"\r", "<br>",
)

func escapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}
