package model

import (
	"sort"
	"strings"
)

// DatabaseConfig descreve um job de geração: um banco, um arquivo de saída.
// ReadFilePath, OutputFilePath e Suffix são sempre derivados (layout/rules),
// nunca lidos do YAML.
type DatabaseConfig struct {
	Db                   string   `yaml:"db"`
	ConnectionString     string   `yaml:"connectionString"`
	ReadDirLevels        []string `yaml:"readDirLevels"`
	ReadFileName         string   `yaml:"readFileName"`
	OutputDir            string   `yaml:"outputDir,omitempty"`
	OutputFileName       string   `yaml:"outputFileName,omitempty"`
	OutputFileNameSuffix string   `yaml:"outputFileNameSuffix,omitempty"`

	Suffix         FileSuffix    `yaml:"-"`
	ReadFilePath   string        `yaml:"-"`
	OutputFilePath string        `yaml:"-"`
	Tables         []TableConfig `yaml:"-"`
}

type Limit struct {
	Offset int `yaml:"offset" json:"offset"`
	Count  int `yaml:"count" json:"count"`
}

// TableConfig é a extração configurada para uma tabela.
// Com NeedAllFields=false, Fields precisa estar preenchido.
type TableConfig struct {
	Table             string        `yaml:"table"`
	Fields            []FieldConfig `yaml:"fields,omitempty"`
	SelectConditions  []string      `yaml:"selectConditions,omitempty"`
	OrderByConditions []string      `yaml:"orderByConditions,omitempty"`
	Limit             Limit         `yaml:"limit"`
	NeedAllFields     bool          `yaml:"needAllFields"`
}

// FieldNames retorna os nomes dos campos na ordem configurada.
func (t TableConfig) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		names = append(names, f.Name)
	}
	return names
}

type FieldConfig struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias,omitempty"`
}

// Title é o texto exibido no documento: alias quando existir.
func (f FieldConfig) Title() string {
	if strings.TrimSpace(f.Alias) != "" {
		return f.Alias
	}
	return f.Name
}

// SchemaFieldInfo é uma coluna obtida por introspecção.
type SchemaFieldInfo struct {
	Field    string
	Order    int
	DataType string
	Nullable bool
}

// Schema indexa as colunas de uma tabela pelo nome.
type Schema map[string]SchemaFieldInfo

// Has informa se a coluna existe na tabela.
func (s Schema) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// Ordered retorna as colunas por Order crescente (empate: nome).
func (s Schema) Ordered() []SchemaFieldInfo {
	out := make([]SchemaFieldInfo, 0, len(s))
	for _, f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// QueryResult é o resultado de uma consulta, consumido logo em seguida pelo renderer.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}
