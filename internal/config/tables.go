package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sqlinfogen/internal/model"
)

// FileTableSource lê o config de tabelas de um arquivo YAML ou JSON.
// A raiz pode ser uma lista de tabelas ou um mapa com a chave "tables".
type FileTableSource struct{}

func (FileTableSource) LoadTables(db, path string) ([]model.TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lendo config de tabelas do banco %s: %w", db, err)
	}

	tables, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("falha ao parsear %s: %w", path, err)
	}
	return tables, nil
}

// ParseTables decodifica o conteúdo de um arquivo de tabelas.
// JSON também é aceito, já que é um subconjunto de YAML.
func ParseTables(data []byte) ([]model.TableConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var tables []model.TableConfig
		if err := doc.Decode(&tables); err != nil {
			return nil, err
		}
		return tables, nil
	case yaml.MappingNode:
		var wrapped struct {
			Tables []model.TableConfig `yaml:"tables"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, err
		}
		return wrapped.Tables, nil
	default:
		return nil, fmt.Errorf("esperado uma lista de tabelas ou a chave tables (linha %d)", doc.Line)
	}
}
