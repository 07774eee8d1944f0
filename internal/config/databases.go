package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sqlinfogen/internal/layout"
	"sqlinfogen/internal/model"
)

type DatabasesFile struct {
	Databases []model.DatabaseConfig `yaml:"databases"`
}

func LoadDatabases(path string) (*DatabasesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDatabases(data)
}

func ParseDatabases(data []byte) (*DatabasesFile, error) {
	var f DatabasesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LintDatabases aponta problemas estruturais do databases.yaml (db vazio,
// db duplicado, dois bancos gravando no mesmo arquivo). São apenas avisos:
// cada banco ainda passa pela validação própria na hora da geração.
func LintDatabases(f *DatabasesFile) []string {
	var problems []string

	if len(f.Databases) == 0 {
		problems = append(problems, "nenhum banco definido em databases")
	}

	seenDbs := map[string]bool{}
	seenOutputs := map[string]string{}

	for i, db := range f.Databases {
		ctx := fmt.Sprintf("databases[%d] (db=%s)", i, db.Db)

		name := strings.TrimSpace(db.Db)
		if name == "" {
			problems = append(problems, ctx+": db vazio")
		} else {
			upper := strings.ToUpper(name)
			if seenDbs[upper] {
				problems = append(problems, fmt.Sprintf("%s: db duplicado %q", ctx, name))
			} else {
				seenDbs[upper] = true
			}
		}

		if strings.TrimSpace(db.ReadFileName) == "" {
			problems = append(problems, ctx+": readFileName vazio")
		}

		// só dá para comparar saídas configuradas explicitamente
		if explicit(db.OutputDir) && explicit(db.OutputFileName) {
			key := strings.ToLower(db.OutputDir + "|" + db.OutputFileName + "|" + db.OutputFileNameSuffix)
			if other, ok := seenOutputs[key]; ok {
				problems = append(problems, fmt.Sprintf("%s: mesmo arquivo de saída que db=%s", ctx, other))
			} else {
				seenOutputs[key] = db.Db
			}
		}
	}

	return problems
}

func explicit(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != layout.DefaultName
}
