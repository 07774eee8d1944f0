package layout

import (
	"path/filepath"
	"strings"

	"sqlinfogen/internal/model"
)

// DefaultName é o marcador que, no config, significa "use o valor padrão".
const DefaultName = "default"

// Defaults são os valores usados quando o config deixa o campo vazio ou "default".
type Defaults struct {
	OutputDir            string // ex: output
	OutputFileNamePrefix string // nome padrão = prefixo + Db
	OutputFileNameSuffix string // ex: md
}

// Layout conhece onde ficam os arquivos de config de tabelas e os documentos gerados.
type Layout struct {
	ConfigDir string // base para ReadDirLevels relativos (pasta do databases.yaml)
	OutputDir string // base para OutputDir relativos (pasta atual ou repo GitOps)
	Defaults  Defaults
}

// configDir: pasta onde está o databases.yaml
// outputDir: base dos documentos; no modo GitOps é a raiz do clone
func NewLayout(configDir, outputDir string, defaults Defaults) Layout {
	return Layout{
		ConfigDir: configDir,
		OutputDir: outputDir,
		Defaults:  defaults,
	}
}

// Resolve devolve uma cópia do config com os padrões aplicados e os caminhos
// de leitura/escrita calculados. O valor recebido não é alterado.
func (l Layout) Resolve(db model.DatabaseConfig) model.DatabaseConfig {
	out := db

	if useDefault(out.OutputDir) {
		out.OutputDir = l.Defaults.OutputDir
	}
	if useDefault(out.OutputFileName) {
		out.OutputFileName = l.Defaults.OutputFileNamePrefix + out.Db
	}
	if useDefault(out.OutputFileNameSuffix) {
		out.OutputFileNameSuffix = l.Defaults.OutputFileNameSuffix
	}
	// ".md" e "md" são o mesmo sufixo
	out.OutputFileNameSuffix = strings.TrimPrefix(strings.TrimSpace(out.OutputFileNameSuffix), ".")

	out.OutputDir = absUnder(l.OutputDir, out.OutputDir)
	out.ReadFilePath = l.ReadFilePath(out)
	out.OutputFilePath = OutputFilePath(out)

	return out
}

// ReadFilePath junta os níveis de diretório com o nome do arquivo de tabelas.
//
//   - readDirLevels: [config, tables], readFileName: shop.yaml
//     <ConfigDir>/config/tables/shop.yaml
func (l Layout) ReadFilePath(db model.DatabaseConfig) string {
	parts := append(append([]string{}, db.ReadDirLevels...), db.ReadFileName)
	return absUnder(l.ConfigDir, filepath.Join(parts...))
}

// OutputFilePath: <OutputDir>/<OutputFileName>.<OutputFileNameSuffix>
func OutputFilePath(db model.DatabaseConfig) string {
	return db.OutputDir + string(filepath.Separator) + db.OutputFileName + "." + db.OutputFileNameSuffix
}

func useDefault(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == DefaultName
}

func absUnder(base, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
