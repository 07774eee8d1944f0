package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FileName = "index.yaml"
	Kind     = "SqlInfoIndex"
)

type Index struct {
	Kind      string   `yaml:"kind,omitempty"`
	Title     string   `yaml:"title,omitempty"`
	Documents []string `yaml:"documents,omitempty"`
}

// UpdateIndex garante que o index.yaml da pasta `dir` exista e contenha todos
// os documentos informados em `newFiles` (só nomes de arquivo). Entradas já
// existentes são mantidas na ordem em que estão; as novas vão para o fim.
// title: se != "" e o índice ainda não tiver título, ele seta.
func UpdateIndex(dir string, newFiles []string, title string) error {
	uniqNew := dedupe(newFiles)
	if len(uniqNew) == 0 {
		return nil
	}

	ipath := filepath.Join(dir, FileName)
	idx, err := Load(ipath)
	if err != nil {
		return err
	}

	if idx.Kind == "" {
		idx.Kind = Kind
	}
	if title != "" && idx.Title == "" {
		idx.Title = title
	}

	existing := map[string]struct{}{}
	for _, d := range idx.Documents {
		existing[strings.TrimSpace(d)] = struct{}{}
	}
	for _, f := range uniqNew {
		if _, ok := existing[f]; !ok {
			idx.Documents = append(idx.Documents, f)
		}
	}

	out, err := yaml.Marshal(&idx)
	if err != nil {
		return fmt.Errorf("falha ao serializar índice: %w", err)
	}
	if err := os.WriteFile(ipath, out, 0o644); err != nil {
		return fmt.Errorf("falha ao escrever %s: %w", ipath, err)
	}
	return nil
}

// Load lê um index.yaml; arquivo inexistente devolve um índice vazio.
func Load(path string) (Index, error) {
	var idx Index

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return idx, fmt.Errorf("erro lendo %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("falha ao parsear %s: %w", path, err)
	}
	return idx, nil
}

// GroupByDir agrupa caminhos de documentos pela pasta, com nomes de arquivo
// ordenados para que o índice não dependa da ordem de término dos bancos.
func GroupByDir(paths []string) map[string][]string {
	groups := map[string][]string{}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		dir := filepath.Dir(p)
		groups[dir] = append(groups[dir], filepath.Base(p))
	}
	for _, files := range groups {
		sort.Strings(files)
	}
	return groups
}

func dedupe(files []string) []string {
	out := make([]string, 0, len(files))
	seen := map[string]struct{}{}
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
