package generator

import (
	"log"
	"os"
	"path/filepath"
)

// ensureDir cria a pasta de saída (e as intermediárias) se não existir.
func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// createOutput cria ou trunca o documento de saída.
func createOutput(path string) (*os.File, error) {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func logger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
