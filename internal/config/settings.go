package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"

	"sqlinfogen/internal/layout"
)

// Settings são as configurações de processo (não variam por banco).
type Settings struct {
	Defaults       layout.Defaults
	MaxConcurrency int
	Strict         bool // sai com erro se algum banco falhar
}

// LoadDotEnv carrega o .env ao lado do executável e depois o da pasta atual.
// Arquivos ausentes são ignorados; variáveis já definidas não são sobrescritas.
func LoadDotEnv() {
	if execPath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(execPath), ".env"))
	}
	_ = godotenv.Load()
}

// LoadSettings lê as configurações de processo do ambiente.
func LoadSettings() (Settings, error) {
	maxConc, err := GetEnvInt("SQLINFOGEN_MAX_CONCURRENCY", runtime.NumCPU())
	if err != nil {
		return Settings{}, err
	}
	if maxConc < 1 {
		maxConc = 1
	}

	return Settings{
		Defaults: layout.Defaults{
			OutputDir:            GetEnvOrDefault("SQLINFOGEN_OUTPUT_DIR", "output"),
			OutputFileNamePrefix: GetEnvOrDefault("SQLINFOGEN_OUTPUT_PREFIX", "sqlinfo_"),
			OutputFileNameSuffix: GetEnvOrDefault("SQLINFOGEN_OUTPUT_SUFFIX", "md"),
		},
		MaxConcurrency: maxConc,
		Strict:         GetEnvBool("SQLINFOGEN_STRICT", false),
	}, nil
}
