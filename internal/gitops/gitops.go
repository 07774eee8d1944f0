package gitops

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Config representa as configurações para publicar a documentação num repositório Git.
type Config struct {
	RepoURL      string
	BaseBranch   string
	BranchPrefix string
	LocalPath    string
	UserName     string
	UserEmail    string
}

// LoadConfigFromEnv lê as configurações de publicação das variáveis de ambiente.
// Se SQLINFOGEN_GIT_REPO_URL não estiver definido, retorna (nil, nil) e a publicação fica desabilitada.
func LoadConfigFromEnv() (*Config, error) {
	repo := strings.TrimSpace(os.Getenv("SQLINFOGEN_GIT_REPO_URL"))
	if repo == "" {
		return nil, nil
	}

	return &Config{
		RepoURL:      repo,
		BaseBranch:   envOr("SQLINFOGEN_GIT_BASE_BRANCH", "main"),
		BranchPrefix: envOr("SQLINFOGEN_GIT_BRANCH_PREFIX", "sqlinfo-"),
		LocalPath:    os.Getenv("SQLINFOGEN_GIT_LOCAL_PATH"), // pode ser relativo ao diretório do binário
		UserName:     os.Getenv("SQLINFOGEN_GIT_USER_NAME"),
		UserEmail:    os.Getenv("SQLINFOGEN_GIT_USER_EMAIL"),
	}, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// ResolveLocalPath devolve o caminho absoluto do clone local.
func (c *Config) ResolveLocalPath(execDir string) string {
	p := strings.TrimSpace(c.LocalPath)
	switch {
	case p == "":
		return filepath.Join(execDir, "sqlinfo-repo")
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(execDir, p)
	}
}

// BranchName monta prefix+suffix. Suffix vazio vira o horário de agora.
func (c *Config) BranchName(suffix string, now time.Time) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		suffix = now.Format("20060102-150405")
	} else {
		suffix = strings.ReplaceAll(suffix, " ", "-")
	}
	return c.BranchPrefix + suffix
}

// PrepareRepo garante que o repositório local exista, esteja atualizado
// e faz checkout de uma branch de trabalho baseada em BaseBranch.
// Retorna (localPathResolvido, branchName, erro).
func PrepareRepo(ctx context.Context, cfg *Config, execDir, branchSuffix string) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("config de publicação Git é nil")
	}

	localPath := cfg.ResolveLocalPath(execDir)

	gitDir := filepath.Join(localPath, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		if err := cloneRepo(ctx, cfg, localPath); err != nil {
			return "", "", fmt.Errorf("falha ao clonar repositório: %w", err)
		}
	} else if err == nil {
		if err := runGit(ctx, localPath, "fetch", "--all"); err != nil {
			return "", "", fmt.Errorf("git fetch: %w", err)
		}
		if err := runGit(ctx, localPath, "checkout", cfg.BaseBranch); err != nil {
			return "", "", fmt.Errorf("git checkout %s: %w", cfg.BaseBranch, err)
		}
		if err := runGit(ctx, localPath, "pull", "--ff-only"); err != nil {
			return "", "", fmt.Errorf("git pull: %w", err)
		}
	} else {
		return "", "", fmt.Errorf("erro verificando .git em %s: %w", localPath, err)
	}

	if strings.TrimSpace(cfg.UserName) != "" {
		_ = runGit(ctx, localPath, "config", "user.name", cfg.UserName)
	}
	if strings.TrimSpace(cfg.UserEmail) != "" {
		_ = runGit(ctx, localPath, "config", "user.email", cfg.UserEmail)
	}

	branchName := cfg.BranchName(branchSuffix, time.Now())

	if err := runGit(ctx, localPath, "checkout", "-B", branchName); err != nil {
		return "", "", fmt.Errorf("git checkout -B %s: %w", branchName, err)
	}

	return localPath, branchName, nil
}

// CommitAndPush adiciona todas as mudanças, faz commit (se houver) e dá push.
// Devolve false quando não havia nada para commitar.
func CommitAndPush(ctx context.Context, localPath, branchName, message string) (bool, error) {
	changed, err := HasPendingChanges(ctx, localPath)
	if err != nil {
		return false, fmt.Errorf("checando mudanças no git: %w", err)
	}
	if !changed {
		log.Printf("[git] nenhum arquivo modificado em %s, nada para commitar", localPath)
		return false, nil
	}

	if err := runGit(ctx, localPath, "add", "."); err != nil {
		return false, fmt.Errorf("git add: %w", err)
	}
	if err := runGit(ctx, localPath, "commit", "-m", message); err != nil {
		return false, fmt.Errorf("git commit: %w", err)
	}
	if err := runGit(ctx, localPath, "push", "-u", "origin", branchName); err != nil {
		return false, fmt.Errorf("git push: %w", err)
	}

	return true, nil
}

func cloneRepo(ctx context.Context, cfg *Config, localPath string) error {
	parent := filepath.Dir(localPath)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("criando diretório pai %s: %w", parent, err)
	}

	// Diretório não vazio: melhor falhar do que clonar por cima de algo inesperado
	if fi, err := os.Stat(localPath); err == nil && fi.IsDir() {
		if entries, err := os.ReadDir(localPath); err == nil && len(entries) > 0 {
			return fmt.Errorf("diretório %s já existe e não está vazio (não é seguro clonar aqui)", localPath)
		}
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--branch", cfg.BaseBranch, cfg.RepoURL, localPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func runGit(ctx context.Context, localPath string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = localPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// HasPendingChanges verifica se há mudanças não commitadas no repositório.
func HasPendingChanges(ctx context.Context, localPath string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = localPath

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return false, err
	}

	return strings.TrimSpace(out.String()) != "", nil
}
