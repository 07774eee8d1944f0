package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sqlinfogen/internal/config"
	"sqlinfogen/internal/dbclient"
	"sqlinfogen/internal/generator"
	"sqlinfogen/internal/gitops"
	"sqlinfogen/internal/index"
	"sqlinfogen/internal/layout"
	"sqlinfogen/internal/model"
	"sqlinfogen/internal/render"
)

type options struct {
	databasesPath string
	outDir        string
	concurrency   int
	only          []string
	strict        bool
	strictSet     bool
	publish       bool
	branch        string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sqlinfogen [databases.yaml]",
		Short: "Gera documentação (colunas + amostra) das tabelas configuradas de cada banco",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.databasesPath = args[0]
			}
			opts.strictSet = cmd.Flags().Changed("strict")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&opts.databasesPath, "config", "c", "", "caminho do databases.yaml. Se vazio, tenta ao lado do binário e depois na pasta atual")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "pasta base para outputDir relativos. Com --publish, relativa à raiz do repositório")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "máximo de bancos gerados ao mesmo tempo (sobrescreve SQLINFOGEN_MAX_CONCURRENCY)")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "gera apenas os bancos informados (db, separados por vírgula)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "sai com erro se algum banco falhar (padrão: SQLINFOGEN_STRICT)")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "publica os documentos gerados no repositório Git (SQLINFOGEN_GIT_*)")
	cmd.Flags().StringVar(&opts.branch, "branch", "", "sufixo da branch de publicação (padrão: data/hora)")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	execDir := executableDir()

	config.LoadDotEnv()

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("carregando configurações: %w", err)
	}
	if opts.concurrency > 0 {
		settings.MaxConcurrency = opts.concurrency
	}
	if opts.strictSet {
		settings.Strict = opts.strict
	}

	databasesPath, err := resolveDatabasesPath(opts.databasesPath, execDir)
	if err != nil {
		return err
	}

	file, err := config.LoadDatabases(databasesPath)
	if err != nil {
		return fmt.Errorf("carregando %s: %w", databasesPath, err)
	}
	for _, w := range config.LintDatabases(file) {
		log.Printf("[config] aviso: %s", w)
	}

	dbs, missing := selectDatabases(file.Databases, opts.only)
	for _, m := range missing {
		log.Printf("[config] aviso: --only %s não encontrado em %s", m, databasesPath)
	}

	var (
		repoPath, branchName string
		gitCfg               *gitops.Config
	)
	outBase := opts.outDir
	if opts.publish {
		gitCfg, err = gitops.LoadConfigFromEnv()
		if err != nil {
			return fmt.Errorf("carregando configuração de publicação: %w", err)
		}
		if gitCfg == nil {
			return fmt.Errorf("--publish informado mas SQLINFOGEN_GIT_REPO_URL não está configurado")
		}
		repoPath, branchName, err = gitops.PrepareRepo(ctx, gitCfg, execDir, opts.branch)
		if err != nil {
			return fmt.Errorf("erro preparando repositório de publicação: %w", err)
		}
		if !filepath.IsAbs(outBase) {
			outBase = filepath.Join(repoPath, outBase)
		}
	}

	configDir, err := filepath.Abs(filepath.Dir(databasesPath))
	if err != nil {
		return fmt.Errorf("resolvendo pasta de %s: %w", databasesPath, err)
	}

	client := dbclient.New()
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("fechando conexões: %v", err)
		}
	}()

	governor := generator.NewGovernor(settings.MaxConcurrency)
	runner := &generator.BatchRunner{
		Generator: &generator.DatabaseGenerator{
			Layout: layout.NewLayout(configDir, outBase, settings.Defaults),
			Source: config.FileTableSource{},
			Tables: &generator.TableGenerator{
				Introspector: client,
				Executor:     client,
				Renderers:    render.DefaultRegistry(),
			},
		},
		Governor: governor,
	}

	log.Printf("Iniciando geração: config=%s bancos=%d concorrência=%d out=%s publish=%v",
		databasesPath, len(dbs), governor.Limit(), outBase, opts.publish)

	results := runner.Run(ctx, dbs)

	if err := updateIndexes(results); err != nil {
		log.Printf("[index] %v", err)
	}

	ok, failed, skipped := generator.Summary(results)
	log.Printf("Geração concluída. Bancos ok: %d | com erro: %d | tabelas puladas: %d", ok, failed, skipped)

	if opts.publish {
		msg := fmt.Sprintf("Documentação sqlinfo (%d bancos)", ok)
		pushed, err := gitops.CommitAndPush(ctx, repoPath, branchName, msg)
		if err != nil {
			return fmt.Errorf("erro ao publicar: %w", err)
		}
		if pushed {
			log.Printf("Publicação concluída. Branch: %s", branchName)
		}
	}

	if settings.Strict && failed > 0 {
		return fmt.Errorf("%d banco(s) com erro", failed)
	}
	return nil
}

func executableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(execPath)
}

// resolveDatabasesPath: flag/argumento > databases.yaml ao lado do binário > pasta atual
func resolveDatabasesPath(explicit, execDir string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}
	for _, candidate := range []string{
		filepath.Join(execDir, "databases.yaml"),
		"databases.yaml",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("databases.yaml não encontrado ao lado do binário (%s) nem na pasta atual; informe o caminho", execDir)
}

// selectDatabases filtra por --only (sem diferenciar maiúsculas) mantendo a
// ordem do arquivo. Devolve também os nomes pedidos que não existem.
func selectDatabases(dbs []model.DatabaseConfig, only []string) ([]model.DatabaseConfig, []string) {
	if len(only) == 0 {
		return dbs, nil
	}

	wanted := map[string]bool{}
	for _, o := range only {
		if o = strings.TrimSpace(o); o != "" {
			wanted[strings.ToUpper(o)] = false
		}
	}

	var selected []model.DatabaseConfig
	for _, db := range dbs {
		key := strings.ToUpper(strings.TrimSpace(db.Db))
		if _, ok := wanted[key]; ok {
			selected = append(selected, db)
			wanted[key] = true
		}
	}

	var missing []string
	for _, o := range only {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if found := wanted[strings.ToUpper(o)]; !found {
			missing = append(missing, o)
			wanted[strings.ToUpper(o)] = true
		}
	}
	return selected, missing
}

// updateIndexes registra os documentos gerados com sucesso no index.yaml de cada pasta.
func updateIndexes(results []generator.Result) error {
	var paths []string
	for _, r := range results {
		if r.OK() {
			paths = append(paths, r.OutputPath)
		}
	}

	var errs []error
	for dir, files := range index.GroupByDir(paths) {
		if err := index.UpdateIndex(dir, files, ""); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
