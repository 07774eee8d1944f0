package main

import (
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sqlinfogen/internal/config"
	"sqlinfogen/internal/templates"
)

// editable é um arquivo exibido num textarea.
type editable struct {
	Path    string
	Content string
	Status  string
}

type envRow struct {
	config.EnvVar
	Value string
	Set   bool
}

type pageData struct {
	Env       editable
	Databases editable
	Vars      []envRow
}

type server struct {
	envPath       string
	databasesPath string
	mutex         sync.Mutex
}

func main() {
	addr := flag.String("addr", ":8080", "endereço para escutar (ex.: :8080)")
	envPath := flag.String("env", ".env", "caminho do .env lido pelo sqlinfogen")
	databasesPath := flag.String("config", "databases.yaml", "caminho do databases.yaml")
	flag.Parse()

	srv := &server{envPath: *envPath, databasesPath: *databasesPath}

	log.Printf("config-ui disponível em http://localhost%s (env: %s, databases: %s)", *addr, *envPath, *databasesPath)
	log.Fatal(http.ListenAndServe(*addr, srv.routes()))
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /save-env", s.handleSaveEnv)
	mux.HandleFunc("POST /save-databases", s.handleSaveDatabases)
	return mux
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Env:       load(s.envPath),
		Databases: load(s.databasesPath),
	}

	// .env com erro de sintaxe: a tabela mostra só os padrões
	vars, _, _ := config.LintEnv(data.Env.Content)
	for _, v := range config.EnvVars {
		value, set := vars[v.Key]
		data.Vars = append(data.Vars, envRow{EnvVar: v, Value: value, Set: set})
	}

	if err := templates.ConfigUITemplate.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *server) handleSaveEnv(w http.ResponseWriter, r *http.Request) {
	content, ok := formValue(w, r, "env_content")
	if !ok {
		return
	}

	vars, warnings, err := config.LintEnv(content)
	if err != nil {
		http.Error(w, fmt.Sprintf(".env inválido: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.save(s.envPath, content); err != nil {
		http.Error(w, fmt.Sprintf("erro ao salvar .env: %v", err), http.StatusInternalServerError)
		return
	}

	status(w, "ok", fmt.Sprintf(".env salvo em %s (%d variáveis)", s.envPath, len(vars)))
	for _, warn := range warnings {
		status(w, "err", "aviso: "+warn)
	}
}

func (s *server) handleSaveDatabases(w http.ResponseWriter, r *http.Request) {
	content, ok := formValue(w, r, "databases_content")
	if !ok {
		return
	}
	if strings.TrimSpace(content) == "" {
		http.Error(w, "databases.yaml não pode ficar vazio", http.StatusBadRequest)
		return
	}

	file, err := config.ParseDatabases([]byte(content))
	if err != nil {
		http.Error(w, fmt.Sprintf("databases.yaml inválido: %v", err), http.StatusBadRequest)
		return
	}
	if len(file.Databases) == 0 {
		http.Error(w, "databases.yaml inválido: nenhum banco definido em databases", http.StatusBadRequest)
		return
	}

	if err := s.save(s.databasesPath, content); err != nil {
		http.Error(w, fmt.Sprintf("erro ao salvar databases.yaml: %v", err), http.StatusInternalServerError)
		return
	}

	status(w, "ok", fmt.Sprintf("databases.yaml salvo em %s (%d bancos)", s.databasesPath, len(file.Databases)))
	// avisos não bloqueiam: cada banco é validado de novo na geração
	for _, warn := range config.LintDatabases(file) {
		status(w, "err", "aviso: "+warn)
	}
}

func formValue(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form inválido", http.StatusBadRequest)
		return "", false
	}
	return r.FormValue(key), true
}

func status(w io.Writer, class, msg string) {
	fmt.Fprintf(w, `<div class="status %s">%s</div>`, class, template.HTMLEscapeString(msg))
}

func load(path string) editable {
	data, err := os.ReadFile(path)
	if err != nil {
		return editable{Path: path, Status: "arquivo ainda não existe; será criado ao salvar"}
	}
	return editable{Path: path, Content: string(data), Status: "lendo " + path}
}

// save grava num temporário e renomeia: quem lê nunca vê o arquivo pela metade.
func (s *server) save(path, content string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
