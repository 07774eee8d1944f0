package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sqlinfogen/internal/model"
)

// EnvVar documenta uma variável de ambiente lida pelo sqlinfogen.
type EnvVar struct {
	Key         string
	Default     string
	Description string
}

var EnvVars = []EnvVar{
	{"SQLINFOGEN_OUTPUT_DIR", "output", "pasta dos documentos quando outputDir é vazio ou default"},
	{"SQLINFOGEN_OUTPUT_PREFIX", "sqlinfo_", "nome padrão do documento = prefixo + db"},
	{"SQLINFOGEN_OUTPUT_SUFFIX", "md", "formato padrão (md ou html)"},
	{"SQLINFOGEN_MAX_CONCURRENCY", "nº de CPUs", "máximo de bancos gerados ao mesmo tempo"},
	{"SQLINFOGEN_STRICT", "false", "sai com erro se algum banco falhar"},
	{"SQLINFOGEN_GIT_REPO_URL", "", "repositório usado por --publish"},
	{"SQLINFOGEN_GIT_BASE_BRANCH", "main", "branch base da publicação"},
	{"SQLINFOGEN_GIT_BRANCH_PREFIX", "sqlinfo-", "prefixo da branch de trabalho"},
	{"SQLINFOGEN_GIT_LOCAL_PATH", "sqlinfo-repo", "clone local (relativo ao binário)"},
	{"SQLINFOGEN_GIT_USER_NAME", "", "autor dos commits"},
	{"SQLINFOGEN_GIT_USER_EMAIL", "", "e-mail do autor dos commits"},
	{"SQLSERVER_{ALIAS}_HOST/_USER/_PASSWORD/_PORT", "porta 1433", "credenciais de sqlserver-alias://ALIAS/database"},
}

// LintEnv interpreta o conteúdo de um .env como o godotenv faz no startup.
// Erro de sintaxe volta como erro; valores que o sqlinfogen não entenderia
// voltam como avisos.
func LintEnv(content string) (map[string]string, []string, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, nil, err
	}

	known := map[string]bool{}
	for _, v := range EnvVars {
		known[v.Key] = true
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []string
	for _, k := range keys {
		v := strings.TrimSpace(vars[k])
		switch {
		case strings.HasPrefix(k, "SQLINFOGEN_") && !known[k]:
			warnings = append(warnings, fmt.Sprintf("%s não é lida pelo sqlinfogen", k))
		case k == "SQLINFOGEN_MAX_CONCURRENCY" && v != "":
			if _, err := strconv.Atoi(v); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s deve ser um inteiro (valor=%q)", k, v))
			}
		case k == "SQLINFOGEN_STRICT" && v != "":
			if _, ok := parseBool(v); !ok {
				warnings = append(warnings, fmt.Sprintf("%s deve ser true/false (valor=%q)", k, v))
			}
		case k == "SQLINFOGEN_OUTPUT_SUFFIX" && v != "":
			if _, ok := model.ParseFileSuffix(v); !ok {
				warnings = append(warnings, fmt.Sprintf("%s [%s] ainda não é suportado", k, v))
			}
		}
	}

	return vars, warnings, nil
}
