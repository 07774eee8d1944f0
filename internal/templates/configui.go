package templates

import "html/template"

// ConfigUITemplate é a página do cmd/config-ui. Recebe o pageData de lá.
var ConfigUITemplate = template.Must(template.New("configui").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8" />
  <title>sqlinfogen · configuração</title>
  <script src="https://unpkg.com/htmx.org@1.9.12" integrity="sha384-+oqoEcJ7+9P+Dg8M0Zy07lzeppoea4T1aI6+RaeMn7nSMeKMKCXmqJazM3QCwFS9" crossorigin="anonymous"></script>
  <style>
    body { font-family: system-ui, sans-serif; margin: 24px auto; max-width: 1200px; color: #1f2937; }
    section { border: 1px solid #d1d5db; border-radius: 8px; padding: 12px 16px; margin-bottom: 20px; }
    textarea { width: 100%; min-height: 280px; font-family: ui-monospace, monospace; box-sizing: border-box; }
    table.vars { border-collapse: collapse; width: 100%; font-size: 13px; }
    table.vars td, table.vars th { border-bottom: 1px solid #e5e7eb; padding: 4px 6px; text-align: left; }
    .status { margin-top: 6px; padding: 6px 8px; border-radius: 6px; font-size: 13px; }
    .status.ok { background: #dcfce7; }
    .status.err { background: #fee2e2; }
    .muted { color: #6b7280; font-size: 13px; }
  </style>
</head>
<body>
  <h1>sqlinfogen</h1>
  <p class="muted">Arquivos lidos pelo gerador: <code>{{ .Env.Path }}</code> e <code>{{ .Databases.Path }}</code>.</p>

  <section>
    <h2>databases.yaml</h2>
    <p class="muted">Um item por banco: db, connectionString, readDirLevels, readFileName e, opcionalmente, outputDir / outputFileName / outputFileNameSuffix (vazio ou "default" usa o padrão do .env).</p>
    <form hx-post="/save-databases" hx-target="#databases-status" hx-swap="innerHTML">
      <textarea name="databases_content" spellcheck="false">{{ .Databases.Content }}</textarea>
      <button type="submit">Validar e salvar</button>
      <div id="databases-status" class="muted">{{ .Databases.Status }}</div>
    </form>
  </section>

  <section>
    <h2>.env</h2>
    <form hx-post="/save-env" hx-target="#env-status" hx-swap="innerHTML">
      <textarea name="env_content" spellcheck="false">{{ .Env.Content }}</textarea>
      <button type="submit">Validar e salvar</button>
      <div id="env-status" class="muted">{{ .Env.Status }}</div>
    </form>

    <table class="vars">
      <thead><tr><th>Variável</th><th>No arquivo</th><th>Padrão</th><th>Uso</th></tr></thead>
      <tbody>
{{- range .Vars }}
        <tr><td><code>{{ .Key }}</code></td><td>{{ if .Set }}<code>{{ .Value }}</code>{{ else }}-{{ end }}</td><td>{{ .Default }}</td><td>{{ .Description }}</td></tr>
{{- end }}
      </tbody>
    </table>
  </section>
</body>
</html>
`))
