package templates

import "html/template"

var HTMLTemplate = template.Must(template.New("html").Parse(`
<section class="table" id="{{ .Table }}">
  <h2>{{ .Table }}</h2>
  <table class="columns">
    <thead><tr><th>Campo</th><th>Nome</th><th>Tipo</th><th>Nulo</th></tr></thead>
    <tbody>
{{- range .Columns }}
      <tr><td>{{ .Name }}</td><td>{{ .Title }}</td><td>{{ .DataType }}</td><td>{{ if .Nullable }}sim{{ else }}não{{ end }}</td></tr>
{{- end }}
    </tbody>
  </table>
  <p>Amostra: {{ len .Rows }} linha(s), offset {{ .Offset }}</p>
  <table class="sample">
    <thead><tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr></thead>
    <tbody>
{{- range .Rows }}
      <tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
{{- end }}
    </tbody>
  </table>
</section>
`[1:]))
