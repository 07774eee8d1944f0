package templates

import "text/template"

// MarkdownTemplate recebe um render.TableDoc com as células já escapadas.
var MarkdownTemplate = template.Must(template.New("markdown").Parse(`
## {{ .Table }}

| Campo | Nome | Tipo | Nulo |
| --- | --- | --- | --- |
{{ range .Columns }}| {{ .Name }} | {{ .Title }} | {{ .DataType }} | {{ if .Nullable }}sim{{ else }}não{{ end }} |
{{ end }}
Amostra: {{ len .Rows }} linha(s), offset {{ .Offset }}

|{{ range .Headers }} {{ . }} |{{ end }}
|{{ range .Headers }} --- |{{ end }}
{{ range .Rows }}|{{ range . }} {{ . }} |{{ end }}
{{ end }}
`[1:]))
