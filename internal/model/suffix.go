package model

import "strings"

// FileSuffix identifica o formato do documento gerado.
type FileSuffix int

const (
	SuffixUnknown FileSuffix = iota
	SuffixMarkdown
	SuffixHTML
)

var suffixNames = map[FileSuffix]string{
	SuffixMarkdown: "md",
	SuffixHTML:     "html",
}

// ParseFileSuffix mapeia o sufixo informado no config para um formato suportado.
// Aceita maiúsculas/minúsculas e um "." inicial ("MD", ".md").
func ParseFileSuffix(raw string) (FileSuffix, bool) {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
	for suffix, name := range suffixNames {
		if s == name {
			return suffix, true
		}
	}
	return SuffixUnknown, false
}

func (s FileSuffix) String() string {
	if name, ok := suffixNames[s]; ok {
		return name
	}
	return "unknown"
}
