package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func RequireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("variável de ambiente obrigatória %s não definida", key)
	}
	return v, nil
}

// GetEnvInt lê um inteiro do ambiente; vazio devolve def.
func GetEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser um inteiro (valor=%q): %w", key, v, err)
	}
	return n, nil
}

// GetEnvBool aceita true/1/yes/y e false/0/no/n; vazio ou outro valor devolve def.
func GetEnvBool(key string, def bool) bool {
	if v, ok := parseBool(os.Getenv(key)); ok {
		return v
	}
	return def
}

func parseBool(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}
