package rules

import (
	"errors"
	"fmt"
	"strings"

	"sqlinfogen/internal/model"
)

var (
	ErrEmptyConnectionString = errors.New("parâmetro ConnectionString não configurado")
	ErrUnsupportedSuffix     = errors.New("OutputFileNameSuffix não suportado")
	ErrEmptyTableName        = errors.New("Table não pode ficar vazio")
	ErrMissingFields         = errors.New("com NeedAllFields = false, Fields é obrigatório")
	ErrUnknownFields         = errors.New("campos inexistentes na tabela")
	ErrInvalidLimit          = errors.New("Limit inválido")
)

type UnsupportedSuffixError struct {
	Suffix string
}

func (e *UnsupportedSuffixError) Error() string {
	return fmt.Sprintf("OutputFileNameSuffix [%s] ainda não é suportado", e.Suffix)
}

func (e *UnsupportedSuffixError) Is(target error) bool { return target == ErrUnsupportedSuffix }

// UnknownFieldsError lista, na ordem do config, os campos que não existem no schema real.
type UnknownFieldsError struct {
	Table  string
	Fields []string
}

func (e *UnknownFieldsError) Error() string {
	return fmt.Sprintf("campos inexistentes em %s: %s. Verifique a configuração.",
		e.Table, strings.Join(e.Fields, ","))
}

func (e *UnknownFieldsError) Is(target error) bool { return target == ErrUnknownFields }

type InvalidLimitError struct {
	Limit model.Limit
}

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("Limit inválido (offset=%d, count=%d): Offset deve ser >= 0 e Count > 0",
		e.Limit.Offset, e.Limit.Count)
}

func (e *InvalidLimitError) Is(target error) bool { return target == ErrInvalidLimit }

// ValidateDatabase confere o config de um banco e devolve o sufixo resolvido.
func ValidateDatabase(cfg model.DatabaseConfig) (model.FileSuffix, error) {
	if strings.TrimSpace(cfg.ConnectionString) == "" {
		return model.SuffixUnknown, ErrEmptyConnectionString
	}

	suffix, ok := model.ParseFileSuffix(cfg.OutputFileNameSuffix)
	if !ok {
		return model.SuffixUnknown, &UnsupportedSuffixError{Suffix: cfg.OutputFileNameSuffix}
	}

	return suffix, nil
}

// ValidateTable confere o config de uma tabela contra o schema introspectado.
// As regras rodam em ordem e a primeira violação é retornada.
func ValidateTable(cfg model.TableConfig, schema model.Schema) error {
	if strings.TrimSpace(cfg.Table) == "" {
		return ErrEmptyTableName
	}

	if !cfg.NeedAllFields && len(cfg.Fields) == 0 {
		return ErrMissingFields
	}

	if !cfg.NeedAllFields {
		var missing []string
		for _, f := range cfg.Fields {
			if !schema.Has(f.Name) {
				missing = append(missing, f.Name)
			}
		}
		if len(missing) > 0 {
			return &UnknownFieldsError{Table: cfg.Table, Fields: missing}
		}
	}

	if cfg.Limit.Offset < 0 || cfg.Limit.Count <= 0 {
		return &InvalidLimitError{Limit: cfg.Limit}
	}

	return nil
}
