package generator

import "sqlinfogen/internal/model"

// Reconcile expande NeedAllFields para todas as colunas do schema, na ordem
// das colunas, mantendo o alias que o usuário tenha configurado para cada campo.
// Sem NeedAllFields a tabela volta como está. A entrada nunca é alterada.
func Reconcile(t model.TableConfig, schema model.Schema) model.TableConfig {
	if !t.NeedAllFields {
		return t
	}

	fields := make([]model.FieldConfig, 0, len(schema))
	for _, info := range schema.Ordered() {
		f := model.FieldConfig{Name: info.Field}
		for _, configured := range t.Fields {
			if configured.Name == info.Field {
				f.Alias = configured.Alias
				break
			}
		}
		fields = append(fields, f)
	}

	out := t
	out.Fields = fields
	return out
}
