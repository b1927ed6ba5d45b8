package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from a struct's `db` tags, so insert column
// lists live next to the model instead of in hand-written SQL.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model must be struct")
	}

	builder := InsertInto(table)
	columns := make([]string, 0, value.NumField())
	row := make([]any, 0, value.NumField())

	for _, field := range reflect.VisibleFields(value.Type()) {
		if field.PkgPath != "" || field.Anonymous {
			continue
		}
		column := dbColumn(field.Tag.Get("db"))
		if column == "" {
			continue
		}
		columns = append(columns, column)
		row = append(row, value.FieldByIndex(field.Index).Interface())
	}

	if len(columns) == 0 {
		return "", nil, fmt.Errorf("model has no db columns")
	}

	return builder.Columns(columns...).Values(row...).Suffix(suffix).ToSQL()
}

func dbColumn(tag string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(tag), ",")
	name = strings.TrimSpace(name)
	if name == "-" {
		return ""
	}
	return name
}
