package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and its positional arguments. bind appends
// an argument and returns its $n placeholder.
type sqlWriter struct {
	sql  strings.Builder
	args []any
}

func (w *sqlWriter) write(s string) {
	w.sql.WriteString(s)
}

func (w *sqlWriter) bind(value any) string {
	w.args = append(w.args, value)
	return "$" + strconv.Itoa(len(w.args))
}

// Condition renders one WHERE predicate.
type Condition interface {
	render(w *sqlWriter)
}

type eqCond struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCond{column: column, value: value}
}

func (c eqCond) render(w *sqlWriter) {
	w.write(c.column + " = " + w.bind(c.value))
}

type isNullCond struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCond{column: column}
}

func (c isNullCond) render(w *sqlWriter) {
	w.write(c.column + " IS NULL")
}

type lteCond struct {
	column string
	value  any
}

func Lte(column string, value any) Condition {
	return lteCond{column: column, value: value}
}

func (c lteCond) render(w *sqlWriter) {
	w.write(c.column + " <= " + w.bind(c.value))
}

type inCond struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCond{column: column, values: values}
}

func (c inCond) render(w *sqlWriter) {
	if len(c.values) == 0 {
		// IN over the empty set matches nothing.
		w.write("1=0")
		return
	}

	w.write(c.column + " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.write(", ")
		}
		w.write(w.bind(v))
	}
	w.write(")")
}

func renderWhere(w *sqlWriter, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.write(" AND ")
		}
		c.render(w)
	}
}

// rewriteExpr copies a raw SQL fragment into the writer, binding each '?' to
// the next argument. Extra '?' markers past the argument list pass through.
func rewriteExpr(w *sqlWriter, expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.write(expr)
		return
	}

	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.write(w.bind(exprArgs[next]))
			next++
			continue
		}
		w.sql.WriteByte(expr[i])
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.write("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	renderWhere(&w, b.where)
	if len(b.orderBy) > 0 {
		w.write(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.write(" LIMIT " + strconv.Itoa(b.limit))
	}

	return w.sql.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row; call repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends a raw fragment after VALUES, typically an ON CONFLICT
// clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w sqlWriter
	w.write("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.write(", ")
		}
		w.write("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.write(", ")
			}
			w.write(w.bind(value))
		}
		w.write(")")
	}

	if b.suffix != "" {
		w.write(" ")
		rewriteExpr(&w, b.suffix, nil)
	}

	return w.sql.String(), w.args, nil
}

type setClause struct {
	column   string
	value    any
	expr     string
	exprArgs []any
	isExpr   bool
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression; '?' markers bind the given args.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: expr, exprArgs: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w sqlWriter
	w.write("UPDATE " + b.table + " SET ")

	for i, s := range b.sets {
		if i > 0 {
			w.write(", ")
		}
		w.write(s.column + " = ")
		if s.isExpr {
			rewriteExpr(&w, s.expr, s.exprArgs)
			continue
		}
		w.write(w.bind(s.value))
	}

	renderWhere(&w, b.where)

	return w.sql.String(), w.args, nil
}
