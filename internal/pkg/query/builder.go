package query

import (
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

type ordering struct {
	column    string
	direction Direction
}

// Builder constructs SQL SELECT queries for Cloud Spanner.
// It provides a fluent API for building queries with WHERE clauses
// and ORDER BY. Every method returns a new Builder; the receiver
// is never modified.
type Builder struct {
	table        string
	selectCols   []string
	whereClauses []Condition
	orderings    []ordering
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.whereClauses = append(nb.whereClauses, condition)
	return nb
}

// OrderBy replaces any previous ordering with column/direction.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderings = []ordering{{column: column, direction: direction}}
	return nb
}

// ThenBy appends a secondary sort key after the existing ordering.
func (b *Builder) ThenBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderings = append(nb.orderings, ordering{column: column, direction: direction})
	return nb
}

// Build constructs the final spanner.Statement with SQL and parameters.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		parts := make([]string, 0, len(b.whereClauses))
		paramIndex := 0
		for _, condition := range b.whereClauses {
			fragment, condParams := condition.SQL(paramIndex)
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderings) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, 0, len(b.orderings))
		for _, o := range b.orderings {
			dir := "ASC"
			if o.direction == Desc {
				dir = "DESC"
			}
			parts = append(parts, o.column+" "+dir)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params,
	}
}

func (b *Builder) clone() *Builder {
	return &Builder{
		table:        b.table,
		selectCols:   append([]string(nil), b.selectCols...),
		whereClauses: append([]Condition(nil), b.whereClauses...),
		orderings:    append([]ordering(nil), b.orderings...),
	}
}
