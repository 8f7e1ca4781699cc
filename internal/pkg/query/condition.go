package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// comparison implements a binary comparison (field <op> value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("brand_id", 1) generates "brand_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Le creates a WHERE condition field <= value.
// Example: Le("start_date", at) generates "start_date <= @p0"
func Le(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// Ge creates a WHERE condition field >= value.
func Ge(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}
