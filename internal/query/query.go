// Package query implements the structured query engine: a typed AST
// over the entity model, validated against a static schema registry,
// compiled to SQL, and executed through the repository layer. A small
// loose-text adapter translates common phrases into the same AST.
package query

import (
	"fmt"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
	OpHasTag     Operator = "has_tag"
	OpHasAnyTag  Operator = "has_any_tag"
)

// Function is an aggregation function.
type Function string

const (
	FnCount         Function = "count"
	FnSum           Function = "sum"
	FnAvg           Function = "avg"
	FnMin           Function = "min"
	FnMax           Function = "max"
	FnCountDistinct Function = "count_distinct"
)

// Direction orders a sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	// DefaultLimit applies when a query carries no explicit limit.
	DefaultLimit = 100
	// MaxLimit caps any explicit limit.
	MaxLimit = 1000
)

// Query is the AST root. Filters are AND-joined. Limit and offset are
// ignored for scalar aggregations; for entity and grouped forms they
// page the output rows.
type Query struct {
	EntityType  string         `json:"entity_type"`
	Filters     []FilterClause `json:"filters,omitempty"`
	Aggregation *Aggregation   `json:"aggregation,omitempty"`
	Limit       *int           `json:"limit,omitempty"`
	Offset      *int           `json:"offset,omitempty"`
	OrderBy     []OrderBy      `json:"order_by,omitempty"`
}

// FilterClause compares a field path against a literal. Paths traverse
// the relationship graph from the base entity (project.client.name);
// crossing a collection edge makes the clause an existence test. Value
// must be null for the null-test operators and a list for the set
// operators.
type FilterClause struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
}

// Aggregation folds the filtered rows into a scalar, or into one row
// per distinct group_by tuple when group_by is non-empty. Field may be
// omitted only for count.
type Aggregation struct {
	Function Function `json:"function"`
	Field    *string  `json:"field,omitempty"`
	GroupBy  []string `json:"group_by,omitempty"`
}

// OrderBy is one explicit sort key. Direction defaults to ascending.
type OrderBy struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction,omitempty"`
}

// Validation sentinels. Each wraps apperr.ErrInvalidArgument so the
// tool façade maps all of them to INVALID_ARGUMENT while callers can
// still branch on the specific failure.
var (
	ErrInvalidField       = fmt.Errorf("%w: invalid field", apperr.ErrInvalidArgument)
	ErrInvalidOperator    = fmt.Errorf("%w: invalid operator", apperr.ErrInvalidArgument)
	ErrInvalidPath        = fmt.Errorf("%w: invalid path", apperr.ErrInvalidArgument)
	ErrInvalidValue       = fmt.Errorf("%w: invalid value", apperr.ErrInvalidArgument)
	ErrInvalidAggregation = fmt.Errorf("%w: invalid aggregation", apperr.ErrInvalidArgument)
)
