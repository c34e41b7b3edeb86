package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/repository"
)

// Runner executes compiled statements. *repository.SQLiteQueryRepo is
// the production implementation.
type Runner interface {
	EntityRows(ctx context.Context, table, query string, args []any) ([]any, error)
	Count(ctx context.Context, query string, args []any) (int, error)
	Aggregate(ctx context.Context, query string, args []any) (any, error)
	AggregateGroups(ctx context.Context, query string, args []any, keyCount int) ([]repository.GroupRow, error)
}

// Executor compiles queries and runs them through a Runner.
type Executor struct {
	runner Runner
}

// NewExecutor creates a new Executor.
func NewExecutor(runner Runner) *Executor {
	return &Executor{runner: runner}
}

// Group is one grouped-aggregation output row.
type Group struct {
	Keys  []any
	Value any
}

// AggregationValue carries an aggregation outcome: Value for the
// scalar form, Groups for the grouped form.
type AggregationValue struct {
	Function Function
	Field    *string
	Value    any
	Groups   []Group
}

// Result is the executor output. Entities and TotalCount are set for
// plain entity queries; Aggregation, plus TotalGroups for the grouped
// form, otherwise. Entity rows are the domain structs the repository
// scanners produce, so callers never see storage column names.
type Result struct {
	EntityType  string
	Entities    []any
	TotalCount  int
	Aggregation *AggregationValue
	TotalGroups int
}

// Run validates, compiles, and executes q under env.
func (e *Executor) Run(ctx context.Context, q *Query, env Env) (*Result, error) {
	plan, err := Compile(q, env)
	if err != nil {
		return nil, err
	}

	switch plan.Kind {
	case PlanScalar:
		v, err := e.runner.Aggregate(ctx, plan.Main.SQL, plan.Main.Args)
		if err != nil {
			return nil, err
		}
		return &Result{
			EntityType: q.EntityType,
			Aggregation: &AggregationValue{
				Function: plan.Function,
				Field:    plan.Field,
				Value:    shapeAggregate(plan.Function, plan.FieldKind, v),
			},
		}, nil

	case PlanGroups:
		rows, err := e.runner.AggregateGroups(ctx, plan.Main.SQL, plan.Main.Args, plan.GroupKeys)
		if err != nil {
			return nil, err
		}
		total, err := e.runner.Count(ctx, plan.Total.SQL, plan.Total.Args)
		if err != nil {
			return nil, err
		}
		groups := make([]Group, 0, len(rows))
		for _, row := range rows {
			keys := make([]any, len(row.Keys))
			for i, k := range row.Keys {
				keys[i] = shapeGroupKey(plan.GroupKinds[i], k)
			}
			groups = append(groups, Group{
				Keys:  keys,
				Value: shapeAggregate(plan.Function, plan.FieldKind, row.Value),
			})
		}
		return &Result{
			EntityType: q.EntityType,
			Aggregation: &AggregationValue{
				Function: plan.Function,
				Field:    plan.Field,
				Groups:   groups,
			},
			TotalGroups: total,
		}, nil

	default:
		rows, err := e.runner.EntityRows(ctx, plan.Table, plan.Main.SQL, plan.Main.Args)
		if err != nil {
			return nil, err
		}
		total, err := e.runner.Count(ctx, plan.Total.SQL, plan.Total.Args)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []any{}
		}
		return &Result{EntityType: q.EntityType, Entities: rows, TotalCount: total}, nil
	}
}

// shapeAggregate renders decimal aggregates as fixed-point strings so
// wire output keeps the stored duration precision: one place for
// sum/min/max, two for avg. Counts and non-decimal folds pass through
// in driver-native form.
func shapeAggregate(fn Function, kind fieldKind, v any) any {
	if v == nil || kind != kindDecimal {
		return v
	}
	var d decimal.Decimal
	switch n := v.(type) {
	case float64:
		d = decimal.NewFromFloat(n)
	case int64:
		d = decimal.NewFromInt(n)
	default:
		return v
	}
	switch fn {
	case FnSum, FnMin, FnMax:
		return d.StringFixed(1)
	case FnAvg:
		return d.StringFixed(2)
	}
	return v
}

// shapeGroupKey maps stored boolean integers back to booleans; every
// other kind already reads back in its wire form.
func shapeGroupKey(kind fieldKind, v any) any {
	if kind == kindBool {
		if n, ok := v.(int64); ok {
			return n != 0
		}
	}
	return v
}
