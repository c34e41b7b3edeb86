package query

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/timeutil"
)

// Env carries the evaluation context a compile needs: the instant and
// calendar settings that resolve time shortcuts, and the access mode
// injected for work_session, meeting, and note queries.
type Env struct {
	Now          time.Time
	Location     *time.Location
	WeekBoundary domain.WeekBoundary
	Access       domain.AccessMode
}

// PlanKind selects how a compiled query executes and shapes.
type PlanKind int

const (
	// PlanEntities selects full base rows plus a companion total count.
	PlanEntities PlanKind = iota
	// PlanScalar computes one aggregate value.
	PlanScalar
	// PlanGroups computes one aggregate value per group tuple.
	PlanGroups
)

// Statement is one executable SQL string with its ordered arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Plan is a compiled query: the main statement, the companion count
// for the entity and grouped forms, and the shaping metadata the
// executor needs.
type Plan struct {
	Kind       PlanKind
	Table      string
	Main       Statement
	Total      Statement
	GroupKeys  int
	GroupKinds []fieldKind
	Function   Function
	Field      *string
	FieldKind  fieldKind
}

// privacyEntities are the base entities the access mode predicate
// applies to.
var privacyEntities = map[string]bool{
	"work_session": true,
	"meeting":      true,
	"note":         true,
}

// Compile validates q against the schema registry and renders its SQL.
// Env fields left zero fall back to the current instant, UTC, Monday
// weeks, and full access. Validation failures wrap
// apperr.ErrInvalidArgument through the sentinel for the failing
// clause.
func Compile(q *Query, env Env) (*Plan, error) {
	if env.Now.IsZero() {
		env.Now = time.Now()
	}
	if env.Location == nil {
		env.Location = time.UTC
	}
	if env.WeekBoundary == "" {
		env.WeekBoundary = domain.WeekMonFri
	}

	info, ok := entities[q.EntityType]
	if !ok || !domain.ValidEntityTypes[q.EntityType] {
		return nil, fmt.Errorf("%w: unknown entity type %q", apperr.ErrInvalidArgument, q.EntityType)
	}

	limit := DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
		if limit < 0 || limit > MaxLimit {
			return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidValue, MaxLimit)
		}
	}
	offset := 0
	if q.Offset != nil {
		offset = *q.Offset
		if offset < 0 {
			return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidValue)
		}
	}

	c := &compiler{
		env:     env,
		entity:  q.EntityType,
		aliases: map[string]string{"": "t0"},
		left:    map[string]bool{},
	}

	var conds []string
	var args []any
	for _, f := range q.Filters {
		cond, condArgs, err := c.filter(f)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}
	if cond, levels := c.privacyPredicate(); cond != "" {
		conds = append(conds, cond)
		args = append(args, levels...)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	if q.Aggregation != nil {
		return c.compileAggregation(q, info, where, args, limit, offset)
	}
	return c.compileEntities(q, info, where, args, limit, offset)
}

type compiler struct {
	env     Env
	entity  string
	aliases map[string]string // path prefix → table alias
	left    map[string]bool   // prefixes reached through a LEFT join
	joins   []string
	next    int
}

// fromClause renders the base table and every join added so far.
func (c *compiler) fromClause(table string) string {
	parts := append([]string{table + " t0"}, c.joins...)
	return strings.Join(parts, " ")
}

func parentPrefix(prefix string) string {
	if i := strings.LastIndex(prefix, "."); i >= 0 {
		return prefix[:i]
	}
	return ""
}

// ensureJoins adds one join per unseen path prefix and returns the
// alias of the last step (t0 for an empty path). Optional edges join
// LEFT, as does anything reached through one; a path appearing in
// several clauses reuses the same alias.
func (c *compiler) ensureJoins(steps []pathStep) string {
	alias := "t0"
	for _, s := range steps {
		if existing, ok := c.aliases[s.prefix]; ok {
			alias = existing
			continue
		}
		c.next++
		next := fmt.Sprintf("t%d", c.next)
		joinType := "INNER"
		if s.edge.optional || c.left[parentPrefix(s.prefix)] {
			joinType = "LEFT"
			c.left[s.prefix] = true
		}
		var on string
		if s.edge.kind == edgeCollection {
			on = fmt.Sprintf("%s.%s = %s.id", next, s.edge.fk, alias)
		} else {
			on = fmt.Sprintf("%s.id = %s.%s", next, alias, s.edge.fk)
		}
		c.joins = append(c.joins, fmt.Sprintf("%s JOIN %s %s ON %s", joinType, entities[s.edge.target].table, next, on))
		c.aliases[s.prefix] = next
		alias = next
	}
	return alias
}

func (c *compiler) filter(f FilterClause) (string, []any, error) {
	rf, err := resolvePath(c.entity, f.Field)
	if err != nil {
		return "", nil, err
	}
	if rf.collection() {
		return c.existsFilter(rf, f)
	}
	alias := c.ensureJoins(rf.steps)
	return c.predicate(alias, rf, f)
}

// existsFilter compiles a filter whose path crosses a collection edge
// into a correlated EXISTS, so multi-valued matches never multiply the
// base rows. Segments before the collection still join in the outer
// query.
func (c *compiler) existsFilter(rf resolvedField, f FilterClause) (string, []any, error) {
	split := 0
	for i, s := range rf.steps {
		if s.edge.kind == edgeCollection {
			split = i
			break
		}
	}
	outer := c.ensureJoins(rf.steps[:split])
	inner := rf.steps[split:]

	sub := func(i int) string { return fmt.Sprintf("s%d", i) }
	var b strings.Builder
	fmt.Fprintf(&b, "EXISTS (SELECT 1 FROM %s %s", entities[inner[0].edge.target].table, sub(0))
	for i, s := range inner[1:] {
		table := entities[s.edge.target].table
		if s.edge.kind == edgeCollection {
			fmt.Fprintf(&b, " INNER JOIN %s %s ON %s.%s = %s.id", table, sub(i+1), sub(i+1), s.edge.fk, sub(i))
		} else {
			fmt.Fprintf(&b, " INNER JOIN %s %s ON %s.id = %s.%s", table, sub(i+1), sub(i+1), sub(i), s.edge.fk)
		}
	}
	fmt.Fprintf(&b, " WHERE %s.%s = %s.id", sub(0), inner[0].edge.fk, outer)

	cond, args, err := c.predicate(sub(len(inner)-1), rf, f)
	if err != nil {
		return "", nil, err
	}
	fmt.Fprintf(&b, " AND %s)", cond)
	return b.String(), args, nil
}

var sqlComparisons = map[Operator]string{
	OpEq:  "=",
	OpNe:  "!=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// compareExpr is the comparable form of a column: decimals are stored
// as text and compare numerically through CAST.
func compareExpr(col string, kind fieldKind) string {
	if kind == kindDecimal {
		return "CAST(" + col + " AS REAL)"
	}
	return col
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// predicate renders one comparison against the leaf column under the
// given alias.
func (c *compiler) predicate(alias string, rf resolvedField, f FilterClause) (string, []any, error) {
	if !allOperators[f.Operator] {
		return "", nil, fmt.Errorf("%w %q", ErrInvalidOperator, f.Operator)
	}
	if !operatorAllowed(f.Operator, rf.leaf.kind) {
		return "", nil, fmt.Errorf("%w: %q does not apply to %q", ErrInvalidOperator, f.Operator, f.Field)
	}
	col := alias + "." + rf.leaf.column

	switch f.Operator {
	case OpIsNull, OpIsNotNull:
		if f.Value != nil {
			return "", nil, fmt.Errorf("%w: %s requires a null value", ErrInvalidValue, f.Operator)
		}
		if f.Operator == OpIsNull {
			return col + " IS NULL", nil, nil
		}
		return col + " IS NOT NULL", nil, nil

	case OpIn, OpNotIn:
		items, ok := f.Value.([]any)
		if !ok || len(items) == 0 {
			return "", nil, fmt.Errorf("%w: %s requires a non-empty list", ErrInvalidValue, f.Operator)
		}
		args := make([]any, len(items))
		for i, item := range items {
			v, err := c.literal(rf.leaf.kind, item)
			if err != nil {
				return "", nil, err
			}
			args[i] = v
		}
		keyword := "IN"
		if f.Operator == OpNotIn {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", compareExpr(col, rf.leaf.kind), keyword, placeholders(len(items))), args, nil

	case OpContains, OpStartsWith, OpEndsWith:
		s, ok := f.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: %s requires a string", ErrInvalidValue, f.Operator)
		}
		pattern := likeEscaper.Replace(strings.ToLower(s))
		switch f.Operator {
		case OpContains:
			pattern = "%" + pattern + "%"
		case OpStartsWith:
			pattern += "%"
		case OpEndsWith:
			pattern = "%" + pattern
		}
		return fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col), []any{pattern}, nil

	case OpHasTag:
		s, ok := f.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: has_tag requires a string", ErrInvalidValue)
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", col), []any{s}, nil

	case OpHasAnyTag:
		items, ok := f.Value.([]any)
		if !ok || len(items) == 0 {
			return "", nil, fmt.Errorf("%w: has_any_tag requires a non-empty list", ErrInvalidValue)
		}
		args := make([]any, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return "", nil, fmt.Errorf("%w: has_any_tag requires strings, got %T", ErrInvalidValue, item)
			}
			args[i] = s
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN (%s))", col, placeholders(len(items))), args, nil

	default:
		v, err := c.literal(rf.leaf.kind, f.Value)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%s %s ?", compareExpr(col, rf.leaf.kind), sqlComparisons[f.Operator]), []any{v}, nil
	}
}

// literal coerces a caller-supplied value to the driver argument for a
// field kind, resolving time shortcuts against the compile Env.
func (c *compiler) literal(kind fieldKind, v any) (any, error) {
	switch kind {
	case kindString, kindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected a string, got %T", ErrInvalidValue, v)
		}
		return s, nil

	case kindInt:
		switch n := v.(type) {
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%w: expected an integer, got %v", ErrInvalidValue, v)
			}
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		}
		return nil, fmt.Errorf("%w: expected an integer, got %T", ErrInvalidValue, v)

	case kindDecimal:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			d, err := decimal.NewFromString(n)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a decimal", ErrInvalidValue, n)
			}
			f, _ := d.Float64()
			return f, nil
		}
		return nil, fmt.Errorf("%w: expected a number, got %T", ErrInvalidValue, v)

	case kindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: expected a boolean, got %T", ErrInvalidValue, v)
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil

	case kindDate, kindDatetime:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected a date string, got %T", ErrInvalidValue, v)
		}
		return c.timeLiteral(kind, s)
	}
	return nil, fmt.Errorf("%w: field does not accept comparison values", ErrInvalidValue)
}

// timeLiteral renders a date or datetime literal in storage form. Time
// shortcuts resolve against the user's calendar; dates store as
// YYYY-MM-DD and datetimes as RFC3339 UTC, so string comparison in SQL
// follows time order. A bare date on a datetime field means local
// midnight of that day.
func (c *compiler) timeLiteral(kind fieldKind, s string) (any, error) {
	if t, ok := c.shortcut(s); ok {
		if kind == kindDate {
			return t.In(c.env.Location).Format(timeutil.DateLayout), nil
		}
		return t.UTC().Format(time.RFC3339), nil
	}
	if kind == kindDate {
		if _, err := time.Parse(timeutil.DateLayout, s); err != nil {
			return nil, fmt.Errorf("%w: %q is not a date or time shortcut", ErrInvalidValue, s)
		}
		return s, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.ParseInLocation(timeutil.DateLayout, s, c.env.Location); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	return nil, fmt.Errorf("%w: %q is not a datetime, date, or time shortcut", ErrInvalidValue, s)
}

// shortcut resolves the five relative-time tokens to an instant.
func (c *compiler) shortcut(s string) (time.Time, bool) {
	switch s {
	case "now":
		return c.env.Now, true
	case "today":
		return timeutil.StartOfDay(c.env.Now, c.env.Location), true
	case "this_week":
		return timeutil.StartOfWeek(c.env.Now, c.env.Location, c.env.WeekBoundary), true
	case "this_month":
		return timeutil.StartOfMonth(c.env.Now, c.env.Location), true
	case "this_year":
		return timeutil.StartOfYear(c.env.Now, c.env.Location), true
	}
	return time.Time{}, false
}

func (c *compiler) privacyPredicate() (string, []any) {
	if !privacyEntities[c.entity] || c.env.Access == domain.AccessAll {
		return "", nil
	}
	levels := c.env.Access.Levels()
	args := make([]any, len(levels))
	for i, l := range levels {
		args[i] = string(l)
	}
	return "t0.privacy_level IN (" + placeholders(len(levels)) + ")", args
}

func sqlDirection(d Direction) (string, error) {
	switch d {
	case "", Asc:
		return "ASC", nil
	case Desc:
		return "DESC", nil
	}
	return "", fmt.Errorf("%w: direction must be asc or desc, got %q", ErrInvalidValue, d)
}

// orderClause renders explicit sort keys for entity rows, defaulting
// to newest first. A collection path cannot order scalar rows.
func (c *compiler) orderClause(keys []OrderBy) (string, error) {
	if len(keys) == 0 {
		return " ORDER BY t0.created_at DESC", nil
	}
	var parts []string
	for _, k := range keys {
		rf, err := resolvePath(c.entity, k.Field)
		if err != nil {
			return "", err
		}
		if rf.collection() {
			return "", fmt.Errorf("%w: cannot order by collection path %q", ErrInvalidPath, k.Field)
		}
		dir, err := sqlDirection(k.Direction)
		if err != nil {
			return "", err
		}
		alias := c.ensureJoins(rf.steps)
		parts = append(parts, compareExpr(alias+"."+rf.leaf.column, rf.leaf.kind)+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (c *compiler) compileEntities(q *Query, info entityInfo, where string, whereArgs []any, limit, offset int) (*Plan, error) {
	orderBy, err := c.orderClause(q.OrderBy)
	if err != nil {
		return nil, err
	}
	cols, _ := repository.SelectList(info.table, "t0")
	from := c.fromClause(info.table)

	main := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT ? OFFSET ?", cols, from, where, orderBy)
	mainArgs := append(append([]any{}, whereArgs...), limit, offset)
	total := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", from, where)

	return &Plan{
		Kind:  PlanEntities,
		Table: info.table,
		Main:  Statement{SQL: main, Args: mainArgs},
		Total: Statement{SQL: total, Args: whereArgs},
	}, nil
}

// aggregateExpr renders the fold expression and reports the folded
// field's kind for result shaping. count over empty input is 0 by
// COUNT semantics; sum coalesces to 0; avg, min, and max stay NULL.
func (c *compiler) aggregateExpr(agg *Aggregation) (string, *string, fieldKind, error) {
	switch agg.Function {
	case FnCount, FnSum, FnAvg, FnMin, FnMax, FnCountDistinct:
	default:
		return "", nil, 0, fmt.Errorf("%w: unknown function %q", ErrInvalidAggregation, agg.Function)
	}
	if agg.Field == nil || *agg.Field == "" {
		if agg.Function != FnCount {
			return "", nil, 0, fmt.Errorf("%w: %s requires a field", ErrInvalidAggregation, agg.Function)
		}
		return "COUNT(*)", nil, kindInt, nil
	}
	rf, err := resolvePath(c.entity, *agg.Field)
	if err != nil {
		return "", nil, 0, err
	}
	if rf.leaf.kind == kindTags || rf.leaf.kind == kindJSON {
		return "", nil, 0, fmt.Errorf("%w: cannot aggregate %q", ErrInvalidAggregation, *agg.Field)
	}
	if (agg.Function == FnSum || agg.Function == FnAvg) && rf.leaf.kind != kindInt && rf.leaf.kind != kindDecimal {
		return "", nil, 0, fmt.Errorf("%w: %s requires a numeric field", ErrInvalidAggregation, agg.Function)
	}

	alias := c.ensureJoins(rf.steps)
	col := compareExpr(alias+"."+rf.leaf.column, rf.leaf.kind)
	var expr string
	switch agg.Function {
	case FnCount:
		expr = fmt.Sprintf("COUNT(%s)", col)
	case FnCountDistinct:
		expr = fmt.Sprintf("COUNT(DISTINCT %s)", col)
	case FnSum:
		expr = fmt.Sprintf("COALESCE(SUM(%s), 0)", col)
	case FnAvg:
		expr = fmt.Sprintf("AVG(%s)", col)
	case FnMin:
		expr = fmt.Sprintf("MIN(%s)", col)
	case FnMax:
		expr = fmt.Sprintf("MAX(%s)", col)
	}
	return expr, agg.Field, rf.leaf.kind, nil
}

// groupOrderClause orders grouped rows: explicit keys must be group_by
// fields, and any group column not named explicitly follows ascending
// so the output order stays deterministic.
func (c *compiler) groupOrderClause(keys []OrderBy, paths, exprs []string) (string, error) {
	used := make(map[int]bool)
	var parts []string
	for _, k := range keys {
		idx := -1
		for i, p := range paths {
			if normalizePath(p) == normalizePath(k.Field) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return "", fmt.Errorf("%w: order_by field %q must appear in group_by", ErrInvalidAggregation, k.Field)
		}
		dir, err := sqlDirection(k.Direction)
		if err != nil {
			return "", err
		}
		parts = append(parts, exprs[idx]+" "+dir)
		used[idx] = true
	}
	for i, e := range exprs {
		if !used[i] {
			parts = append(parts, e+" ASC")
		}
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (c *compiler) compileAggregation(q *Query, info entityInfo, where string, whereArgs []any, limit, offset int) (*Plan, error) {
	agg := q.Aggregation
	expr, field, kind, err := c.aggregateExpr(agg)
	if err != nil {
		return nil, err
	}

	if len(agg.GroupBy) == 0 {
		from := c.fromClause(info.table)
		main := fmt.Sprintf("SELECT %s FROM %s%s", expr, from, where)
		return &Plan{
			Kind:      PlanScalar,
			Table:     info.table,
			Main:      Statement{SQL: main, Args: whereArgs},
			Function:  agg.Function,
			Field:     field,
			FieldKind: kind,
		}, nil
	}

	var groupExprs []string
	var groupKinds []fieldKind
	for _, g := range agg.GroupBy {
		rf, err := resolvePath(c.entity, g)
		if err != nil {
			return nil, err
		}
		if rf.leaf.kind == kindTags || rf.leaf.kind == kindJSON {
			return nil, fmt.Errorf("%w: cannot group by %q", ErrInvalidAggregation, g)
		}
		alias := c.ensureJoins(rf.steps)
		groupExprs = append(groupExprs, alias+"."+rf.leaf.column)
		groupKinds = append(groupKinds, rf.leaf.kind)
	}

	orderBy, err := c.groupOrderClause(q.OrderBy, agg.GroupBy, groupExprs)
	if err != nil {
		return nil, err
	}

	from := c.fromClause(info.table)
	keys := strings.Join(groupExprs, ", ")
	main := fmt.Sprintf("SELECT %s, %s FROM %s%s GROUP BY %s%s LIMIT ? OFFSET ?", keys, expr, from, where, keys, orderBy)
	mainArgs := append(append([]any{}, whereArgs...), limit, offset)
	total := fmt.Sprintf("SELECT COUNT(*) FROM (SELECT 1 FROM %s%s GROUP BY %s)", from, where, keys)

	return &Plan{
		Kind:       PlanGroups,
		Table:      info.table,
		Main:       Statement{SQL: main, Args: mainArgs},
		Total:      Statement{SQL: total, Args: whereArgs},
		GroupKeys:  len(groupExprs),
		GroupKinds: groupKinds,
		Function:   agg.Function,
		Field:      field,
		FieldKind:  kind,
	}, nil
}
