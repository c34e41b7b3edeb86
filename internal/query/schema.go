package query

import (
	"fmt"
	"strings"
)

// fieldKind classifies a column for operator and value checking.
type fieldKind int

const (
	kindString fieldKind = iota
	kindEnum
	kindInt
	kindBool
	kindDate
	kindDatetime
	kindDecimal
	kindTags
	kindJSON
)

// fieldInfo is one filterable column.
type fieldInfo struct {
	column string
	kind   fieldKind
}

// edgeKind separates many-to-one traversals from collection traversals.
type edgeKind int

const (
	edgeOne edgeKind = iota
	edgeCollection
)

// edge is one relationship the compiler may traverse. For edgeOne, fk
// names the referencing column on the source table; for edgeCollection
// it names the column on the target table that points back at the
// source id. Optional edges (nullable foreign keys) join LEFT.
type edge struct {
	target   string
	kind     edgeKind
	optional bool
	fk       string
}

// entityInfo describes one entity: its table, the schema-level fields
// the DSL accepts, its outgoing edges, and the field loose text
// searches match against.
type entityInfo struct {
	table     string
	fields    map[string]fieldInfo
	edges     map[string]edge
	textField string
}

// entities is the schema registry: the eight queryable entities plus
// the attendee row meetings traverse through. meeting_attendee is not
// a valid base entity; Compile guards roots separately.
var entities = map[string]entityInfo{
	"person": {
		table: "people",
		fields: map[string]fieldInfo{
			"id":              {"id", kindInt},
			"full_name":       {"full_name", kindString},
			"email":           {"email", kindString},
			"phone":           {"phone", kindString},
			"linkedin_url":    {"linkedin_url", kindString},
			"is_stakeholder":  {"is_stakeholder", kindBool},
			"company":         {"company", kindString},
			"title":           {"title", kindString},
			"notes":           {"notes", kindString},
			"tags":            {"tags", kindTags},
			"additional_info": {"additional_info", kindJSON},
			"created_at":      {"created_at", kindDatetime},
			"updated_at":      {"updated_at", kindDatetime},
		},
		textField: "full_name",
	},
	"employer": {
		table: "employers",
		fields: map[string]fieldInfo{
			"id":           {"id", kindInt},
			"name":         {"name", kindString},
			"is_current":   {"is_current", kindBool},
			"is_self":      {"is_self", kindBool},
			"contact_info": {"contact_info", kindString},
			"notes":        {"notes", kindString},
			"tags":         {"tags", kindTags},
			"created_at":   {"created_at", kindDatetime},
			"updated_at":   {"updated_at", kindDatetime},
		},
		textField: "name",
	},
	"client": {
		table: "clients",
		fields: map[string]fieldInfo{
			"id":                {"id", kindInt},
			"name":              {"name", kindString},
			"type":              {"type", kindEnum},
			"status":            {"status", kindEnum},
			"contact_person_id": {"contact_person_id", kindInt},
			"notes":             {"notes", kindString},
			"tags":              {"tags", kindTags},
			"created_at":        {"created_at", kindDatetime},
			"updated_at":        {"updated_at", kindDatetime},
		},
		edges: map[string]edge{
			"contact_person": {target: "person", kind: edgeOne, optional: true, fk: "contact_person_id"},
		},
		textField: "name",
	},
	"project": {
		table: "projects",
		fields: map[string]fieldInfo{
			"id":              {"id", kindInt},
			"name":            {"name", kindString},
			"client_id":       {"client_id", kindInt},
			"on_behalf_of_id": {"on_behalf_of_id", kindInt},
			"description":     {"description", kindString},
			"status":          {"status", kindEnum},
			"start_date":      {"start_date", kindDate},
			"end_date":        {"end_date", kindDate},
			"tags":            {"tags", kindTags},
			"created_at":      {"created_at", kindDatetime},
			"updated_at":      {"updated_at", kindDatetime},
		},
		edges: map[string]edge{
			"client":   {target: "client", kind: edgeOne, fk: "client_id"},
			"employer": {target: "employer", kind: edgeOne, optional: true, fk: "on_behalf_of_id"},
		},
		textField: "name",
	},
	"work_session": {
		table: "work_sessions",
		fields: map[string]fieldInfo{
			"id":             {"id", kindInt},
			"project_id":     {"project_id", kindInt},
			"date":           {"date", kindDate},
			"start_time":     {"start_time", kindDatetime},
			"end_time":       {"end_time", kindDatetime},
			"duration_hours": {"duration_hours", kindDecimal},
			"summary":        {"summary", kindString},
			"privacy_level":  {"privacy_level", kindEnum},
			"tags":           {"tags", kindTags},
			"created_at":     {"created_at", kindDatetime},
			"updated_at":     {"updated_at", kindDatetime},
		},
		edges: map[string]edge{
			"project": {target: "project", kind: edgeOne, fk: "project_id"},
		},
		textField: "summary",
	},
	"meeting": {
		table: "meetings",
		fields: map[string]fieldInfo{
			"id":               {"id", kindInt},
			"title":            {"title", kindString},
			"start_time":       {"start_time", kindDatetime},
			"duration_minutes": {"duration_minutes", kindInt},
			"summary":          {"summary", kindString},
			"privacy_level":    {"privacy_level", kindEnum},
			"project_id":       {"project_id", kindInt},
			"meeting_type":     {"meeting_type", kindString},
			"location":         {"location", kindString},
			"tags":             {"tags", kindTags},
			"created_at":       {"created_at", kindDatetime},
			"updated_at":       {"updated_at", kindDatetime},
		},
		edges: map[string]edge{
			"project":   {target: "project", kind: edgeOne, optional: true, fk: "project_id"},
			"attendees": {target: "meeting_attendee", kind: edgeCollection, fk: "meeting_id"},
		},
		textField: "title",
	},
	"meeting_attendee": {
		table: "meeting_attendees",
		fields: map[string]fieldInfo{
			"id":         {"id", kindInt},
			"meeting_id": {"meeting_id", kindInt},
			"person_id":  {"person_id", kindInt},
		},
		edges: map[string]edge{
			"person": {target: "person", kind: edgeOne, fk: "person_id"},
		},
	},
	"note": {
		table: "notes",
		fields: map[string]fieldInfo{
			"id":            {"id", kindInt},
			"text":          {"text", kindString},
			"privacy_level": {"privacy_level", kindEnum},
			"entity_type":   {"entity_type", kindEnum},
			"entity_id":     {"entity_id", kindInt},
			"tags":          {"tags", kindTags},
			"created_at":    {"created_at", kindDatetime},
			"updated_at":    {"updated_at", kindDatetime},
		},
		textField: "text",
	},
	"reminder": {
		table: "reminders",
		fields: map[string]fieldInfo{
			"id":                  {"id", kindInt},
			"reminder_time":       {"reminder_time", kindDatetime},
			"message":             {"message", kindString},
			"is_completed":        {"is_completed", kindBool},
			"recurrence_config":   {"recurrence_config", kindJSON},
			"related_entity_type": {"related_entity_type", kindEnum},
			"related_entity_id":   {"related_entity_id", kindInt},
			"snoozed_until":       {"snoozed_until", kindDatetime},
			"last_notified_at":    {"last_notified_at", kindDatetime},
			"tags":                {"tags", kindTags},
			"created_at":          {"created_at", kindDatetime},
			"updated_at":          {"updated_at", kindDatetime},
		},
		textField: "message",
	},
}

// fieldAliases maps accepted schema names to storage names before
// registry lookup. The mapping is one-way.
var fieldAliases = map[string]string{
	"on_behalf_of": "on_behalf_of_id",
}

func normalizeField(name string) string {
	if mapped, ok := fieldAliases[name]; ok {
		return mapped
	}
	return name
}

// normalizePath applies the field alias mapping to the leaf segment of
// a dot-separated path.
func normalizePath(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return normalizeField(path)
	}
	return path[:i+1] + normalizeField(path[i+1:])
}

// allOperators is the full operator vocabulary.
var allOperators = map[Operator]bool{
	OpEq: true, OpNe: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true,
	OpIn: true, OpNotIn: true, OpContains: true, OpStartsWith: true,
	OpEndsWith: true, OpIsNull: true, OpIsNotNull: true, OpHasTag: true,
	OpHasAnyTag: true,
}

// operatorsByKind lists the operators legal for each field kind beyond
// the null tests, which apply to every kind.
var operatorsByKind = map[fieldKind][]Operator{
	kindString:   {OpEq, OpNe, OpIn, OpNotIn, OpContains, OpStartsWith, OpEndsWith},
	kindEnum:     {OpEq, OpNe, OpIn, OpNotIn},
	kindInt:      {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNotIn},
	kindBool:     {OpEq, OpNe},
	kindDate:     {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNotIn},
	kindDatetime: {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNotIn},
	kindDecimal:  {OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNotIn},
	kindTags:     {OpHasTag, OpHasAnyTag},
	kindJSON:     {},
}

func operatorAllowed(op Operator, kind fieldKind) bool {
	if op == OpIsNull || op == OpIsNotNull {
		return true
	}
	for _, allowed := range operatorsByKind[kind] {
		if op == allowed {
			return true
		}
	}
	return false
}

// pathStep is one resolved relationship segment.
type pathStep struct {
	prefix string // dot-joined path up to and including this segment
	edge   edge
}

// resolvedField is the outcome of walking a filter, order, or
// aggregation path: the traversal steps plus the leaf column on the
// final entity.
type resolvedField struct {
	steps []pathStep
	leaf  fieldInfo
	field string
}

// collection reports whether the path crosses a collection edge.
func (r resolvedField) collection() bool {
	for _, s := range r.steps {
		if s.edge.kind == edgeCollection {
			return true
		}
	}
	return false
}

// resolvePath walks a dot-separated path from base. Every segment but
// the last must be a relationship of the current entity; the last must
// be a field of the final entity.
func resolvePath(base, path string) (resolvedField, error) {
	if path == "" {
		return resolvedField{}, fmt.Errorf("%w: empty field", ErrInvalidField)
	}
	segments := strings.Split(path, ".")
	cur := base
	var steps []pathStep
	for i, seg := range segments[:len(segments)-1] {
		e, ok := entities[cur].edges[seg]
		if !ok {
			return resolvedField{}, fmt.Errorf("%w: %s has no relationship %q", ErrInvalidPath, cur, seg)
		}
		steps = append(steps, pathStep{prefix: strings.Join(segments[:i+1], "."), edge: e})
		cur = e.target
	}
	leafSeg := normalizeField(segments[len(segments)-1])
	leaf, ok := entities[cur].fields[leafSeg]
	if !ok {
		return resolvedField{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidField, cur, segments[len(segments)-1])
	}
	return resolvedField{steps: steps, leaf: leaf, field: leafSeg}, nil
}
