package contract

import (
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/query"
)

// EntityResult is the wire form of a plain entity query: the matching
// rows after limit/offset plus the count of the filtered relation.
type EntityResult struct {
	EntityType string `json:"entity_type"`
	Results    []any  `json:"results"`
	TotalCount int    `json:"total_count"`
}

// AggregationGroup is one grouped-aggregation output row.
type AggregationGroup struct {
	GroupValues []any `json:"group_values"`
	Result      any   `json:"result"`
}

// Aggregation carries an aggregation outcome. Result holds the scalar
// form through a pointer so a zero or null value still renders; the
// grouped form omits it and carries Groups.
type Aggregation struct {
	Function string             `json:"function"`
	Field    *string            `json:"field,omitempty"`
	Result   *any               `json:"result,omitempty"`
	Groups   []AggregationGroup `json:"groups,omitempty"`
}

// AggregationResult is the wire form of an aggregation query.
type AggregationResult struct {
	EntityType  string      `json:"entity_type"`
	Aggregation Aggregation `json:"aggregation"`
	TotalGroups *int        `json:"total_groups,omitempty"`
}

// FromQueryResult shapes an executor result for the wire: entity rows
// map through the per-entity records, aggregations keep the values the
// executor already rendered.
func FromQueryResult(r *query.Result) any {
	if r.Aggregation == nil {
		out := EntityResult{
			EntityType: r.EntityType,
			Results:    make([]any, 0, len(r.Entities)),
			TotalCount: r.TotalCount,
		}
		for _, e := range r.Entities {
			out.Results = append(out.Results, fromEntity(e))
		}
		return out
	}

	agg := Aggregation{Function: string(r.Aggregation.Function), Field: r.Aggregation.Field}
	out := AggregationResult{EntityType: r.EntityType}
	if r.Aggregation.Groups == nil {
		agg.Result = &r.Aggregation.Value
	} else {
		agg.Groups = make([]AggregationGroup, 0, len(r.Aggregation.Groups))
		for _, g := range r.Aggregation.Groups {
			agg.Groups = append(agg.Groups, AggregationGroup{GroupValues: g.Keys, Result: g.Value})
		}
		total := r.TotalGroups
		out.TotalGroups = &total
	}
	out.Aggregation = agg
	return out
}

func fromEntity(v any) any {
	switch e := v.(type) {
	case *domain.Person:
		return FromPerson(e)
	case *domain.Client:
		return FromClient(e)
	case *domain.Project:
		return FromProject(e)
	case *domain.Employer:
		return FromEmployer(e)
	case *domain.WorkSession:
		return FromWorkSession(e)
	case *domain.Meeting:
		return FromMeeting(e)
	case *domain.Note:
		return FromNote(e)
	case *domain.Reminder:
		return FromReminder(e)
	default:
		return v
	}
}
