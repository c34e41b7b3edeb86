package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/apperr"
	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/query"
	"github.com/alexanderramin/mosaic/internal/service"
)

// querySchema is written by hand because the structured query is a
// nested DSL the option helpers cannot express.
const querySchema = `{
  "type": "object",
  "properties": {
    "structured_query": {
      "type": "object",
      "description": "Structured query over stored records. Filter fields accept dotted paths across relations (e.g. project.client.name); date-valued filters accept the shortcuts today, this_week and this_month, resolved in the profile timezone.",
      "properties": {
        "entity_type": {
          "type": "string",
          "enum": ["person", "client", "project", "employer", "work_session", "meeting", "note", "reminder"]
        },
        "filters": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "field": {"type": "string"},
              "operator": {
                "type": "string",
                "enum": ["eq", "ne", "gt", "gte", "lt", "lte", "in", "not_in", "contains", "starts_with", "ends_with", "is_null", "is_not_null", "has_tag", "has_any_tag"]
              },
              "value": {"description": "Comparison value; omit for is_null/is_not_null, pass an array for in/not_in/has_any_tag."}
            },
            "required": ["field", "operator"],
            "additionalProperties": false
          }
        },
        "aggregation": {
          "type": "object",
          "description": "Compute a value instead of returning rows. group_by buckets the aggregate by one or more fields.",
          "properties": {
            "function": {"type": "string", "enum": ["count", "sum", "avg", "min", "max", "count_distinct"]},
            "field": {"type": "string", "description": "Field to aggregate over; count needs none."},
            "group_by": {"type": "array", "items": {"type": "string"}}
          },
          "required": ["function"],
          "additionalProperties": false
        },
        "order_by": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "field": {"type": "string"},
              "direction": {"type": "string", "enum": ["asc", "desc"]}
            },
            "required": ["field"],
            "additionalProperties": false
          }
        },
        "limit": {"type": "integer", "minimum": 1, "maximum": 1000, "description": "Defaults to 100."},
        "offset": {"type": "integer", "minimum": 0}
      },
      "required": ["entity_type"],
      "additionalProperties": false
    },
    "text": {
      "type": "string",
      "description": "Loose natural-language query, e.g. 'meetings this week' or 'notes about acme'. Translated into a structured query on a best-effort basis."
    }
  },
  "additionalProperties": false
}`

func queryTool(queries service.QueryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewToolWithRawSchema("query",
		"Query stored records with filters, ordering and aggregation, or ask loosely in plain text. Exactly one of structured_query or text must be given.",
		json.RawMessage(querySchema),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		structured := in.object("structured_query")
		text := in.str("text")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if (structured == nil) == (text == nil) {
			return toolError(fmt.Errorf("exactly one of structured_query or text is required: %w", apperr.ErrInvalidArgument))
		}

		var (
			result *query.Result
			err    error
		)
		if text != nil {
			result, err = queries.RunLoose(ctx, *text)
		} else {
			var q *query.Query
			q, err = decodeQuery(structured)
			if err != nil {
				return toolError(err)
			}
			result, err = queries.Run(ctx, q)
		}
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromQueryResult(result))
	}
	return tool, handler
}

// decodeQuery round-trips the argument object through JSON so the
// query AST's own tags apply, rejecting keys the DSL does not define.
func decodeQuery(obj map[string]any) (*query.Query, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding structured_query: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var q query.Query
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("structured_query: %v: %w", err, apperr.ErrInvalidArgument)
	}
	return &q, nil
}
