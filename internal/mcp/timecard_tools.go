package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/service"
)

func generateTimecardTool(sessions service.WorkSessionService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("generate_timecard",
		mcp.WithDescription("Build a per-day timecard for a project over a date range: each day's summed rounded hours and its session summaries in start order. Excluding private sessions drops both their hours and their summaries."),
		mcp.WithNumber("project_id", mcp.Required()),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("First day, YYYY-MM-DD.")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Last day, YYYY-MM-DD, inclusive.")),
		mcp.WithBoolean("include_private", mcp.Description("Defaults to true. Set false for client-facing output.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		projectID := in.requireID("project_id")
		start := in.requireDate("start_date")
		end := in.requireDate("end_date")
		includePrivate := true
		if b := in.boolean("include_private"); b != nil {
			includePrivate = *b
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		entries, err := sessions.Timecard(ctx, projectID, start, end, includePrivate)
		if err != nil {
			return toolError(err)
		}
		card := contract.FromTimecard(projectID, start.Format(dateLayout), end.Format(dateLayout), includePrivate, entries)
		return toolJSON(card)
	}
	return tool, handler
}
