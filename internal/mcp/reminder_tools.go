package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/service"
)

func listRemindersTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_reminders",
		mcp.WithDescription("List reminders, newest first. Active means not completed; snoozed means active with an unexpired snooze."),
		mcp.WithString("status", mcp.Enum("all", "active", "completed", "snoozed"), mcp.DefaultString("all")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer"), mcp.Description("Only reminders attached to this kind of record.")),
		mcp.WithNumber("entity_id"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Only reminders carrying any of these tags.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		f := repository.ReminderFilter{
			EntityType: in.entityType("entity_type"),
			EntityID:   in.id("entity_id"),
			Tags:       in.strs("tags"),
		}
		if s := in.str("status"); s != nil {
			f.Status = *s
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		rows, err := reminders.List(ctx, f)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromReminders(rows))
	}
	return tool, handler
}

func deleteReminderTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_reminder",
		mcp.WithDescription("Delete a reminder permanently. Deleting a recurring reminder does not touch occurrences already spawned."),
		mcp.WithNumber("reminder_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("reminder_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := reminders.Delete(ctx, id); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Ack{Success: true, Message: fmt.Sprintf("reminder %d deleted", id)})
	}
	return tool, handler
}

func bulkCompleteRemindersTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("bulk_complete_reminders",
		mcp.WithDescription("Complete several reminders at once. Each id is attempted independently; ids that fail are reported rather than aborting the rest."),
		mcp.WithArray("reminder_ids", mcp.Required(), mcp.Items(map[string]any{"type": "integer"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		ids := in.idList("reminder_ids")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		result, err := reminders.BulkComplete(ctx, ids)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromBulkResult(result))
	}
	return tool, handler
}
