package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/repository"
	"github.com/alexanderramin/mosaic/internal/service"
)

func addActionItemTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_action_item",
		mcp.WithDescription("Track a task. Action items are separate from reminders: they hold status and due dates but never fire notifications."),
		mcp.WithString("title", mcp.Required()),
		mcp.WithString("description"),
		mcp.WithString("status", mcp.Enum("pending", "in_progress", "completed", "cancelled"), mcp.Description("Defaults to pending.")),
		mcp.WithString("due_date", mcp.Description("RFC3339 with offset.")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private"), mcp.Description("Defaults to the profile's default privacy level.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		item := &domain.ActionItem{
			Title:       in.requireStr("title"),
			Description: in.str("description"),
			DueDate:     in.timestamp("due_date"),
			EntityType:  in.entityType("entity_type"),
			EntityID:    in.id("entity_id"),
			Tags:        in.strs("tags"),
		}
		if s := in.str("status"); s != nil {
			item.Status = domain.ActionItemStatus(*s)
		}
		if p := in.privacy("privacy_level"); p != nil {
			item.PrivacyLevel = *p
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := tasks.AddActionItem(ctx, item); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromActionItem(item))
	}
	return tool, handler
}

func updateActionItemTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_action_item",
		mcp.WithDescription("Update fields of an action item. Moving into completed stamps completed_at; moving out clears it."),
		mcp.WithNumber("action_item_id", mcp.Required()),
		mcp.WithString("title"),
		mcp.WithString("description"),
		mcp.WithString("status", mcp.Enum("pending", "in_progress", "completed", "cancelled")),
		mcp.WithString("due_date", mcp.Description("RFC3339 with offset.")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("action_item_id")
		p := service.UpdateActionItemParams{
			Title:        in.str("title"),
			Description:  in.str("description"),
			Status:       strAs[domain.ActionItemStatus](in.str("status")),
			DueDate:      in.timestamp("due_date"),
			EntityType:   in.entityType("entity_type"),
			EntityID:     in.id("entity_id"),
			PrivacyLevel: in.privacy("privacy_level"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		item, err := tasks.UpdateActionItem(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromActionItem(item))
	}
	return tool, handler
}

func listActionItemsTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_action_items",
		mcp.WithDescription("List action items, most recently created first."),
		mcp.WithString("status", mcp.Enum("pending", "in_progress", "completed", "cancelled")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithBoolean("overdue_only", mcp.Description("Only pending or in-progress items whose due date has passed.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		f := repository.ActionItemFilter{
			Status:     strAs[domain.ActionItemStatus](in.str("status")),
			EntityType: in.entityType("entity_type"),
			EntityID:   in.id("entity_id"),
			Tags:       in.strs("tags"),
		}
		if b := in.boolean("overdue_only"); b != nil {
			f.OverdueOnly = *b
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		items, err := tasks.ListActionItems(ctx, f)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromActionItems(items))
	}
	return tool, handler
}

func deleteActionItemTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_action_item",
		mcp.WithDescription("Delete an action item permanently."),
		mcp.WithNumber("action_item_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("action_item_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := tasks.DeleteActionItem(ctx, id); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Ack{Success: true, Message: fmt.Sprintf("action item %d deleted", id)})
	}
	return tool, handler
}
