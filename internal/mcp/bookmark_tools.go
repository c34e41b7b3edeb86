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

func addBookmarkTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_bookmark",
		mcp.WithDescription("Save a link, optionally anchored to another record."),
		mcp.WithString("title", mcp.Required()),
		mcp.WithString("url", mcp.Required()),
		mcp.WithString("description"),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private"), mcp.Description("Defaults to the profile's default privacy level.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		bookmark := &domain.Bookmark{
			Title:       in.requireStr("title"),
			URL:         in.requireStr("url"),
			Description: in.str("description"),
			EntityType:  in.entityType("entity_type"),
			EntityID:    in.id("entity_id"),
			Tags:        in.strs("tags"),
		}
		if p := in.privacy("privacy_level"); p != nil {
			bookmark.PrivacyLevel = *p
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := tasks.AddBookmark(ctx, bookmark); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromBookmark(bookmark))
	}
	return tool, handler
}

func updateBookmarkTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_bookmark",
		mcp.WithDescription("Update fields of a bookmark."),
		mcp.WithNumber("bookmark_id", mcp.Required()),
		mcp.WithString("title"),
		mcp.WithString("url"),
		mcp.WithString("description"),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("bookmark_id")
		p := service.UpdateBookmarkParams{
			Title:        in.str("title"),
			URL:          in.str("url"),
			Description:  in.str("description"),
			EntityType:   in.entityType("entity_type"),
			EntityID:     in.id("entity_id"),
			PrivacyLevel: in.privacy("privacy_level"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		bookmark, err := tasks.UpdateBookmark(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromBookmark(bookmark))
	}
	return tool, handler
}

func listBookmarksTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_bookmarks",
		mcp.WithDescription("List bookmarks, most recently created first. Search matches title or URL, case-insensitively."),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithString("search"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		f := repository.BookmarkFilter{
			EntityType: in.entityType("entity_type"),
			EntityID:   in.id("entity_id"),
			Tags:       in.strs("tags"),
		}
		if s := in.str("search"); s != nil {
			f.Search = *s
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		bookmarks, err := tasks.ListBookmarks(ctx, f)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromBookmarks(bookmarks))
	}
	return tool, handler
}

func deleteBookmarkTool(tasks service.TaskService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_bookmark",
		mcp.WithDescription("Delete a bookmark permanently."),
		mcp.WithNumber("bookmark_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("bookmark_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := tasks.DeleteBookmark(ctx, id); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Ack{Success: true, Message: fmt.Sprintf("bookmark %d deleted", id)})
	}
	return tool, handler
}
