package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/notify"
)

func triggerNotificationTool(notifier notify.Dispatcher) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("trigger_notification",
		mcp.WithDescription("Push a notification through the configured bridge right now. Returns delivered=false without error when notifications are disabled; delivery failures after retries surface as DELIVERY_FAILED."),
		mcp.WithString("title", mcp.Required()),
		mcp.WithString("message", mcp.Required()),
		mcp.WithString("sound", mcp.Description("Bridge sound name; defaults from configuration.")),
		mcp.WithObject("metadata", mcp.Description("Extra payload fields passed to the bridge verbatim.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		n := notify.Notification{
			Title:    in.requireStr("title"),
			Message:  in.requireStr("message"),
			Metadata: in.object("metadata"),
		}
		if s := in.str("sound"); s != nil {
			n.Sound = *s
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		result, err := notifier.Send(ctx, n)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Delivery{Delivered: result.Delivered, Attempts: result.Attempts})
	}
	return tool, handler
}
