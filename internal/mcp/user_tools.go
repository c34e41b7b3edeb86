package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/service"
)

func getUserProfileTool(profile service.UserService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("get_user_profile",
		mcp.WithDescription("Read the profile: identity, timezone, week boundary, default privacy and working style. Before any profile update this returns the configured defaults."),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		user, err := profile.Get(ctx)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromUser(user))
	}
	return tool, handler
}

func updateUserProfileTool(profile service.UserService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_user_profile",
		mcp.WithDescription("Update profile fields. Timezone and week boundary steer session dates, timecards and query date shortcuts; default privacy applies to new records logged without one."),
		mcp.WithString("full_name"),
		mcp.WithString("email"),
		mcp.WithString("phone"),
		mcp.WithString("timezone", mcp.Description("IANA name, e.g. America/New_York.")),
		mcp.WithString("week_boundary", mcp.Enum("mon-fri", "sun-sat", "mon-sun"), mcp.Description("Week convention for timecards and this_week queries.")),
		mcp.WithString("default_privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithNumber("working_hours_start", mcp.Description("Hour 0-23 in the profile timezone.")),
		mcp.WithNumber("working_hours_end", mcp.Description("Hour 0-23, after working_hours_start.")),
		mcp.WithString("communication_style", mcp.Description("Free-form note on how you like to communicate.")),
		mcp.WithString("work_approach", mcp.Description("Free-form note on how you like to work.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		p := service.UpdateUserParams{
			FullName:           in.str("full_name"),
			Email:              in.str("email"),
			Phone:              in.str("phone"),
			Timezone:           in.str("timezone"),
			WeekBoundary:       strAs[domain.WeekBoundary](in.str("week_boundary")),
			DefaultPrivacy:     in.privacy("default_privacy_level"),
			WorkingHoursStart:  in.integer("working_hours_start"),
			WorkingHoursEnd:    in.integer("working_hours_end"),
			CommunicationStyle: in.str("communication_style"),
			WorkApproach:       in.str("work_approach"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		user, err := profile.Update(ctx, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromUser(user))
	}
	return tool, handler
}
