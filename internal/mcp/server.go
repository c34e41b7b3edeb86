// Package mcp exposes the tool surface: one tool per operation, JSON
// text results, and a strict shared argument reader. Handlers stay
// thin; they shape arguments, delegate to a service, and render the
// result through the contract package.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/mosaic/internal/notify"
	"github.com/alexanderramin/mosaic/internal/service"
)

const serverVersion = "0.1.0"

const instructions = `Mosaic is a single-user work memory: projects, clients, people,
meetings, work sessions, notes, reminders, action items and bookmarks,
with privacy-aware timecards on top.

Conventions:
- Datetimes are RFC3339 with a UTC offset (2026-01-15T09:30:00-05:00).
  Dates are YYYY-MM-DD. Durations in responses are decimal hour
  strings like "1.5".
- Work session durations round UP to the next half hour. Logging a
  meeting with a project_id books a matching work session
  automatically, so do not log the same time twice.
- privacy_level is public, internal or private. Private records stay
  out of timecards generated with include_private=false.
- On updates, omitted arguments keep their stored values; passing
  tags: [] clears the tags.
- Use the query tool for anything the listing tools do not cover:
  filters, dotted relation paths (project.client.name), aggregations
  and the date shortcuts today / this_week / this_month.
- Errors come back as {"code","message"}; NOT_FOUND means the id does
  not exist, CONFLICT means the change collides with existing state.`

// Deps carries every dependency the tool surface needs. All fields
// must be set.
type Deps struct {
	Sessions  service.WorkSessionService
	Meetings  service.MeetingService
	Reminders service.ReminderService
	Directory service.DirectoryService
	Notes     service.NoteService
	Tasks     service.TaskService
	Profile   service.UserService
	Queries   service.QueryService
	Notifier  notify.Dispatcher
	Logger    zerolog.Logger
}

// New assembles the MCP server with every tool registered. The caller
// picks the transport; see cmd/mosaic for the stdio binding.
func New(deps Deps) *server.MCPServer {
	srv := server.NewMCPServer("mosaic", serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	add := func(tool mcp.Tool, handler server.ToolHandlerFunc) {
		srv.AddTool(tool, logged(deps.Logger, tool.Name, handler))
	}

	add(logWorkSessionTool(deps.Sessions))
	add(updateWorkSessionTool(deps.Sessions))
	add(deleteWorkSessionTool(deps.Sessions))
	add(generateTimecardTool(deps.Sessions))

	add(logMeetingTool(deps.Meetings))
	add(updateMeetingTool(deps.Meetings))
	add(deleteMeetingTool(deps.Meetings))

	add(addPersonTool(deps.Directory))
	add(updatePersonTool(deps.Directory))
	add(addClientTool(deps.Directory))
	add(updateClientTool(deps.Directory))
	add(addProjectTool(deps.Directory))
	add(updateProjectTool(deps.Directory))
	add(addEmployerTool(deps.Directory))
	add(addEmploymentTool(deps.Directory))
	add(endEmploymentTool(deps.Directory))

	add(addNoteTool(deps.Notes))
	add(updateNoteTool(deps.Notes))

	add(addReminderTool(deps.Reminders))
	add(completeReminderTool(deps.Reminders))
	add(snoozeReminderTool(deps.Reminders))
	add(listRemindersTool(deps.Reminders))
	add(bulkCompleteRemindersTool(deps.Reminders))
	add(deleteReminderTool(deps.Reminders))

	add(addActionItemTool(deps.Tasks))
	add(updateActionItemTool(deps.Tasks))
	add(listActionItemsTool(deps.Tasks))
	add(deleteActionItemTool(deps.Tasks))

	add(addBookmarkTool(deps.Tasks))
	add(updateBookmarkTool(deps.Tasks))
	add(listBookmarksTool(deps.Tasks))
	add(deleteBookmarkTool(deps.Tasks))

	add(getUserProfileTool(deps.Profile))
	add(updateUserProfileTool(deps.Profile))

	add(queryTool(deps.Queries))
	add(triggerNotificationTool(deps.Notifier))

	return srv
}

// logged wraps a handler with call logging. Handler errors become
// in-band tool errors upstream, so err here means the transport layer
// failed, not the operation.
func logged(logger zerolog.Logger, name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := next(ctx, req)
		elapsed := time.Since(start)
		switch {
		case err != nil:
			logger.Error().Err(err).Str("tool", name).Dur("elapsed", elapsed).Msg("tool call failed")
		case res != nil && res.IsError:
			logger.Warn().Str("tool", name).Dur("elapsed", elapsed).Msg("tool call rejected")
		default:
			logger.Debug().Str("tool", name).Dur("elapsed", elapsed).Msg("tool call")
		}
		return res, err
	}
}
