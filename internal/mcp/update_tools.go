package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/service"
)

// The update tools share a convention: omitted arguments leave the
// stored value alone, and tags passed as an explicit empty array clear
// the stored tags.

func updateWorkSessionTool(sessions service.WorkSessionService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_work_session",
		mcp.WithDescription("Update fields of a work session. Changing either endpoint recomputes the rounded duration and date."),
		mcp.WithNumber("session_id", mcp.Required()),
		mcp.WithNumber("project_id"),
		mcp.WithString("start_time", mcp.Description("RFC3339 with offset.")),
		mcp.WithString("end_time", mcp.Description("RFC3339 with offset.")),
		mcp.WithString("summary"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Replaces the stored tags; [] clears them.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("session_id")
		p := service.UpdateWorkSessionParams{
			ProjectID:    in.id("project_id"),
			StartTime:    in.timestamp("start_time"),
			EndTime:      in.timestamp("end_time"),
			Summary:      in.str("summary"),
			PrivacyLevel: in.privacy("privacy_level"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		session, err := sessions.Update(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromWorkSession(session))
	}
	return tool, handler
}

func updateMeetingTool(meetings service.MeetingService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_meeting",
		mcp.WithDescription("Update fields of a meeting. Passing attendee_ids replaces the attendee set; any auto-created work session is not touched."),
		mcp.WithNumber("meeting_id", mcp.Required()),
		mcp.WithString("title"),
		mcp.WithString("start_time", mcp.Description("RFC3339 with offset.")),
		mcp.WithNumber("duration_minutes"),
		mcp.WithString("summary"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithNumber("project_id"),
		mcp.WithString("meeting_type"),
		mcp.WithString("location"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("attendee_ids", mcp.Items(map[string]any{"type": "integer"}), mcp.Description("Replaces the attendee set; [] removes everyone.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("meeting_id")
		p := service.UpdateMeetingParams{
			Title:           in.str("title"),
			StartTime:       in.timestamp("start_time"),
			DurationMinutes: in.integer("duration_minutes"),
			Summary:         in.str("summary"),
			PrivacyLevel:    in.privacy("privacy_level"),
			ProjectID:       in.id("project_id"),
			MeetingType:     in.str("meeting_type"),
			Location:        in.str("location"),
			Tags:            in.strs("tags"),
			AttendeeIDs:     in.idList("attendee_ids"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		rec, err := meetings.Update(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromMeetingRecord(rec))
	}
	return tool, handler
}

func updatePersonTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_person",
		mcp.WithDescription("Update fields of a person."),
		mcp.WithNumber("person_id", mcp.Required()),
		mcp.WithString("full_name"),
		mcp.WithString("email"),
		mcp.WithString("phone"),
		mcp.WithString("linkedin_url"),
		mcp.WithBoolean("is_stakeholder"),
		mcp.WithString("company"),
		mcp.WithString("title"),
		mcp.WithString("notes"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithObject("additional_info", mcp.Description("Replaces the stored extra fields wholesale.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("person_id")
		p := service.UpdatePersonParams{
			FullName:       in.str("full_name"),
			Email:          in.str("email"),
			Phone:          in.str("phone"),
			LinkedInURL:    in.str("linkedin_url"),
			IsStakeholder:  in.boolean("is_stakeholder"),
			Company:        in.str("company"),
			Title:          in.str("title"),
			Notes:          in.str("notes"),
			Tags:           in.strs("tags"),
			AdditionalInfo: in.object("additional_info"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		person, err := directory.UpdatePerson(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromPerson(person))
	}
	return tool, handler
}

func updateClientTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_client",
		mcp.WithDescription("Update fields of a client."),
		mcp.WithNumber("client_id", mcp.Required()),
		mcp.WithString("name"),
		mcp.WithString("type", mcp.Enum("company", "individual")),
		mcp.WithString("status", mcp.Enum("active", "past")),
		mcp.WithNumber("contact_person_id"),
		mcp.WithString("notes"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("client_id")
		p := service.UpdateClientParams{
			Name:            in.str("name"),
			Type:            strAs[domain.ClientType](in.str("type")),
			Status:          strAs[domain.ClientStatus](in.str("status")),
			ContactPersonID: in.id("contact_person_id"),
			Notes:           in.str("notes"),
			Tags:            in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		client, err := directory.UpdateClient(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromClient(client))
	}
	return tool, handler
}

func updateProjectTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_project",
		mcp.WithDescription("Update fields of a project."),
		mcp.WithNumber("project_id", mcp.Required()),
		mcp.WithString("name"),
		mcp.WithNumber("client_id"),
		mcp.WithNumber("on_behalf_of_id"),
		mcp.WithString("description"),
		mcp.WithString("status", mcp.Enum("active", "paused", "completed")),
		mcp.WithString("start_date", mcp.Description("YYYY-MM-DD.")),
		mcp.WithString("end_date", mcp.Description("YYYY-MM-DD.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("project_id")
		p := service.UpdateProjectParams{
			Name:         in.str("name"),
			ClientID:     in.id("client_id"),
			OnBehalfOfID: in.id("on_behalf_of_id"),
			Description:  in.str("description"),
			Status:       strAs[domain.ProjectStatus](in.str("status")),
			StartDate:    in.date("start_date"),
			EndDate:      in.date("end_date"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		project, err := directory.UpdateProject(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromProject(project))
	}
	return tool, handler
}

func updateNoteTool(notes service.NoteService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("update_note",
		mcp.WithDescription("Update fields of a note."),
		mcp.WithNumber("note_id", mcp.Required()),
		mcp.WithString("text"),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("entity_id"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("note_id")
		p := service.UpdateNoteParams{
			Text:         in.str("text"),
			PrivacyLevel: in.privacy("privacy_level"),
			EntityType:   in.entityType("entity_type"),
			EntityID:     in.id("entity_id"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		note, err := notes.Update(ctx, id, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromNote(note))
	}
	return tool, handler
}

func completeReminderTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("complete_reminder",
		mcp.WithDescription("Mark a reminder completed. A recurring reminder also schedules its next occurrence, returned alongside. Completing an already-completed reminder is a no-op."),
		mcp.WithNumber("reminder_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("reminder_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		result, err := reminders.Complete(ctx, id)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromCompleteResult(result))
	}
	return tool, handler
}

func snoozeReminderTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("snooze_reminder",
		mcp.WithDescription("Push a reminder to a later time. The snooze must land in the future; a snoozed reminder will notify again once the new time passes."),
		mcp.WithNumber("reminder_id", mcp.Required()),
		mcp.WithString("snooze_until", mcp.Required(), mcp.Description("New fire time, RFC3339 with offset, after now.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("reminder_id")
		until := in.requireTimestamp("snooze_until")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		reminder, err := reminders.Snooze(ctx, id, until)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromReminder(reminder))
	}
	return tool, handler
}

func endEmploymentTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("end_employment",
		mcp.WithDescription("Close out a current engagement by setting its end date."),
		mcp.WithNumber("employment_id", mcp.Required()),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("YYYY-MM-DD, on or after the start date.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("employment_id")
		end := in.requireDate("end_date")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		employment, err := directory.EndEmployment(ctx, id, end)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromEmployment(employment))
	}
	return tool, handler
}
