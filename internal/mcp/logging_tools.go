package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/alexanderramin/mosaic/internal/contract"
	"github.com/alexanderramin/mosaic/internal/domain"
	"github.com/alexanderramin/mosaic/internal/service"
)

func logWorkSessionTool(sessions service.WorkSessionService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("log_work_session",
		mcp.WithDescription("Log a work session against a project. Duration is derived from start and end and rounded up to the next half hour; the session date follows the profile timezone."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project the session belongs to.")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Session start, RFC3339 with offset.")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("Session end, RFC3339 with offset. Must be after start_time.")),
		mcp.WithString("summary", mcp.Description("What the time was spent on.")),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private"), mcp.Description("Defaults to the profile's default privacy level.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Free-form labels, lowercased and deduplicated.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		p := service.LogWorkSessionParams{
			ProjectID:    in.requireID("project_id"),
			StartTime:    in.requireTimestamp("start_time"),
			EndTime:      in.requireTimestamp("end_time"),
			Summary:      in.str("summary"),
			PrivacyLevel: in.privacy("privacy_level"),
			Tags:         in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		session, err := sessions.Log(ctx, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromWorkSession(session))
	}
	return tool, handler
}

func logMeetingTool(meetings service.MeetingService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("log_meeting",
		mcp.WithDescription("Log a meeting. When a project is attached, a matching work session is created automatically so meeting time shows up on the timecard."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Meeting title.")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Meeting start, RFC3339 with offset.")),
		mcp.WithNumber("duration_minutes", mcp.Required(), mcp.Description("Length in minutes, greater than zero.")),
		mcp.WithString("summary", mcp.Description("What was discussed or decided.")),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private")),
		mcp.WithNumber("project_id", mcp.Description("Project to bill the meeting time to.")),
		mcp.WithString("meeting_type", mcp.Description("Free-form kind, e.g. standup, 1on1, review.")),
		mcp.WithString("location", mcp.Description("Where it happened, physical or virtual.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("attendee_ids", mcp.Items(map[string]any{"type": "integer"}), mcp.Description("Person ids of the attendees.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		p := service.LogMeetingParams{
			Title:           in.requireStr("title"),
			StartTime:       in.requireTimestamp("start_time"),
			DurationMinutes: in.requireInt("duration_minutes"),
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
		rec, err := meetings.Log(ctx, p)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromMeetingRecord(rec))
	}
	return tool, handler
}

func addPersonTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_person",
		mcp.WithDescription("Add a person to the directory."),
		mcp.WithString("full_name", mcp.Required()),
		mcp.WithString("email"),
		mcp.WithString("phone"),
		mcp.WithString("linkedin_url"),
		mcp.WithBoolean("is_stakeholder", mcp.Description("Whether this person influences decisions that matter to you.")),
		mcp.WithString("company"),
		mcp.WithString("title"),
		mcp.WithString("notes"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithObject("additional_info", mcp.Description("Arbitrary extra fields kept verbatim.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		person := &domain.Person{
			FullName:       in.requireStr("full_name"),
			Email:          in.str("email"),
			Phone:          in.str("phone"),
			LinkedInURL:    in.str("linkedin_url"),
			Company:        in.str("company"),
			Title:          in.str("title"),
			Notes:          in.str("notes"),
			Tags:           in.strs("tags"),
			AdditionalInfo: in.object("additional_info"),
		}
		if b := in.boolean("is_stakeholder"); b != nil {
			person.IsStakeholder = *b
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := directory.AddPerson(ctx, person); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromPerson(person))
	}
	return tool, handler
}

func addClientTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_client",
		mcp.WithDescription("Add a client organization or individual that work is done for."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("type", mcp.Enum("company", "individual"), mcp.Description("Defaults to company.")),
		mcp.WithString("status", mcp.Enum("active", "past"), mcp.Description("Defaults to active.")),
		mcp.WithNumber("contact_person_id", mcp.Description("Person id of the primary contact.")),
		mcp.WithString("notes"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		client := &domain.Client{
			Name:            in.requireStr("name"),
			ContactPersonID: in.id("contact_person_id"),
			Notes:           in.str("notes"),
			Tags:            in.strs("tags"),
		}
		if s := in.str("type"); s != nil {
			client.Type = domain.ClientType(*s)
		}
		if s := in.str("status"); s != nil {
			client.Status = domain.ClientStatus(*s)
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := directory.AddClient(ctx, client); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromClient(client))
	}
	return tool, handler
}

func addProjectTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_project",
		mcp.WithDescription("Add a project under a client. Work sessions and timecards hang off projects."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithNumber("client_id", mcp.Required(), mcp.Description("Client the project is for.")),
		mcp.WithNumber("on_behalf_of_id", mcp.Description("Employer id when the work is done through an intermediary.")),
		mcp.WithString("description"),
		mcp.WithString("status", mcp.Enum("active", "paused", "completed"), mcp.Description("Defaults to active.")),
		mcp.WithString("start_date", mcp.Description("YYYY-MM-DD.")),
		mcp.WithString("end_date", mcp.Description("YYYY-MM-DD.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		project := &domain.Project{
			Name:         in.requireStr("name"),
			ClientID:     in.requireID("client_id"),
			OnBehalfOfID: in.id("on_behalf_of_id"),
			Description:  in.str("description"),
			StartDate:    in.date("start_date"),
			EndDate:      in.date("end_date"),
			Tags:         in.strs("tags"),
		}
		if s := in.str("status"); s != nil {
			project.Status = domain.ProjectStatus(*s)
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := directory.AddProject(ctx, project); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromProject(project))
	}
	return tool, handler
}

func addEmployerTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_employer",
		mcp.WithDescription("Add an employer or intermediary you work through. Mark your own freelance identity with is_self."),
		mcp.WithString("name", mcp.Required()),
		mcp.WithBoolean("is_current"),
		mcp.WithBoolean("is_self", mcp.Description("True when this entry is you, not a third party.")),
		mcp.WithString("contact_info"),
		mcp.WithString("notes"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		employer := &domain.Employer{
			Name:        in.requireStr("name"),
			ContactInfo: in.str("contact_info"),
			Notes:       in.str("notes"),
			Tags:        in.strs("tags"),
		}
		if b := in.boolean("is_current"); b != nil {
			employer.IsCurrent = *b
		}
		if b := in.boolean("is_self"); b != nil {
			employer.IsSelf = *b
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := directory.AddEmployer(ctx, employer); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromEmployer(employer))
	}
	return tool, handler
}

func addEmploymentTool(directory service.DirectoryService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_employment",
		mcp.WithDescription("Record that a person works or worked at a client. Omit end_date for a current engagement; a person can hold only one current engagement per client."),
		mcp.WithNumber("person_id", mcp.Required()),
		mcp.WithNumber("client_id", mcp.Required()),
		mcp.WithString("role", mcp.Description("Their role there, e.g. CTO, engineering manager.")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("YYYY-MM-DD.")),
		mcp.WithString("end_date", mcp.Description("YYYY-MM-DD. Omit while the engagement is ongoing.")),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		employment := &domain.EmploymentHistory{
			PersonID:  in.requireID("person_id"),
			ClientID:  in.requireID("client_id"),
			Role:      in.str("role"),
			StartDate: in.requireDate("start_date"),
			EndDate:   in.date("end_date"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := directory.AddEmployment(ctx, employment); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromEmployment(employment))
	}
	return tool, handler
}

func addNoteTool(notes service.NoteService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_note",
		mcp.WithDescription("Capture a free-form note, optionally anchored to another record via entity_type and entity_id."),
		mcp.WithString("text", mcp.Required()),
		mcp.WithString("privacy_level", mcp.Enum("public", "internal", "private"), mcp.Description("Defaults to the profile's default privacy level.")),
		mcp.WithString("entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer"), mcp.Description("Kind of record the note is about.")),
		mcp.WithNumber("entity_id", mcp.Description("Id of that record. Required when entity_type is set.")),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		note := &domain.Note{
			Text:       in.requireStr("text"),
			EntityType: in.entityType("entity_type"),
			EntityID:   in.id("entity_id"),
			Tags:       in.strs("tags"),
		}
		if p := in.privacy("privacy_level"); p != nil {
			note.PrivacyLevel = *p
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := notes.Add(ctx, note); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromNote(note))
	}
	return tool, handler
}

func addReminderTool(reminders service.ReminderService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("add_reminder",
		mcp.WithDescription("Schedule a reminder. Recurring reminders spawn their next occurrence when completed; due reminders are delivered as notifications."),
		mcp.WithString("reminder_time", mcp.Required(), mcp.Description("When to fire, RFC3339 with offset.")),
		mcp.WithString("message", mcp.Required()),
		mcp.WithObject("recurrence_config", mcp.Description("Recurrence rule: {frequency: daily|weekly|monthly, day_of_week?: 0-6 (weekly, 0=Monday), day_of_month?: 1-31 (monthly)}.")),
		mcp.WithString("related_entity_type", mcp.Enum("person", "client", "project", "meeting", "work_session", "employer")),
		mcp.WithNumber("related_entity_id"),
		mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		reminder := &domain.Reminder{
			ReminderTime:      in.requireTimestamp("reminder_time"),
			Message:           in.requireStr("message"),
			Recurrence:        in.recurrence("recurrence_config"),
			RelatedEntityType: in.entityType("related_entity_type"),
			RelatedEntityID:   in.id("related_entity_id"),
			Tags:              in.strs("tags"),
		}
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := reminders.Add(ctx, reminder); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.FromReminder(reminder))
	}
	return tool, handler
}

func deleteWorkSessionTool(sessions service.WorkSessionService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_work_session",
		mcp.WithDescription("Delete a work session permanently."),
		mcp.WithNumber("session_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("session_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := sessions.Delete(ctx, id); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Ack{Success: true, Message: fmt.Sprintf("work session %d deleted", id)})
	}
	return tool, handler
}

func deleteMeetingTool(meetings service.MeetingService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("delete_meeting",
		mcp.WithDescription("Delete a meeting permanently. Attendee links go with it; any auto-created work session stays and must be deleted separately."),
		mcp.WithNumber("meeting_id", mcp.Required()),
	)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := newArgs(req)
		id := in.requireID("meeting_id")
		if err := in.finish(); err != nil {
			return toolError(err)
		}
		if err := meetings.Delete(ctx, id); err != nil {
			return toolError(err)
		}
		return toolJSON(contract.Ack{Success: true, Message: fmt.Sprintf("meeting %d deleted", id)})
	}
	return tool, handler
}
